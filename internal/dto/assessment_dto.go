package dto

import "github.com/fadilmartias/skill-assessment/internal/model"

type QuestionDTO struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Skill    string `json:"skill"`
	Type     string `json:"type"`
}

type ChallengeDTO struct {
	ID        int    `json:"id"`
	Challenge string `json:"challenge"`
	Skill     string `json:"skill"`
	Type      string `json:"type"`
}

type AssessmentDTO struct {
	TechnicalQuestions []QuestionDTO          `json:"technical_questions"`
	CodingChallenges   []ChallengeDTO         `json:"coding_challenges"`
	CandidateProfile   model.CandidateProfile `json:"candidate_profile"`
}

type ReportRequest struct {
	Answers []model.Answer         `json:"answers"`
	Profile model.CandidateProfile `json:"profile"`
}

type ReportListItemDTO struct {
	ReportID            string  `json:"report_id"`
	OverallScore        float64 `json:"overall_score"`
	CertificationStatus string  `json:"certification_status"`
	CreatedAt           string  `json:"created_at"`
}
