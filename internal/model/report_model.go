package model

import (
	"time"

	"github.com/google/uuid"
)

// Report adalah dokumen laporan lengkap yang dikembalikan ke client.
type Report struct {
	ReportID            string                   `json:"report_id"`
	GeneratedDate       string                   `json:"generated_date"`
	CandidateInfo       CandidateInfo            `json:"candidate_info"`
	AssessmentSummary   AssessmentSummary        `json:"assessment_summary"`
	SkillAnalysis       map[string]SkillAnalysis `json:"skill_analysis"`
	DetailedFeedback    []DetailedFeedback       `json:"detailed_feedback"`
	AIInsights          []SkillInsight           `json:"ai_insights"`
	Recommendations     []string                 `json:"recommendations"`
	CertificationStatus string                   `json:"certification_status"`
	ImprovementAreas    []ImprovementArea        `json:"improvement_areas"`
	Strengths           []Strength               `json:"strengths"`
}

type CandidateInfo struct {
	Profile        CandidateProfile `json:"profile"`
	AssessmentDate string           `json:"assessment_date"`
}

type AssessmentSummary struct {
	OverallScore            float64 `json:"overall_score"`
	TotalQuestionsAttempted int     `json:"total_questions_attempted"`
	TechnicalQuestions      int     `json:"technical_questions"`
	CodingChallenges        int     `json:"coding_challenges"`
}

type SkillAnalysis struct {
	AverageScore      float64 `json:"average_score"`
	NumberOfQuestions int     `json:"number_of_questions"`
	HighestScore      float64 `json:"highest_score"`
	LowestScore       float64 `json:"lowest_score"`
	ProficiencyLevel  string  `json:"proficiency_level"`
}

type DetailedFeedback struct {
	QuestionID int        `json:"question_id"`
	Kind       AnswerKind `json:"type"`
	Answer     string     `json:"answer"`
	Score      float64    `json:"score"`
	Feedback   string     `json:"feedback"`
	Skill      string     `json:"skill"`
}

type SkillInsight struct {
	Skill   string `json:"skill"`
	Insight string `json:"insight"`
}

type ImprovementArea struct {
	Skill          string  `json:"skill"`
	CurrentScore   float64 `json:"current_score"`
	TargetScore    float64 `json:"target_score"`
	ProficiencyGap string  `json:"proficiency_gap"`
}

type Strength struct {
	Skill            string  `json:"skill"`
	Score            float64 `json:"score"`
	ProficiencyLevel string  `json:"proficiency_level"`
}

// AssessmentReport adalah record laporan yang dipersist ke database.
type AssessmentReport struct {
	ID                  uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ReportID            string    `gorm:"type:varchar(50);uniqueIndex" json:"report_id"`
	OverallScore        float64   `gorm:"type:float" json:"overall_score"`
	CertificationStatus string    `gorm:"type:varchar(100)" json:"certification_status"`
	Payload             string    `gorm:"type:jsonb" json:"payload"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (r *AssessmentReport) TableName() string {
	return "assessment_reports"
}
