package assessment

import (
	"fmt"
	"time"

	"github.com/fadilmartias/skill-assessment/internal/model"
)

// Proficiency labels derived from a per-skill average score.
const (
	ProficiencyExpert       = "Expert"
	ProficiencyProficient   = "Proficient"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyBeginner     = "Beginner"
)

// Certification labels derived from the overall average score.
const (
	CertificationAdvanced     = "Certified - Advanced Level"
	CertificationIntermediate = "Certified - Intermediate Level"
	CertificationBasic        = "Certified - Basic Level"
	CertificationNone         = "Not Certified - Needs Improvement"
)

// EvaluatedAnswer pairs a submitted answer with its evaluation and the skill
// it was attributed to.
type EvaluatedAnswer struct {
	Answer model.Answer
	Result model.EvaluationResult
	Skill  string
}

// Aggregate folds evaluated answers into the final report document: per-skill
// statistics, overall statistics, certification status and the improvement
// areas / strengths partition. Insights and recommendations are left empty
// for the caller to fill, since they require further model calls.
func Aggregate(profile model.CandidateProfile, evaluated []EvaluatedAnswer) (*model.Report, error) {
	if len(evaluated) == 0 {
		return nil, ErrEmptyAssessment
	}

	// Skill buckets in first-seen order, so report sections stay stable for
	// identical inputs.
	scores := map[string][]float64{}
	var order []string
	detailed := make([]model.DetailedFeedback, 0, len(evaluated))
	technical, coding := 0, 0

	for _, ea := range evaluated {
		if _, seen := scores[ea.Skill]; !seen {
			order = append(order, ea.Skill)
		}
		scores[ea.Skill] = append(scores[ea.Skill], ea.Result.Score)

		detailed = append(detailed, model.DetailedFeedback{
			QuestionID: ea.Answer.QuestionID,
			Kind:       ea.Answer.Kind,
			Answer:     ea.Answer.Answer,
			Score:      ea.Result.Score,
			Feedback:   ea.Result.Feedback,
			Skill:      ea.Skill,
		})

		switch ea.Answer.Kind {
		case model.AnswerKindCoding:
			coding++
		default:
			technical++
		}
	}

	analysis := make(map[string]model.SkillAnalysis, len(order))
	var improvements []model.ImprovementArea
	var strengths []model.Strength
	total, count := 0.0, 0

	for _, skill := range order {
		list := scores[skill]
		sum, max, min := list[0], list[0], list[0]
		for _, s := range list[1:] {
			sum += s
			if s > max {
				max = s
			}
			if s < min {
				min = s
			}
		}
		avg := sum / float64(len(list))
		total += sum
		count += len(list)

		analysis[skill] = model.SkillAnalysis{
			AverageScore:      avg,
			NumberOfQuestions: len(list),
			HighestScore:      max,
			LowestScore:       min,
			ProficiencyLevel:  ProficiencyLevel(avg),
		}

		if avg < 7 {
			target := avg + 2
			if target > 10 {
				target = 10
			}
			gap := "Medium"
			if avg < 5 {
				gap = "High"
			}
			improvements = append(improvements, model.ImprovementArea{
				Skill:          skill,
				CurrentScore:   avg,
				TargetScore:    target,
				ProficiencyGap: gap,
			})
		} else {
			strengths = append(strengths, model.Strength{
				Skill:            skill,
				Score:            avg,
				ProficiencyLevel: ProficiencyLevel(avg),
			})
		}
	}

	overall := total / float64(count)
	now := time.Now()

	return &model.Report{
		ReportID:      fmt.Sprintf("REP%s", now.Format("20060102150405")),
		GeneratedDate: now.Format(time.RFC3339),
		CandidateInfo: model.CandidateInfo{
			Profile:        profile,
			AssessmentDate: now.Format("2006-01-02"),
		},
		AssessmentSummary: model.AssessmentSummary{
			OverallScore:            overall,
			TotalQuestionsAttempted: len(evaluated),
			TechnicalQuestions:      technical,
			CodingChallenges:        coding,
		},
		SkillAnalysis:       analysis,
		DetailedFeedback:    detailed,
		AIInsights:          []model.SkillInsight{},
		Recommendations:     []string{},
		CertificationStatus: CertificationStatus(overall),
		ImprovementAreas:    improvements,
		Strengths:           strengths,
	}, nil
}

func ProficiencyLevel(score float64) string {
	switch {
	case score >= 9:
		return ProficiencyExpert
	case score >= 7:
		return ProficiencyProficient
	case score >= 5:
		return ProficiencyIntermediate
	default:
		return ProficiencyBeginner
	}
}

func CertificationStatus(overall float64) string {
	switch {
	case overall >= 8:
		return CertificationAdvanced
	case overall >= 6:
		return CertificationIntermediate
	case overall >= 4:
		return CertificationBasic
	default:
		return CertificationNone
	}
}

// SkillOrder returns the distinct attributed skills in first-seen order,
// which is the order insight generation walks them.
func SkillOrder(evaluated []EvaluatedAnswer) []string {
	seen := map[string]bool{}
	var order []string
	for _, ea := range evaluated {
		if !seen[ea.Skill] {
			seen[ea.Skill] = true
			order = append(order, ea.Skill)
		}
	}
	return order
}
