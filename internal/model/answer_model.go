package model

type AnswerKind string

const (
	AnswerKindTechnical AnswerKind = "technical"
	AnswerKindCoding    AnswerKind = "coding"
)

func (k AnswerKind) Valid() bool {
	return k == AnswerKindTechnical || k == AnswerKindCoding
}

type Answer struct {
	QuestionID int        `json:"question_id"`
	Answer     string     `json:"answer"`
	Kind       AnswerKind `json:"type"` // e.g. "technical", "coding"
}

// EvaluationResult adalah hasil evaluasi satu jawaban oleh model.
type EvaluationResult struct {
	QuestionID int     `json:"question_id"`
	Score      float64 `json:"score"`
	Feedback   string  `json:"feedback"`
}
