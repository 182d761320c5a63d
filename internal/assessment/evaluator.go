package assessment

import (
	"context"
	"fmt"

	"github.com/fadilmartias/skill-assessment/internal/model"
)

// Evaluator orchestrates prompt building, the model call and response
// extraction for a single answer.
type Evaluator struct {
	gateway Gateway
}

func NewEvaluator(gateway Gateway) *Evaluator {
	return &Evaluator{gateway: gateway}
}

// Evaluate scores one answer through the model gateway. Gateway failures
// propagate to the caller; extraction fallbacks are absorbed into a neutral
// result. Model-reported scores are clamped to [0,10] here, since the
// extractor deliberately does not clamp.
func (e *Evaluator) Evaluate(ctx context.Context, answer model.Answer) (model.EvaluationResult, error) {
	prompt := BuildEvaluationPrompt(answer)

	raw, err := e.gateway.Complete(ctx, prompt)
	if err != nil {
		return model.EvaluationResult{}, fmt.Errorf("evaluate answer %d: %w", answer.QuestionID, err)
	}

	ev, err := ExtractEvaluation(raw)
	if err != nil {
		return model.EvaluationResult{}, fmt.Errorf("evaluate answer %d: %w", answer.QuestionID, err)
	}

	return model.EvaluationResult{
		QuestionID: answer.QuestionID,
		Score:      clampScore(ev.Score),
		Feedback:   ev.Feedback,
	}, nil
}

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
