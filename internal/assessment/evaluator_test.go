package assessment

import (
	"context"
	"errors"
	"testing"

	"github.com/fadilmartias/skill-assessment/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGateway) Complete(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestEvaluatorTechnicalAnswer(t *testing.T) {
	stub := &stubGateway{response: `{"score": 8, "feedback": "Good understanding of Go"}`}
	evaluator := NewEvaluator(stub)

	answer := model.Answer{QuestionID: 3, Answer: "Goroutines are lightweight threads", Kind: model.AnswerKindTechnical}
	result, err := evaluator.Evaluate(context.Background(), answer)
	require.NoError(t, err)

	assert.Equal(t, 3, result.QuestionID)
	assert.Equal(t, 8.0, result.Score)
	assert.Equal(t, "Good understanding of Go", result.Feedback)
	assert.Contains(t, stub.lastPrompt, "technical answer")
	assert.Contains(t, stub.lastPrompt, answer.Answer)
}

func TestEvaluatorCodingAnswerFraming(t *testing.T) {
	stub := &stubGateway{response: `{"score": 6, "feedback": "works"}`}
	evaluator := NewEvaluator(stub)

	answer := model.Answer{QuestionID: 11, Answer: "def f(): pass", Kind: model.AnswerKindCoding}
	_, err := evaluator.Evaluate(context.Background(), answer)
	require.NoError(t, err)

	assert.Contains(t, stub.lastPrompt, "code solution")
	assert.Contains(t, stub.lastPrompt, "code quality, efficiency, and correctness")
}

func TestEvaluatorGatewayErrorPropagates(t *testing.T) {
	stub := &stubGateway{err: &GatewayError{Op: "complete", Err: errors.New("quota exceeded")}}
	evaluator := NewEvaluator(stub)

	_, err := evaluator.Evaluate(context.Background(), model.Answer{QuestionID: 1, Kind: model.AnswerKindTechnical})
	var gatewayErr *GatewayError
	require.ErrorAs(t, err, &gatewayErr)
}

func TestEvaluatorClampsScores(t *testing.T) {
	stub := &stubGateway{response: `{"score": 12, "feedback": "generous"}`}
	evaluator := NewEvaluator(stub)

	result, err := evaluator.Evaluate(context.Background(), model.Answer{QuestionID: 1, Kind: model.AnswerKindTechnical})
	require.NoError(t, err)
	assert.Equal(t, 10.0, result.Score)

	stub.response = `{"score": -3, "feedback": "harsh"}`
	result, err = evaluator.Evaluate(context.Background(), model.Answer{QuestionID: 1, Kind: model.AnswerKindTechnical})
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)
}

func TestEvaluatorAbsorbsFallback(t *testing.T) {
	stub := &stubGateway{response: "I think this answer deserves a solid grade."}
	evaluator := NewEvaluator(stub)

	result, err := evaluator.Evaluate(context.Background(), model.Answer{QuestionID: 2, Kind: model.AnswerKindTechnical})
	require.NoError(t, err)
	assert.Equal(t, FallbackScore, result.Score)
	assert.Equal(t, 2, result.QuestionID)
}

func TestEvaluatorMalformedEscalates(t *testing.T) {
	stub := &stubGateway{response: `{"score": 5}`}
	evaluator := NewEvaluator(stub)

	_, err := evaluator.Evaluate(context.Background(), model.Answer{QuestionID: 1, Kind: model.AnswerKindTechnical})
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}
