package assessment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEvaluationWellFormed(t *testing.T) {
	raw := "Sure! Here is my evaluation:\n```json\n{\"score\": 8.5, \"feedback\": \"Solid answer\"}\n```"

	ev, err := ExtractEvaluation(raw)
	require.NoError(t, err)
	assert.Equal(t, 8.5, ev.Score)
	assert.Equal(t, "Solid answer", ev.Feedback)
}

func TestExtractEvaluationBracesInsideFeedback(t *testing.T) {
	// Braces inside the feedback string must not confuse the scanner.
	raw := `{"score": 7, "feedback": "Your func main() { fmt.Println(\"hi\") } could use error handling"}`

	ev, err := ExtractEvaluation(raw)
	require.NoError(t, err)
	assert.Equal(t, 7.0, ev.Score)
	assert.Contains(t, ev.Feedback, "func main() {")
}

func TestExtractEvaluationSkipsInvalidObjects(t *testing.T) {
	raw := "{this is not json} but this is: {\"score\": 6, \"feedback\": \"ok\"}"

	ev, err := ExtractEvaluation(raw)
	require.NoError(t, err)
	assert.Equal(t, 6.0, ev.Score)
	assert.Equal(t, "ok", ev.Feedback)
}

func TestExtractEvaluationNoBraces(t *testing.T) {
	raw := "The answer shows a reasonable grasp of the topic."

	ev, err := ExtractEvaluation(raw)
	require.NoError(t, err)
	assert.Equal(t, FallbackScore, ev.Score)
	assert.Contains(t, ev.Feedback, raw)
}

func TestExtractEvaluationFallbackTruncates(t *testing.T) {
	raw := strings.Repeat("a", 500)

	ev, err := ExtractEvaluation(raw)
	require.NoError(t, err)
	assert.Equal(t, FallbackScore, ev.Score)
	assert.Contains(t, ev.Feedback, strings.Repeat("a", 200))
	assert.NotContains(t, ev.Feedback, strings.Repeat("a", 201))
}

func TestExtractEvaluationUnbalancedBraces(t *testing.T) {
	raw := `{"score": 8, "feedback": "never closed`

	ev, err := ExtractEvaluation(raw)
	require.NoError(t, err)
	assert.Equal(t, FallbackScore, ev.Score)
}

func TestExtractEvaluationMissingFields(t *testing.T) {
	raw := `{"score": 9}`

	_, err := ExtractEvaluation(raw)
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, []string{"feedback"}, malformed.Missing)
}

func TestExtractEvaluationCoercesQuotedScores(t *testing.T) {
	ev, err := ExtractEvaluation(`{"score": "8", "feedback": "fine"}`)
	require.NoError(t, err)
	assert.Equal(t, 8.0, ev.Score)
	assert.Equal(t, "fine", ev.Feedback)

	ev, err = ExtractEvaluation(`{"score": " 7.5 ", "feedback": "fine"}`)
	require.NoError(t, err)
	assert.Equal(t, 7.5, ev.Score)
}

func TestExtractEvaluationNonNumericScore(t *testing.T) {
	_, err := ExtractEvaluation(`{"score": "excellent", "feedback": "good"}`)
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Empty(t, malformed.Missing)
	assert.Contains(t, malformed.Error(), "score is not numeric")
	assert.NotContains(t, malformed.Error(), "missing")
}

func TestExtractEvaluationNonStringFeedback(t *testing.T) {
	_, err := ExtractEvaluation(`{"score": 6, "feedback": 42}`)
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Error(), "feedback is not a string")
}

func TestExtractEvaluationDoesNotClamp(t *testing.T) {
	ev, err := ExtractEvaluation(`{"score": 12, "feedback": "generous model"}`)
	require.NoError(t, err)
	assert.Equal(t, 12.0, ev.Score)
}

func TestFirstJSONObjectAcrossLines(t *testing.T) {
	raw := "prefix\n{\n  \"skills\": [\"Go\"],\n  \"projects\": []\n}\nsuffix"

	obj, ok := FirstJSONObject(raw)
	require.True(t, ok)
	assert.Contains(t, obj, `"skills"`)
}

func TestFirstJSONObjectNone(t *testing.T) {
	_, ok := FirstJSONObject("nothing structured here")
	assert.False(t, ok)
}
