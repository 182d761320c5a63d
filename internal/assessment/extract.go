package assessment

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	// FallbackScore is the neutral midpoint substituted when no structured
	// evaluation can be parsed from the model reply.
	FallbackScore = 5.0

	fallbackPrefixLimit = 200
)

// Evaluation is the structured payload expected inside a model reply.
type Evaluation struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// ExtractEvaluation scans raw model text for an embedded JSON object and
// parses it into an Evaluation.
//
// There are three outcomes:
//   - a balanced object with both required fields parses: its values are
//     returned as-is (no clamping here, that is the caller's call); scores
//     quoted as numeric strings are coerced to float;
//   - no balanced object exists, or none of them is valid JSON: a fallback
//     with FallbackScore and a truncated prefix of the raw text is returned,
//     never an error;
//   - an object parses but misses "score" or "feedback", or carries values
//     that cannot be coerced: a *MalformedResponseError, because partial
//     JSON is a distinct failure from no JSON at all.
func ExtractEvaluation(raw string) (Evaluation, error) {
	obj, ok := FirstJSONObject(raw)
	if !ok {
		return fallbackEvaluation(raw), nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(obj), &fields); err != nil {
		return fallbackEvaluation(raw), nil
	}

	var missing []string
	for _, key := range []string{"score", "feedback"} {
		if _, present := fields[key]; !present {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Evaluation{}, &MalformedResponseError{Missing: missing, Raw: raw}
	}

	score, ok := coerceScore(fields["score"])
	if !ok {
		return Evaluation{}, &MalformedResponseError{Reason: "score is not numeric", Raw: raw}
	}

	var feedback string
	if err := json.Unmarshal(fields["feedback"], &feedback); err != nil {
		return Evaluation{}, &MalformedResponseError{Reason: "feedback is not a string", Raw: raw}
	}

	return Evaluation{Score: score, Feedback: feedback}, nil
}

// coerceScore accepts a JSON number or a numeric string, since models quote
// numbers often enough: "score": "8" means 8.
func coerceScore(raw json.RawMessage) (float64, bool) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func fallbackEvaluation(raw string) Evaluation {
	return Evaluation{
		Score:    FallbackScore,
		Feedback: fmt.Sprintf("Error parsing response: %s...", truncate(raw, fallbackPrefixLimit)),
	}
}

// FirstJSONObject returns the first syntactically balanced JSON object inside
// text. Unlike a greedy first-{-to-last-} match it tracks string literals and
// escapes, so braces inside feedback text or code snippets do not break it.
func FirstJSONObject(text string) (string, bool) {
	for start := 0; start < len(text); start++ {
		open := strings.IndexByte(text[start:], '{')
		if open < 0 {
			return "", false
		}
		start += open

		if end, ok := scanBalanced(text, start); ok {
			candidate := text[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, true
			}
		}
	}
	return "", false
}

// scanBalanced walks text from the '{' at start and returns the index of the
// matching '}' if the braces balance.
func scanBalanced(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}
