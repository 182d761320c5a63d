package assessment

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAssessment is returned when a report is requested with zero
	// evaluable answers.
	ErrEmptyAssessment = errors.New("no answers to evaluate")

	// ErrEmptyProfile is returned when question generation is requested for a
	// profile with no declared skills.
	ErrEmptyProfile = errors.New("candidate profile has no skills")
)

// GatewayError is returned when the model call itself failed (network, quota,
// auth) so the caller can distinguish "model was unreachable" from "model
// returned something unusable."
type GatewayError struct {
	Op      string
	Timeout bool
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("gateway %s timed out: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("gateway %s failed: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when the model reply contained a parsable
// JSON object that misses required fields or carries values of an unusable
// type. Distinct from "no JSON found", which is absorbed as an extraction
// fallback.
type MalformedResponseError struct {
	Missing []string
	Reason  string
	Raw     string
}

func (e *MalformedResponseError) Error() string {
	detail := e.Reason
	if len(e.Missing) > 0 {
		detail = fmt.Sprintf("missing %v", e.Missing)
	}
	if detail == "" {
		detail = "unusable structure"
	}
	return fmt.Sprintf("malformed model response (%s): %s", detail, truncate(e.Raw, 200))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
