package quiz

import (
	"errors"
	"fmt"
)

// ErrNoJSON indicates the model reply contained no JSON object at all.
// Distinct from MalformedJSONError: this is a format problem (the model
// ignored the reply-format instruction), not an output-length problem.
var ErrNoJSON = errors.New("no JSON object found in response")

// MalformedJSONError indicates a JSON object was located but failed to
// parse, typically because the reply was truncated mid-object.
type MalformedJSONError struct {
	Err error
}

func (e *MalformedJSONError) Error() string {
	return fmt.Sprintf("response contains malformed JSON: %v", e.Err)
}

func (e *MalformedJSONError) Unwrap() error { return e.Err }

// ValidationError indicates a parsed payload that does not describe a
// playable quiz. Reason is user-visible.
type ValidationError struct {
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid quiz payload: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid quiz payload: %s", e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Err }
