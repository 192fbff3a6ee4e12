package quiz

import (
	"encoding/json"
	"errors"
	"strings"
)

var errUnterminated = errors.New("object is never closed")

// ExtractJSON locates the JSON object embedded in a raw model reply and
// returns it as raw JSON. Replies routinely wrap the object in prose or
// markdown fences, so the object is taken as the substring from the first
// '{' to the last '}' inclusive.
//
// The boundary heuristic assumes the surrounding chatter contains no stray
// braces; a balanced-brace scan was considered and rejected as unnecessary
// for the replies the supported providers actually produce.
//
// Failure modes are distinct on purpose: ErrNoJSON when the reply has no
// opening brace at all (format problem), MalformedJSONError when an object
// starts but never closes or does not parse (usually a truncated reply,
// i.e. an output-length problem).
func ExtractJSON(text string) (json.RawMessage, error) {
	first := strings.IndexByte(text, '{')
	if first == -1 {
		return nil, ErrNoJSON
	}

	last := strings.LastIndexByte(text, '}')
	if last == -1 {
		// An opening brace that never closes is a reply cut off
		// mid-object, not a reply without JSON.
		return nil, &MalformedJSONError{Err: errUnterminated}
	}
	if last < first {
		// Every '}' precedes the first '{': stray braces in prose,
		// no object boundary at all.
		return nil, ErrNoJSON
	}

	raw := json.RawMessage(text[first : last+1])
	if !json.Valid(raw) {
		// Re-parse for a concrete error position to surface to the user.
		var v any
		err := json.Unmarshal(raw, &v)
		return nil, &MalformedJSONError{Err: err}
	}
	return raw, nil
}
