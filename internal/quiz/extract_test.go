package quiz

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtractJSON_ProseWrapped(t *testing.T) {
	text := `Sure! Here is your quiz: {"title":"T","questions":[{"question":"Q","options":["a","b"],"answerIndex":1,"explanation":"e"}]} Hope that helps!`

	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("unmarshal extracted JSON: %v", err)
	}
	if obj["title"] != "T" {
		t.Errorf("title = %v, want T", obj["title"])
	}
}

func TestExtractJSON_MarkdownFence(t *testing.T) {
	text := "```json\n{\"title\":\"X\",\"questions\":[]}\n```"

	raw, err := ExtractJSON(text)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if string(raw) != `{"title":"X","questions":[]}` {
		t.Errorf("extracted %q", string(raw))
	}
}

func TestExtractJSON_BareObject(t *testing.T) {
	raw, err := ExtractJSON(`{"a":1}`)
	if err != nil {
		t.Fatalf("ExtractJSON: %v", err)
	}
	if string(raw) != `{"a":1}` {
		t.Errorf("extracted %q", string(raw))
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	for _, text := range []string{
		"no braces here at all",
		"",
		"closed only }",
	} {
		_, err := ExtractJSON(text)
		if !errors.Is(err, ErrNoJSON) {
			t.Errorf("ExtractJSON(%q) = %v, want ErrNoJSON", text, err)
		}
	}
}

func TestExtractJSON_ReversedBraces(t *testing.T) {
	// A '}' that only ever appears before the '{' is stray prose
	// punctuation, not a truncated object.
	for _, text := range []string{
		"} and then {",
		"oops } some chatter { more",
	} {
		_, err := ExtractJSON(text)
		if !errors.Is(err, ErrNoJSON) {
			t.Errorf("ExtractJSON(%q) = %v, want ErrNoJSON", text, err)
		}
	}
}

func TestExtractJSON_Truncated(t *testing.T) {
	// A reply cut off mid-object must be reported as malformed JSON,
	// not silently returned as a partial object.
	for _, text := range []string{
		`{"title": "T", "quest`,   // cut off with no closing brace
		`{"title": "T", "quest} `, // closing brace inside a broken string
	} {
		_, err := ExtractJSON(text)
		var malformed *MalformedJSONError
		if !errors.As(err, &malformed) {
			t.Fatalf("ExtractJSON(%q) = %v, want MalformedJSONError", text, err)
		}
		if errors.Is(err, ErrNoJSON) {
			t.Error("truncated object misreported as no JSON found")
		}
	}
}
