package quiz

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// payloadSchemaDef is the JSON Schema a generated or imported payload must
// satisfy before reshaping. Option items are deliberately untyped: models
// sometimes emit numeric options, which normalization stringifies rather
// than rejects. The questions-array checks are handled before schema
// validation so their errors keep dedicated messages.
var payloadSchemaDef = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":      map[string]any{"type": "string"},
		"topic":      map[string]any{"type": "string"},
		"genre":      map[string]any{"type": "string"},
		"language":   map[string]any{"type": "string"},
		"difficulty": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question": map[string]any{"type": "string", "minLength": 1},
					"options": map[string]any{
						"type":     "array",
						"minItems": 2,
					},
					"answerIndex": map[string]any{"type": "integer", "minimum": 0},
					"explanation": map[string]any{"type": "string"},
				},
				"required": []any{"question", "options", "answerIndex"},
			},
		},
	},
	"required": []any{"questions"},
}

var compilePayloadSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler expects a parsed JSON value, not raw bytes. Round-trip
	// the definition map to get a clean representation.
	defBytes, err := json.Marshal(payloadSchemaDef)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://quiz-payload.json"
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(schemaURL)
})

// validatePayload checks the parsed payload against the payload schema.
func validatePayload(parsed any) error {
	compiled, err := compilePayloadSchema()
	if err != nil {
		return fmt.Errorf("compile payload schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return &ValidationError{Reason: "payload does not match quiz schema", Err: err}
	}
	return nil
}
