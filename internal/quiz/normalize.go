package quiz

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Normalize validates a parsed payload (from ExtractJSON, a pasted reply,
// or an imported file) and reshapes it into a canonical Quiz.
//
// Validation order:
//  1. the payload is a JSON object with a "questions" array
//  2. the array is non-empty
//  3. the payload matches the quiz schema
//  4. per question: options are coerced to text, bounds are checked, and
//     the options are re-shuffled so answer positions carry no model bias
//
// A fresh id is always assigned, even when the payload carries one, which
// keeps ids unique within a collection without any coordination. CreatedAt
// is stamped with the current time. The operation is all-or-nothing: on
// any failure no partial quiz is produced, and nothing is written anywhere.
//
// rng seeds the shuffle; nil uses the shared source.
func Normalize(raw json.RawMessage, rng *rand.Rand) (*Quiz, error) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &ValidationError{Reason: "payload is not a JSON object", Err: err}
	}

	qv, ok := obj["questions"]
	if !ok {
		return nil, &ValidationError{Reason: "missing questions array"}
	}
	arr, ok := qv.([]any)
	if !ok {
		return nil, &ValidationError{Reason: "questions is not an array"}
	}
	if len(arr) == 0 {
		return nil, &ValidationError{Reason: "no questions present"}
	}

	if err := validatePayload(obj); err != nil {
		return nil, err
	}

	questions := make([]Question, 0, len(arr))
	for i, item := range arr {
		q, err := normalizeQuestion(item.(map[string]any))
		if err != nil {
			return nil, &ValidationError{
				Reason: fmt.Sprintf("question %d", i+1),
				Err:    err,
			}
		}
		shuffled, err := ShuffleQuestion(q, rng)
		if err != nil {
			return nil, err
		}
		questions = append(questions, shuffled)
	}

	return &Quiz{
		ID:         uuid.New().String(),
		Title:      stringField(obj, "title"),
		Topic:      topicField(obj),
		Difficulty: stringField(obj, "difficulty"),
		Questions:  questions,
		CreatedAt:  time.Now(),
	}, nil
}

func normalizeQuestion(obj map[string]any) (Question, error) {
	rawOpts := obj["options"].([]any)
	options := make([]string, len(rawOpts))
	for i, v := range rawOpts {
		text, err := coerceText(v)
		if err != nil {
			return Question{}, fmt.Errorf("option %d: %w", i+1, err)
		}
		if text == "" {
			return Question{}, fmt.Errorf("option %d is empty", i+1)
		}
		options[i] = text
	}

	// Schema guarantees an integer; JSON numbers decode as float64.
	answerIndex := int(obj["answerIndex"].(float64))
	if answerIndex >= len(options) {
		return Question{}, fmt.Errorf("answer index %d out of range for %d options", answerIndex, len(options))
	}

	return Question{
		Text:        obj["question"].(string),
		Options:     options,
		AnswerIndex: answerIndex,
		Explanation: stringField(obj, "explanation"),
	}, nil
}

// coerceText stringifies non-string option values. Models occasionally
// emit numeric or boolean options; rejecting them would fail otherwise
// usable quizzes.
func coerceText(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	case nil:
		return "", fmt.Errorf("option is null")
	default:
		return "", fmt.Errorf("option has unsupported type %T", v)
	}
}

func stringField(obj map[string]any, key string) string {
	if s, ok := obj[key].(string); ok {
		return s
	}
	return ""
}

// topicField resolves the domain classifier. Generated payloads use
// "topic" or "genre" (custom quizzes) or "language" (language quizzes)
// depending on the prompt that produced them.
func topicField(obj map[string]any) string {
	for _, key := range []string{"topic", "genre", "language"} {
		if s := stringField(obj, key); s != "" {
			return s
		}
	}
	return ""
}
