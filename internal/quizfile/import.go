package quizfile

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// DefaultImportTopic labels imported quizzes whose payload carries no
// topic of its own.
const DefaultImportTopic = "Imported"

// ImportFile reads a quiz from a JSON file. The payload goes through
// the same normalization as generated quizzes, so the imported copy
// gets a fresh id, a fresh timestamp, and freshly shuffled options.
func ImportFile(path string, rng *rand.Rand) (*quiz.Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz file: %w", err)
	}
	return ImportText(string(data), rng)
}

// ImportText recovers a quiz from arbitrary text. The text may be a
// bare JSON document or a JSON object embedded in surrounding prose.
func ImportText(text string, rng *rand.Rand) (*quiz.Quiz, error) {
	raw, err := quiz.ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	q, err := quiz.Normalize(raw, rng)
	if err != nil {
		return nil, err
	}

	if q.Topic == "" {
		q.Topic = DefaultImportTopic
	}
	return q, nil
}
