package quizfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// Marshal renders a quiz as indented JSON suitable for sharing.
func Marshal(q *quiz.Quiz) ([]byte, error) {
	data, err := json.MarshalIndent(q, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode quiz: %w", err)
	}
	return append(data, '\n'), nil
}

// Export writes a quiz to the given path. An empty path derives a
// filename from the quiz title in the current directory. Returns the
// path written.
func Export(q *quiz.Quiz, path string) (string, error) {
	if path == "" {
		path = Filename(q.Title)
	}

	data, err := Marshal(q)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create export directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write quiz file: %w", err)
	}
	return path, nil
}

// Filename derives a filesystem-safe filename from a quiz title.
func Filename(title string) string {
	slug := sanitizeTitle(title)
	if slug == "" {
		slug = "quiz"
	}
	return slug + ".json"
}

func sanitizeTitle(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
