package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// starterQuizzes is the language realm's first-run content, so the app is
// playable before any API key is configured.
var starterQuizzes = []quiz.Quiz{
	{
		Title:      "Python Basics",
		Topic:      "python",
		Difficulty: "beginner",
		Questions: []quiz.Question{
			{
				Text:        "Which method appends an element to a Python list?",
				Options:     []string{"add()", "push()", "append()", "insert_end()"},
				AnswerIndex: 2,
				Explanation: "append() adds a single element to the end of a list.",
			},
			{
				Text:        "Which function converts a value to an integer in Python?",
				Options:     []string{"int()", "float()", "str()", "bool()"},
				AnswerIndex: 0,
				Explanation: "int() converts numbers and numeric strings to the integer type.",
			},
		},
	},
	{
		Title:      "C Pointer Fundamentals",
		Topic:      "C",
		Difficulty: "intermediate",
		Questions: []quiz.Question{
			{
				Text:        "Which operator yields the address of a variable in C?",
				Options:     []string{"*", "&", "->", "."},
				AnswerIndex: 1,
				Explanation: "The address-of operator & placed before a variable yields its memory address.",
			},
		},
	},
}

// SeedStarterQuizzes inserts the starter set into the language realm on
// first run. It is a no-op when the realm's quiz key already exists, so
// deleting a starter quiz does not resurrect it on the next launch.
func (s *Store) SeedStarterQuizzes(ctx context.Context) error {
	realm := RealmLanguage
	_, ok, err := s.Get(ctx, realm.QuizzesKey())
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	seeded := make([]quiz.Quiz, len(starterQuizzes))
	for i, q := range starterQuizzes {
		q.ID = uuid.New().String()
		q.CreatedAt = time.Now()
		seeded[i] = q
	}
	return s.QuizRepo(realm).ReplaceAll(ctx, seeded)
}
