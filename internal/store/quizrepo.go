package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// StorageParseError describes corrupt persisted JSON found on read.
// Reads recover by treating the value as an empty collection so the app
// stays usable after partial corruption; the error itself only appears
// in the stderr warning.
type StorageParseError struct {
	Key string
	Err error
}

func (e *StorageParseError) Error() string {
	return fmt.Sprintf("corrupt stored value under %q: %v", e.Key, e.Err)
}

func (e *StorageParseError) Unwrap() error { return e.Err }

// warnCorrupt reports a recovered parse failure without failing the read.
func warnCorrupt(key string, err error) {
	perr := &StorageParseError{Key: key, Err: err}
	fmt.Fprintf(os.Stderr, "warning: %v (starting from an empty collection)\n", perr)
}

// QuizRepo stores one realm's quiz collection as a JSON array under the
// realm's quiz key.
type QuizRepo struct {
	store *Store
	realm Realm
}

// QuizRepo returns the quiz repository for a realm.
func (s *Store) QuizRepo(realm Realm) *QuizRepo {
	return &QuizRepo{store: s, realm: realm}
}

// List returns the realm's quizzes, newest first. An absent key yields an
// empty list; a corrupt value is recovered as empty with a warning.
func (r *QuizRepo) List(ctx context.Context) ([]quiz.Quiz, error) {
	value, ok, err := r.store.Get(ctx, r.realm.QuizzesKey())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var quizzes []quiz.Quiz
	if err := json.Unmarshal([]byte(value), &quizzes); err != nil {
		warnCorrupt(r.realm.QuizzesKey(), err)
		return nil, nil
	}
	return quizzes, nil
}

// Get returns the quiz with the given id, or nil when absent.
func (r *QuizRepo) Get(ctx context.Context, id string) (*quiz.Quiz, error) {
	quizzes, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range quizzes {
		if quizzes[i].ID == id {
			return &quizzes[i], nil
		}
	}
	return nil, nil
}

// Prepend inserts a quiz at the front of the collection (newest first,
// matching the display order).
func (r *QuizRepo) Prepend(ctx context.Context, q *quiz.Quiz) error {
	quizzes, err := r.List(ctx)
	if err != nil {
		return err
	}
	updated := append([]quiz.Quiz{*q}, quizzes...)
	return r.ReplaceAll(ctx, updated)
}

// Delete removes the quiz with the given id. The caller is responsible
// for cascading the quiz's score history.
func (r *QuizRepo) Delete(ctx context.Context, id string) error {
	quizzes, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := quizzes[:0]
	for _, q := range quizzes {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	return r.ReplaceAll(ctx, kept)
}

// ReplaceAll writes the full collection back.
func (r *QuizRepo) ReplaceAll(ctx context.Context, quizzes []quiz.Quiz) error {
	if quizzes == nil {
		quizzes = []quiz.Quiz{}
	}
	data, err := json.Marshal(quizzes)
	if err != nil {
		return fmt.Errorf("encode quizzes: %w", err)
	}
	return r.store.Set(ctx, r.realm.QuizzesKey(), string(data))
}
