// Package history tracks per-quiz score records and target scores.
//
// Each quiz id owns an independent ScoreHistory, created lazily on the
// first score save and deleted either individually or by a bulk reset.
// Deleting a quiz cascades here through Delete.
package history

import (
	"context"
	"fmt"
	"time"
)

// Repo persists the full history map for one realm. Reads and writes
// operate on the whole map: the backing store is a flat key-value
// collaborator with no partial-update primitive, so every mutation is a
// read-modify-write of the entire collection.
type Repo interface {
	// All returns every history keyed by quiz id. A missing or corrupt
	// stored value yields an empty map, never an error surfaced here.
	All(ctx context.Context) (map[string]*ScoreHistory, error)

	// ReplaceAll writes the full history map back.
	ReplaceAll(ctx context.Context, all map[string]*ScoreHistory) error
}

// Service applies history mutations on top of a Repo.
type Service struct {
	repo Repo
}

// NewService creates a history service backed by repo.
func NewService(repo Repo) *Service {
	return &Service{repo: repo}
}

// Get returns the history for a quiz, or nil when none exists yet.
func (s *Service) Get(ctx context.Context, quizID string) (*ScoreHistory, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return all[quizID], nil
}

// All returns every stored history keyed by quiz id.
func (s *Service) All(ctx context.Context) (map[string]*ScoreHistory, error) {
	return s.repo.All(ctx)
}

// SaveScore appends a record for a completed play, creating the history
// with the default target on first save and trimming the window to the
// MaxRecords most recent entries.
func (s *Service) SaveScore(ctx context.Context, quizID string, score, total int) (*ScoreRecord, error) {
	if total <= 0 {
		return nil, fmt.Errorf("save score: total questions must be positive, got %d", total)
	}
	if score < 0 || score > total {
		return nil, fmt.Errorf("save score: score %d out of range for %d questions", score, total)
	}

	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	h := all[quizID]
	if h == nil {
		h = &ScoreHistory{QuizID: quizID, TargetScore: DefaultTargetScore}
		all[quizID] = h
	}

	record := ScoreRecord{
		Score:          score,
		TotalQuestions: total,
		Percentage:     Percentage(score, total),
		Timestamp:      time.Now(),
	}
	h.Scores = append(h.Scores, record)
	if len(h.Scores) > MaxRecords {
		h.Scores = h.Scores[len(h.Scores)-MaxRecords:]
	}

	if err := s.repo.ReplaceAll(ctx, all); err != nil {
		return nil, err
	}
	return &record, nil
}

// SetTarget updates a quiz's target percentage (0-100), creating the
// history entry when the quiz has never been played.
func (s *Service) SetTarget(ctx context.Context, quizID string, target int) error {
	if target < 0 || target > 100 {
		return fmt.Errorf("set target: %d is outside 0-100", target)
	}

	all, err := s.repo.All(ctx)
	if err != nil {
		return err
	}

	h := all[quizID]
	if h == nil {
		h = &ScoreHistory{QuizID: quizID}
		all[quizID] = h
	}
	h.TargetScore = target

	return s.repo.ReplaceAll(ctx, all)
}

// Reset clears a quiz's score records but keeps its target.
func (s *Service) Reset(ctx context.Context, quizID string) error {
	all, err := s.repo.All(ctx)
	if err != nil {
		return err
	}
	h := all[quizID]
	if h == nil {
		return nil
	}
	h.Scores = nil
	return s.repo.ReplaceAll(ctx, all)
}

// ResetAll removes every history in the realm at once.
func (s *Service) ResetAll(ctx context.Context) error {
	return s.repo.ReplaceAll(ctx, map[string]*ScoreHistory{})
}

// Delete removes a quiz's history entirely, including its target.
// Called when the quiz itself is deleted.
func (s *Service) Delete(ctx context.Context, quizID string) error {
	all, err := s.repo.All(ctx)
	if err != nil {
		return err
	}
	if _, ok := all[quizID]; !ok {
		return nil
	}
	delete(all, quizID)
	return s.repo.ReplaceAll(ctx, all)
}
