package history

import (
	"math"
	"time"
)

// MaxRecords is the retained window of score records per quiz: once a
// sixth record is appended the oldest is dropped.
const MaxRecords = 5

// DefaultTargetScore is the target percentage assigned when a quiz gets
// its first score record.
const DefaultTargetScore = 80

// ScoreRecord is one completed play of a quiz.
type ScoreRecord struct {
	Score          int       `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	Percentage     int       `json:"percentage"`
	Timestamp      time.Time `json:"timestamp"`
}

// ScoreHistory is the per-quiz record window plus the player's target.
type ScoreHistory struct {
	QuizID      string        `json:"quizId"`
	TargetScore int           `json:"targetScore"`
	Scores      []ScoreRecord `json:"scores"`
}

// Best returns the highest percentage in the window, or 0 when empty.
func (h *ScoreHistory) Best() int {
	best := 0
	for _, r := range h.Scores {
		if r.Percentage > best {
			best = r.Percentage
		}
	}
	return best
}

// Latest returns the most recent record, or nil when the window is empty.
func (h *ScoreHistory) Latest() *ScoreRecord {
	if len(h.Scores) == 0 {
		return nil
	}
	return &h.Scores[len(h.Scores)-1]
}

// TargetMet reports whether the most recent play reached the target.
func (h *ScoreHistory) TargetMet() bool {
	latest := h.Latest()
	return latest != nil && latest.Percentage >= h.TargetScore
}

// Percentage computes the rounded score percentage for a play.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(score) / float64(total)))
}
