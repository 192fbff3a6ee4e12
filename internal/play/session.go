// Package play implements the per-attempt quiz state machine.
//
// A Session walks a play copy of a quiz through three states:
//
//	Answering -> Explanation -> Answering (next question)
//	                         -> Results (after the last question)
//
// Transitions are plain method calls with no rendering dependencies, so
// the machine is testable without driving the TUI. Persisting the final
// score is the caller's responsibility (the session hands back a Result).
package play

import (
	"errors"
	"math/rand/v2"

	"github.com/abhisek/quizdeck/internal/quiz"
)

// State is the session phase.
type State int

const (
	// StateAnswering waits for an option selection on the current question.
	StateAnswering State = iota

	// StateExplanation shows the explanation for the answered question.
	StateExplanation

	// StateResults is terminal: all questions answered, score final.
	StateResults
)

// ErrNoQuestions is returned when a session is created for a quiz with an
// empty question list. Normalization rejects such quizzes upstream, so
// hitting this means a caller bypassed ingestion.
var ErrNoQuestions = errors.New("quiz has no questions")

// Result is the outcome of a finished session.
type Result struct {
	QuizID string
	Score  int
	Total  int
}

// Session tracks one play-through of a quiz.
type Session struct {
	quiz     *quiz.Quiz
	state    State
	index    int
	score    int
	selected int // option picked for the current question, -1 before answering
}

// NewSession starts a session at the first question with a zero score.
// The quiz is used as-is; shuffle before calling for a fresh permutation.
func NewSession(q *quiz.Quiz) (*Session, error) {
	if len(q.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	return &Session{quiz: q, selected: -1}, nil
}

// NewShuffledSession re-shuffles every question and starts a session on
// the shuffled copy. The input quiz is not modified, so repeated attempts
// at a stored quiz never memorize answer positions.
func NewShuffledSession(q *quiz.Quiz, rng *rand.Rand) (*Session, error) {
	if len(q.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	play, err := quiz.Reshuffled(q, rng)
	if err != nil {
		return nil, err
	}
	return NewSession(play)
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Quiz returns the in-memory play copy.
func (s *Session) Quiz() *quiz.Quiz { return s.quiz }

// Index returns the current question index.
func (s *Session) Index() int { return s.index }

// Score returns the running score.
func (s *Session) Score() int { return s.score }

// Total returns the number of questions.
func (s *Session) Total() int { return len(s.quiz.Questions) }

// Current returns the question being answered or explained.
func (s *Session) Current() quiz.Question {
	return s.quiz.Questions[s.index]
}

// Selected returns the option picked for the current question, or -1 when
// it has not been answered yet.
func (s *Session) Selected() int { return s.selected }

// Answer records the selection for the current question and moves to the
// explanation. Answers are write-once: outside StateAnswering, or with an
// out-of-range option, the call is ignored and reports false.
func (s *Session) Answer(option int) bool {
	if s.state != StateAnswering {
		return false
	}
	if option < 0 || option >= len(s.Current().Options) {
		return false
	}

	s.selected = option
	if option == s.Current().AnswerIndex {
		s.score++
	}
	s.state = StateExplanation
	return true
}

// Correct reports whether the recorded answer for the current question
// was right. Only meaningful in StateExplanation.
func (s *Session) Correct() bool {
	return s.selected == s.Current().AnswerIndex
}

// Advance leaves the explanation. On the last question it moves to
// StateResults and returns the final Result for the caller to persist;
// otherwise it moves to the next question with the selection cleared and
// returns nil. Outside StateExplanation the call is a no-op.
func (s *Session) Advance() *Result {
	if s.state != StateExplanation {
		return nil
	}

	if s.index == len(s.quiz.Questions)-1 {
		s.state = StateResults
		return &Result{
			QuizID: s.quiz.ID,
			Score:  s.score,
			Total:  len(s.quiz.Questions),
		}
	}

	s.index++
	s.selected = -1
	s.state = StateAnswering
	return nil
}

// Finished reports whether the session reached the terminal state.
func (s *Session) Finished() bool { return s.state == StateResults }
