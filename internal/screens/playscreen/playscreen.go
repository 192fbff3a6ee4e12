package playscreen

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/history"
	"github.com/abhisek/quizdeck/internal/play"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// scoreSavedMsg is sent when the final score has been persisted.
type scoreSavedMsg struct {
	Record *history.ScoreRecord
	Target int
	Err    error
}

// PlayScreen runs a single quiz from first question to results.
type PlayScreen struct {
	quiz    *quiz.Quiz
	session *play.Session
	histSvc *history.Service
	cursor  int
	result  *play.Result
	saved   *history.ScoreRecord
	target  int
	errMsg  string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New creates a PlayScreen for the given quiz. Options are reshuffled
// for this play; the stored quiz is not touched.
func New(q *quiz.Quiz, histSvc *history.Service) *PlayScreen {
	s := &PlayScreen{quiz: q, histSvc: histSvc}

	session, err := play.NewShuffledSession(q, nil)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.session = session
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	return nil
}

func (s *PlayScreen) Title() string {
	if s.session != nil {
		return s.session.Quiz().Title
	}
	return "Play"
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.session == nil {
		return nil
	}
	switch s.session.State() {
	case play.StateAnswering:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Answer"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	case play.StateExplanation:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	default:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Enter", Description: "Done"},
		}
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoreSavedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.saved = msg.Record
		s.target = msg.Target
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" || s.session == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	switch s.session.State() {
	case play.StateAnswering:
		return s.handleAnswering(key)

	case play.StateExplanation:
		if result := s.session.Advance(); result != nil {
			s.result = result
			return s, s.saveScore(result)
		}
		s.cursor = 0
		return s, nil

	case play.StateResults:
		if key == "r" || key == "R" {
			s.retry()
			return s, nil
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	return s, nil
}

func (s *PlayScreen) handleAnswering(key string) (screen.Screen, tea.Cmd) {
	q := s.session.Current()

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(q.Options)-1 {
			s.cursor++
		}
	case "enter":
		s.session.Answer(s.cursor)
	default:
		// Number keys submit directly.
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			n := int(key[0] - '1')
			if n < len(q.Options) {
				s.cursor = n
				s.session.Answer(n)
			}
		}
	}
	return s, nil
}

// retry starts a fresh attempt on a newly shuffled copy of the stored
// quiz, so answer positions never carry over between attempts.
func (s *PlayScreen) retry() {
	session, err := play.NewShuffledSession(s.quiz, nil)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.session = session
	s.cursor = 0
	s.result = nil
	s.saved = nil
	s.target = 0
}

// saveScore persists the result and loads the target for the results view.
func (s *PlayScreen) saveScore(result *play.Result) tea.Cmd {
	histSvc := s.histSvc
	return func() tea.Msg {
		if histSvc == nil {
			return scoreSavedMsg{Target: history.DefaultTargetScore}
		}

		ctx := context.Background()
		record, err := histSvc.SaveScore(ctx, result.QuizID, result.Score, result.Total)
		if err != nil {
			return scoreSavedMsg{Err: fmt.Errorf("save score: %w", err)}
		}

		target := history.DefaultTargetScore
		if h, err := histSvc.Get(ctx, result.QuizID); err == nil && h != nil {
			target = h.TargetScore
		}
		return scoreSavedMsg{Record: record, Target: target}
	}
}
