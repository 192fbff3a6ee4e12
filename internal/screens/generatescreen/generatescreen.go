package generatescreen

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/generate"
	"github.com/abhisek/quizdeck/internal/history"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/playscreen"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// quizGeneratedMsg is sent when generation finishes.
type quizGeneratedMsg struct {
	Quiz *quiz.Quiz
	Err  error
}

var difficulties = []string{"beginner", "intermediate", "advanced"}

// field indexes for the form.
const (
	fieldTopic = iota
	fieldDetails
	fieldDifficulty
	fieldCount
)

// GenerateScreen collects a topic and produces a new quiz.
type GenerateScreen struct {
	generator  *generate.Generator
	db         *store.Store
	topic      components.TextInput
	details    components.TextInput
	difficulty int
	focus      int
	generating bool
	errMsg     string
}

var _ screen.Screen = (*GenerateScreen)(nil)
var _ screen.KeyHintProvider = (*GenerateScreen)(nil)

// New creates a GenerateScreen. A nil generator means no provider is
// configured; the screen shows instructions instead of the form.
func New(generator *generate.Generator, db *store.Store) *GenerateScreen {
	s := &GenerateScreen{
		generator: generator,
		db:        db,
		topic:     components.NewTextInput("e.g. Go concurrency, French history...", false, 80),
		details:   components.NewTextInput("optional extra instructions", false, 120),
	}
	s.details.Model.Blur()
	return s
}

func (s *GenerateScreen) Init() tea.Cmd {
	return s.topic.Init()
}

func (s *GenerateScreen) Title() string {
	return "Generate Quiz"
}

func (s *GenerateScreen) KeyHints() []layout.KeyHint {
	// The request itself cannot be cancelled; Esc only leaves the
	// screen while it runs.
	if s.generating {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Generate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GenerateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizGeneratedMsg:
		s.generating = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		histSvc := history.NewService(s.db.HistoryRepo(store.RealmCustom))
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: playscreen.New(msg.Quiz, histSvc)}
		}

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardToInput(msg)
}

func (s *GenerateScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.generating {
		if key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "tab", "shift+tab":
		if key == "tab" {
			s.focus = (s.focus + 1) % fieldCount
		} else {
			s.focus = (s.focus + fieldCount - 1) % fieldCount
		}
		s.syncFocus()
		return s, nil

	case "enter":
		return s.startGeneration()

	case "left", "right":
		if s.focus == fieldDifficulty {
			if key == "right" {
				s.difficulty = (s.difficulty + 1) % len(difficulties)
			} else {
				s.difficulty = (s.difficulty + len(difficulties) - 1) % len(difficulties)
			}
			return s, nil
		}
	}

	return s.forwardToInput(msg)
}

func (s *GenerateScreen) syncFocus() {
	s.topic.Model.Blur()
	s.details.Model.Blur()
	switch s.focus {
	case fieldTopic:
		s.topic.Model.Focus()
	case fieldDetails:
		s.details.Model.Focus()
	}
}

func (s *GenerateScreen) forwardToInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.focus {
	case fieldTopic:
		s.topic, cmd = s.topic.Update(msg)
	case fieldDetails:
		s.details, cmd = s.details.Update(msg)
	}
	return s, cmd
}

// startGeneration kicks off one LLM call and saves the result to the
// custom realm before handing it to the play screen.
func (s *GenerateScreen) startGeneration() (screen.Screen, tea.Cmd) {
	if s.generator == nil {
		s.errMsg = "No LLM provider configured. Set an API key in Settings or via environment variables."
		return s, nil
	}

	topic := strings.TrimSpace(s.topic.Value())
	if topic == "" {
		s.errMsg = "Topic is required"
		return s, nil
	}

	s.errMsg = ""
	s.generating = true

	input := generate.Input{
		Topic:      topic,
		Details:    strings.TrimSpace(s.details.Value()),
		Difficulty: difficulties[s.difficulty],
	}
	generator := s.generator
	db := s.db

	return s, func() tea.Msg {
		ctx := context.Background()
		q, err := generator.Generate(ctx, input)
		if err != nil {
			return quizGeneratedMsg{Err: err}
		}
		if err := db.QuizRepo(store.RealmCustom).Prepend(ctx, q); err != nil {
			return quizGeneratedMsg{Err: fmt.Errorf("save quiz: %w", err)}
		}
		return quizGeneratedMsg{Quiz: q}
	}
}

func (s *GenerateScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	if s.generating {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n\n  Generating your quiz...\n\n  This usually takes a few seconds.")
	}

	label := func(text string, focused bool) string {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if focused {
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}
		return style.Render(text)
	}

	fw := min(width-8, 70)
	form := lipgloss.NewStyle().Width(fw)

	b.WriteString(form.Render(label("Topic", s.focus == fieldTopic)))
	b.WriteString("\n")
	b.WriteString(form.Render(s.topic.View()))
	b.WriteString("\n\n")

	b.WriteString(form.Render(label("Details", s.focus == fieldDetails)))
	b.WriteString("\n")
	b.WriteString(form.Render(s.details.View()))
	b.WriteString("\n\n")

	b.WriteString(form.Render(label("Difficulty", s.focus == fieldDifficulty)))
	b.WriteString("\n")

	var diffs []string
	for i, d := range difficulties {
		if i == s.difficulty {
			diffs = append(diffs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("["+d+"]"))
		} else {
			diffs = append(diffs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(" "+d+" "))
		}
	}
	b.WriteString(form.Render(strings.Join(diffs, "  ")))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(form.Render(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)))
		b.WriteString("\n")
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
