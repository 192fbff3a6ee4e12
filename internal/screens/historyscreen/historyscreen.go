package historyscreen

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/history"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

type historyLoadedMsg struct {
	Rows []row
	Err  error
}

type targetSavedMsg struct {
	Err error
}

// row joins a quiz title with its score history and the realm it lives in.
type row struct {
	Title   string
	Realm   store.Realm
	History *history.ScoreHistory
}

// HistoryScreen shows score records for every played quiz.
type HistoryScreen struct {
	db          *store.Store
	rows        []row
	selected    int
	expanded    map[int]bool
	editing     bool
	targetInput components.TextInput
	loaded      bool
	status      string
	errMsg      string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a HistoryScreen backed by the store.
func New(db *store.Store) *HistoryScreen {
	return &HistoryScreen{
		db:       db,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) load() tea.Cmd {
	db := s.db
	return func() tea.Msg {
		ctx := context.Background()

		var rows []row
		for _, realm := range store.Realms {
			titles := make(map[string]string)
			quizzes, err := db.QuizRepo(realm).List(ctx)
			if err != nil {
				return historyLoadedMsg{Err: err}
			}
			for _, q := range quizzes {
				titles[q.ID] = q.Title
			}

			all, err := history.NewService(db.HistoryRepo(realm)).All(ctx)
			if err != nil {
				return historyLoadedMsg{Err: err}
			}
			for id, h := range all {
				if len(h.Scores) == 0 {
					continue
				}
				title := titles[id]
				if title == "" {
					title = "(deleted quiz)"
				}
				rows = append(rows, row{Title: title, Realm: realm, History: h})
			}
		}

		// Most recently played first.
		sort.Slice(rows, func(i, j int) bool {
			li, lj := rows[i].History.Latest(), rows[j].History.Latest()
			if li == nil || lj == nil {
				return lj == nil
			}
			return li.Timestamp.After(lj.Timestamp)
		})

		return historyLoadedMsg{Rows: rows}
	}
}

func (s *HistoryScreen) Title() string {
	return "Score History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save target"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "T", Description: "Set target"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.rows = msg.Rows
			if s.selected >= len(s.rows) {
				s.selected = 0
			}
		}
		s.loaded = true
		return s, nil

	case targetSavedMsg:
		s.editing = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.status = "Target updated"
		return s, s.load()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.editing {
		var cmd tea.Cmd
		s.targetInput, cmd = s.targetInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *HistoryScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.editing {
		switch msg.String() {
		case "esc":
			s.editing = false
			return s, nil
		case "enter":
			return s, s.saveTarget()
		}
		var cmd tea.Cmd
		s.targetInput, cmd = s.targetInput.Update(msg)
		return s, cmd
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.rows)-1 {
			s.selected++
		}
	case "enter":
		s.expanded[s.selected] = !s.expanded[s.selected]
	case "t", "T":
		if s.selected < len(s.rows) {
			s.editing = true
			s.errMsg = ""
			s.status = ""
			s.targetInput = components.NewTextInput("0-100", true, 3)
			s.targetInput.Model.SetValue(strconv.Itoa(s.rows[s.selected].History.TargetScore))
		}
	}
	return s, nil
}

// saveTarget persists the edited target for the selected quiz.
func (s *HistoryScreen) saveTarget() tea.Cmd {
	if s.selected >= len(s.rows) {
		s.editing = false
		return nil
	}

	target, err := s.targetInput.NumericValue()
	if err != nil || target < 0 || target > 100 {
		s.errMsg = "Target must be a number between 0 and 100"
		return nil
	}

	r := s.rows[s.selected]
	db := s.db
	return func() tea.Msg {
		svc := history.NewService(db.HistoryRepo(r.Realm))
		return targetSavedMsg{Err: svc.SetTarget(context.Background(), r.History.QuizID, target)}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" && !s.editing {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.rows) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No scores yet. Play a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")

	if s.editing && s.selected < len(s.rows) {
		prompt := fmt.Sprintf("Target for \"%s\" (%%): ", s.rows[s.selected].Title)
		line := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(prompt) +
			s.targetInput.View()
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
		if s.errMsg != "" {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	} else if s.status != "" {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Success).Render(s.status)))
		b.WriteString("\n\n")
	}

	for i, r := range s.rows {
		h := r.History
		latest := h.Latest()

		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}

		targetMark := ""
		if h.TargetMet() {
			targetMark = "  ✓ target"
		}

		line := fmt.Sprintf("%s%s  latest %d%%  best %d%%%s",
			prefix, r.Title, latest.Percentage, h.Best(), targetMark)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			bar := components.NewProgressBar("", float64(latest.Percentage)/100, true, min(width-20, 40))
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
			b.WriteString("\n")

			for j := len(h.Scores) - 1; j >= 0; j-- {
				rec := h.Scores[j]
				detail := fmt.Sprintf("    %s  %d/%d (%d%%)",
					rec.Timestamp.Format("Jan 02, 2006 15:04"),
					rec.Score, rec.TotalQuestions, rec.Percentage)
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(detail)))
				b.WriteString("\n")
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
					Render(fmt.Sprintf("    target: %d%%", h.TargetScore))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
