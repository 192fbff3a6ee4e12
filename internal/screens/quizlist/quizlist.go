package quizlist

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/history"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/quizfile"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/playscreen"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

type quizzesLoadedMsg struct {
	Quizzes []entry
	Err     error
}

type quizDeletedMsg struct {
	Err error
}

type quizExportedMsg struct {
	Path string
	Err  error
}

type quizImportedMsg struct {
	Title string
	Err   error
}

// entry pairs a quiz with the realm it came from.
type entry struct {
	Quiz  quiz.Quiz
	Realm store.Realm
}

// QuizListScreen shows every stored quiz across both realms.
type QuizListScreen struct {
	db         *store.Store
	selected   int
	quizzes    []entry
	loaded     bool
	status     string
	errMsg     string
	confirm    bool // pending delete confirmation
	importing  bool // paste-import mode
	pasteInput components.TextInput
}

var _ screen.Screen = (*QuizListScreen)(nil)
var _ screen.KeyHintProvider = (*QuizListScreen)(nil)

// New creates a QuizListScreen backed by the store.
func New(db *store.Store) *QuizListScreen {
	return &QuizListScreen{db: db}
}

func (s *QuizListScreen) Init() tea.Cmd {
	return s.loadQuizzes()
}

func (s *QuizListScreen) Title() string {
	return "My Quizzes"
}

func (s *QuizListScreen) KeyHints() []layout.KeyHint {
	if s.confirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Cancel"},
		}
	}
	if s.importing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Import"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Play"},
		{Key: "I", Description: "Import"},
		{Key: "E", Description: "Export"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuizListScreen) loadQuizzes() tea.Cmd {
	db := s.db
	return func() tea.Msg {
		ctx := context.Background()
		var all []entry
		for _, realm := range store.Realms {
			quizzes, err := db.QuizRepo(realm).List(ctx)
			if err != nil {
				return quizzesLoadedMsg{Err: err}
			}
			for _, q := range quizzes {
				all = append(all, entry{Quiz: q, Realm: realm})
			}
		}
		return quizzesLoadedMsg{Quizzes: all}
	}
}

func (s *QuizListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizzesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.quizzes = msg.Quizzes
			if s.selected >= len(s.quizzes) {
				s.selected = max(len(s.quizzes)-1, 0)
			}
		}
		s.loaded = true
		return s, nil

	case quizDeletedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.status = "Quiz deleted"
		return s, s.loadQuizzes()

	case quizExportedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.status = fmt.Sprintf("Exported to %s", msg.Path)
		return s, nil

	case quizImportedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.importing = false
		s.status = fmt.Sprintf("Imported %q", msg.Title)
		return s, s.loadQuizzes()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.importing {
		var cmd tea.Cmd
		s.pasteInput, cmd = s.pasteInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *QuizListScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirm {
		switch key {
		case "y", "Y":
			s.confirm = false
			return s, s.deleteSelected()
		case "n", "N", "esc":
			s.confirm = false
		}
		return s, nil
	}

	if s.importing {
		switch key {
		case "esc":
			s.importing = false
			s.errMsg = ""
			return s, nil
		case "enter":
			return s, s.importPasted()
		}
		var cmd tea.Cmd
		s.pasteInput, cmd = s.pasteInput.Update(msg)
		return s, cmd
	}

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.quizzes)-1 {
			s.selected++
		}
	case "enter":
		if s.selected < len(s.quizzes) {
			q := s.quizzes[s.selected].Quiz
			realm := s.quizzes[s.selected].Realm
			histSvc := history.NewService(s.db.HistoryRepo(realm))
			return s, func() tea.Msg {
				return router.PushScreenMsg{Screen: playscreen.New(&q, histSvc)}
			}
		}
	case "e", "E":
		if s.selected < len(s.quizzes) {
			q := s.quizzes[s.selected].Quiz
			return s, func() tea.Msg {
				path, err := quizfile.Export(&q, "")
				return quizExportedMsg{Path: path, Err: err}
			}
		}
	case "d", "D":
		if s.selected < len(s.quizzes) {
			s.confirm = true
		}
	case "i", "I":
		s.importing = true
		s.errMsg = ""
		s.status = ""
		s.pasteInput = components.NewTextInput("paste quiz JSON here", false, 0)
	}
	return s, nil
}

// importPasted runs pasted text through the same extraction and
// normalization path as generation and saves the quiz to the custom realm.
func (s *QuizListScreen) importPasted() tea.Cmd {
	text := strings.TrimSpace(s.pasteInput.Value())
	if text == "" {
		s.errMsg = "Paste a quiz JSON payload first"
		return nil
	}

	db := s.db
	return func() tea.Msg {
		q, err := quizfile.ImportText(text, nil)
		if err != nil {
			return quizImportedMsg{Err: err}
		}
		if err := db.QuizRepo(store.RealmCustom).Prepend(context.Background(), q); err != nil {
			return quizImportedMsg{Err: fmt.Errorf("save quiz: %w", err)}
		}
		return quizImportedMsg{Title: q.Title}
	}
}

// deleteSelected removes the quiz and cascades its score history.
func (s *QuizListScreen) deleteSelected() tea.Cmd {
	if s.selected >= len(s.quizzes) {
		return nil
	}
	target := s.quizzes[s.selected]
	db := s.db
	return func() tea.Msg {
		ctx := context.Background()
		if err := db.QuizRepo(target.Realm).Delete(ctx, target.Quiz.ID); err != nil {
			return quizDeletedMsg{Err: err}
		}
		histSvc := history.NewService(db.HistoryRepo(target.Realm))
		if err := histSvc.Delete(ctx, target.Quiz.ID); err != nil {
			return quizDeletedMsg{Err: err}
		}
		return quizDeletedMsg{}
	}
}

func (s *QuizListScreen) View(width, height int) string {
	if s.errMsg != "" && !s.importing {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading quizzes...")
	}
	if len(s.quizzes) == 0 && !s.importing {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Generate one from the home screen, or press I to paste one in.")
	}

	var b strings.Builder
	b.WriteString("\n")

	if s.importing {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
				Render("Paste a quiz JSON payload and press Enter:")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.pasteInput.View()))
		b.WriteString("\n")
		if s.errMsg != "" {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	} else if s.confirm && s.selected < len(s.quizzes) {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).Bold(true).
			Render(fmt.Sprintf("Delete \"%s\" and its score history? [Y/N]", s.quizzes[s.selected].Quiz.Title)))
		b.WriteString("\n\n")
	} else if s.status != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Success).
			Render(s.status))
		b.WriteString("\n\n")
	}

	for i, e := range s.quizzes {
		prefix := "  "
		if i == s.selected {
			prefix = "▸ "
		}

		realmTag := "starter"
		if e.Realm == store.RealmCustom {
			realmTag = "custom"
		}

		line := fmt.Sprintf("%s%s  [%s · %s · %d questions]",
			prefix, e.Quiz.Title, e.Quiz.Topic, realmTag, len(e.Quiz.Questions))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
