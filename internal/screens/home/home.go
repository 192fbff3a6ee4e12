package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/generate"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/generatescreen"
	"github.com/abhisek/quizdeck/internal/screens/historyscreen"
	"github.com/abhisek/quizdeck/internal/screens/quizlist"
	"github.com/abhisek/quizdeck/internal/screens/settingsscreen"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	menu       components.Menu
	quizCount  int
	playedOnce bool
	hasLLM     bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. A nil generator disables quiz generation
// but leaves the rest of the app usable.
func New(db *store.Store, generator *generate.Generator) *HomeScreen {
	ctx := context.Background()

	var quizCount int
	var playedOnce bool
	for _, realm := range store.Realms {
		if quizzes, err := db.QuizRepo(realm).List(ctx); err == nil {
			quizCount += len(quizzes)
		}
		if all, err := db.HistoryRepo(realm).All(ctx); err == nil {
			for _, h := range all {
				if len(h.Scores) > 0 {
					playedOnce = true
					break
				}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "My Quizzes", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quizlist.New(db)}
			}
		}},
		{Label: "Generate Quiz", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: generatescreen.New(generator, db)}
			}
		}},
		{Label: "Score History", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: historyscreen.New(db)}
			}
		}},
		{Label: "Settings", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settingsscreen.New(db)}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:       components.NewMenu(items),
		quizCount:  quizCount,
		playedOnce: playedOnce,
		hasLLM:     generator != nil,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("Q U I Z D E C K")
	subtitle := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("AI-generated quizzes in your terminal")
	sections = append(sections, title+"\n"+subtitle)

	stats := fmt.Sprintf("%d quizzes in your deck", h.quizCount)
	if !h.playedOnce {
		stats += "  ·  play one to start your history"
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).Render(stats))

	if !h.hasLLM {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render("No LLM provider configured. Set one up in Settings to generate quizzes."))
	}

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
