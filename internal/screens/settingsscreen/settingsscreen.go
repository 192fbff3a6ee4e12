package settingsscreen

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/settings"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

type settingsLoadedMsg struct {
	Settings settings.Settings
	Err      error
}

type settingsSavedMsg struct {
	Cleared bool
	Err     error
}

var providers = []string{"gemini", "openai", "anthropic"}

const (
	fieldProvider = iota
	fieldAPIKey
	fieldModel
	fieldCount
)

// SettingsScreen edits the persisted LLM provider configuration.
type SettingsScreen struct {
	kv       settings.KV
	provider int
	apiKey   components.TextInput
	model    components.TextInput
	focus    int
	status   string
	errMsg   string
	loaded   bool
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates a SettingsScreen backed by the store's key-value table.
func New(kv settings.KV) *SettingsScreen {
	s := &SettingsScreen{
		kv:     kv,
		apiKey: components.NewTextInput("API key (stored locally)", false, 200),
		model:  components.NewTextInput("model name (blank for default)", false, 80),
	}
	s.apiKey.Model.Blur()
	s.model.Model.Blur()
	return s
}

func (s *SettingsScreen) Init() tea.Cmd {
	kv := s.kv
	return func() tea.Msg {
		stored, err := settings.Load(context.Background(), kv)
		return settingsLoadedMsg{Settings: stored, Err: err}
	}
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Save"},
		{Key: "Ctrl+X", Description: "Clear all"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		for i, p := range providers {
			if p == msg.Settings.Provider {
				s.provider = i
			}
		}
		s.apiKey.Model.SetValue(msg.Settings.APIKey)
		s.model.Model.SetValue(msg.Settings.Model)
		return s, nil

	case settingsSavedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		if msg.Cleared {
			s.status = "Settings cleared"
			s.apiKey.Model.SetValue("")
			s.model.Model.SetValue("")
		} else {
			s.status = "Settings saved"
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s.forwardToInput(msg)
}

func (s *SettingsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case "tab", "shift+tab":
		if msg.String() == "tab" {
			s.focus = (s.focus + 1) % fieldCount
		} else {
			s.focus = (s.focus + fieldCount - 1) % fieldCount
		}
		s.syncFocus()
		return s, nil

	case "left", "right":
		if s.focus == fieldProvider {
			if msg.String() == "right" {
				s.provider = (s.provider + 1) % len(providers)
			} else {
				s.provider = (s.provider + len(providers) - 1) % len(providers)
			}
			return s, nil
		}

	case "enter":
		return s, s.save()

	case "ctrl+x":
		kv := s.kv
		return s, func() tea.Msg {
			err := settings.Clear(context.Background(), kv)
			return settingsSavedMsg{Cleared: true, Err: err}
		}
	}

	return s.forwardToInput(msg)
}

func (s *SettingsScreen) syncFocus() {
	s.apiKey.Model.Blur()
	s.model.Model.Blur()
	switch s.focus {
	case fieldAPIKey:
		s.apiKey.Model.Focus()
	case fieldModel:
		s.model.Model.Focus()
	}
}

func (s *SettingsScreen) forwardToInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.focus {
	case fieldAPIKey:
		s.apiKey, cmd = s.apiKey.Update(msg)
	case fieldModel:
		s.model, cmd = s.model.Update(msg)
	}
	return s, cmd
}

func (s *SettingsScreen) save() tea.Cmd {
	kv := s.kv
	stored := settings.Settings{
		Provider: providers[s.provider],
		APIKey:   strings.TrimSpace(s.apiKey.Value()),
		Model:    strings.TrimSpace(s.model.Value()),
	}
	return func() tea.Msg {
		err := settings.Save(context.Background(), kv, stored)
		return settingsSavedMsg{Err: err}
	}
}

func (s *SettingsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading settings...")
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

	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(form.Render(label("Provider", s.focus == fieldProvider)))
	b.WriteString("\n")
	var opts []string
	for i, p := range providers {
		if i == s.provider {
			opts = append(opts, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("["+p+"]"))
		} else {
			opts = append(opts, lipgloss.NewStyle().Foreground(theme.TextDim).Render(" "+p+" "))
		}
	}
	b.WriteString(form.Render(strings.Join(opts, "  ")))
	b.WriteString("\n\n")

	b.WriteString(form.Render(label("API key", s.focus == fieldAPIKey)))
	b.WriteString("\n")
	b.WriteString(form.Render(s.apiKey.View()))
	b.WriteString("\n\n")

	b.WriteString(form.Render(label("Model", s.focus == fieldModel)))
	b.WriteString("\n")
	b.WriteString(form.Render(s.model.View()))
	b.WriteString("\n\n")

	if s.errMsg != "" {
		b.WriteString(form.Render(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg)))
		b.WriteString("\n")
	} else if s.status != "" {
		b.WriteString(form.Render(lipgloss.NewStyle().Foreground(theme.Success).Render(s.status)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(form.Render(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
		Render("Stored settings take precedence over environment variables.")))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
