package play

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/matchup/internal/router"
	"github.com/abhisek/matchup/internal/screen"
	"github.com/abhisek/matchup/internal/ui/components"
	"github.com/abhisek/matchup/internal/ui/layout"
	"github.com/abhisek/matchup/internal/ui/theme"
)

type seedScreen struct {
	cfg   Config
	input components.TextInput
}

var _ screen.Screen = (*seedScreen)(nil)

func newSeedScreen(cfg Config) *seedScreen {
	return &seedScreen{
		cfg:   cfg,
		input: components.NewTextInput(uuid.NewString(), 64),
	}
}

func (s *seedScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *seedScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		cfg := s.cfg
		cfg.Seed = strings.TrimSpace(s.input.Value())
		if cfg.Seed == "" {
			cfg.Seed = s.input.Fallback
		}
		next := newExerciseScreen(cfg)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *seedScreen) View(width, height int) string {
	body := theme.Title.Render("Session seed") + "\n\n" +
		theme.Hint.Render("The same seed always shows the answers in the same order.") + "\n\n" +
		s.input.View()
	return theme.Card.Width(min(width-4, 72)).Render(body)
}

func (s *seedScreen) Title() string { return "New Session" }

func (s *seedScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
