package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/matchup/internal/matching"
	"github.com/abhisek/matchup/internal/router"
	"github.com/abhisek/matchup/internal/screen"
	"github.com/abhisek/matchup/internal/ui/layout"
	"github.com/abhisek/matchup/internal/ui/theme"
)

type resultScreen struct {
	cfg     Config
	view    matching.DisplayView
	result  matching.Result
	warning string
}

var _ screen.Screen = (*resultScreen)(nil)

func newResultScreen(cfg Config, view matching.DisplayView, res matching.Result, warning string) *resultScreen {
	return &resultScreen{cfg: cfg, view: view, result: res, warning: warning}
}

func (s *resultScreen) Init() tea.Cmd { return nil }

func (s *resultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "r":
		next := newExerciseScreen(s.cfg)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case "enter", "q":
		return s, tea.Quit
	}
	return s, nil
}

// split separates the aggregate message from the per-slot lines.
func (s *resultScreen) split() (aggregate string, items []string) {
	fb := s.result.Feedback
	if len(fb) == len(s.view.Questions)+1 {
		return fb[0], fb[1:]
	}
	return "", fb
}

func (s *resultScreen) View(width, height int) string {
	var sb strings.Builder
	if s.result.Valid {
		sb.WriteString(theme.Correct.Render("✓ All matches correct"))
	} else {
		sb.WriteString(theme.Incorrect.Render(fmt.Sprintf("✗ %d of %d matches wrong",
			s.result.InvalidCount, len(s.view.Questions))))
	}
	sb.WriteString("\n")

	aggregate, items := s.split()
	if aggregate != "" {
		sb.WriteString("\n")
		sb.WriteString(theme.Body.Render(aggregate))
		sb.WriteString("\n")
	}
	for i, line := range items {
		if line == "" || i >= len(s.view.Questions) {
			continue
		}
		sb.WriteString("\n")
		sb.WriteString(theme.Hint.Render(fmt.Sprintf("%d. %s", i+1, s.view.Questions[i].Text)))
		sb.WriteString("\n   ")
		sb.WriteString(theme.Body.Render(line))
	}

	if s.warning != "" {
		sb.WriteString("\n\n")
		sb.WriteString(theme.Warning.Render("warning: " + s.warning))
	}
	return theme.Card.Render(sb.String())
}

func (s *resultScreen) Title() string { return "Result" }

func (s *resultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Try again"},
		{Key: "Enter", Description: "Done"},
	}
}
