package play

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/matchup/internal/identity"
	"github.com/abhisek/matchup/internal/matching"
	"github.com/abhisek/matchup/internal/router"
	"github.com/abhisek/matchup/internal/screen"
	"github.com/abhisek/matchup/internal/ui/components"
	"github.com/abhisek/matchup/internal/ui/layout"
	"github.com/abhisek/matchup/internal/ui/theme"
)

type exerciseScreen struct {
	cfg     Config
	view    matching.DisplayView
	options []identity.ID
	board   components.MatchBoard
	notice  string
}

var _ screen.Screen = (*exerciseScreen)(nil)

func newExerciseScreen(cfg Config) *exerciseScreen {
	view := matching.Present(cfg.Problem, cfg.Seed, cfg.Locale)

	questions := make([]string, len(view.Questions))
	for i, q := range view.Questions {
		questions[i] = q.Text
	}

	// Repeated answer texts share an identity; offer each once, in
	// presented order.
	var labels []string
	var options []identity.ID
	seen := make(map[identity.ID]bool, len(view.Answers))
	for _, a := range view.Answers {
		if seen[a.Identity] {
			continue
		}
		seen[a.Identity] = true
		labels = append(labels, a.Text)
		options = append(options, a.Identity)
	}

	return &exerciseScreen{
		cfg:     cfg,
		view:    view,
		options: options,
		board:   components.NewMatchBoard(questions, labels),
	}
}

func (s *exerciseScreen) Init() tea.Cmd { return nil }

func (s *exerciseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, s.submit()
	}

	s.notice = ""
	var cmd tea.Cmd
	s.board, cmd = s.board.Update(msg)
	return s, cmd
}

// submission builds what a browser client would post for the board.
func (s *exerciseScreen) submission() matching.Submission {
	ids := make([]string, len(s.board.Assigned))
	for i, a := range s.board.Assigned {
		ids[i] = string(s.options[a])
	}
	return matching.Submission{s.view.ProblemID: ids}
}

func (s *exerciseScreen) submit() tea.Cmd {
	if !s.board.Complete() {
		s.notice = "Match every question before submitting."
		return nil
	}

	sub := s.submission()
	p := s.cfg.Problem
	if !matching.IsSubmissionWellFormed(p, sub) {
		s.notice = "Submission rejected: unknown answer."
		return nil
	}
	res, err := matching.Grade(p, sub)
	if err != nil {
		s.notice = "Submission rejected: " + err.Error()
		return nil
	}

	var warning string
	if s.cfg.OnGraded != nil {
		if err := s.cfg.OnGraded(res); err != nil {
			warning = err.Error()
		}
	}

	s.board.Locked = true
	next := newResultScreen(s.cfg, s.view, res, warning)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *exerciseScreen) View(width, height int) string {
	var sb strings.Builder
	if s.view.Header != "" {
		sb.WriteString(theme.Title.Render(s.view.Header))
		sb.WriteString("\n\n")
	}
	sb.WriteString(s.board.View())
	sb.WriteString("\n")

	inner := min(width-6, 72)
	sb.WriteString(components.NewProgressBar("Matched", s.board.Filled(), len(s.board.Assigned), inner).View())

	if s.notice != "" {
		sb.WriteString("\n\n")
		sb.WriteString(theme.Warning.Render(s.notice))
	}
	return theme.Card.Render(sb.String())
}

func (s *exerciseScreen) Title() string { return "Match the Answers" }

func (s *exerciseScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Question"},
		{Key: "←→", Description: "Answer"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
