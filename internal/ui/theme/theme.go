package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, muted for long exercise sessions.
var (
	Primary   = lipgloss.Color("#7C83FD") // Periwinkle
	Secondary = lipgloss.Color("#2DD4BF") // Aqua
	Accent    = lipgloss.Color("#FBBF24") // Saffron
	Success   = lipgloss.Color("#4ADE80") // Mint
	Error     = lipgloss.Color("#FB7185") // Coral
	Text      = lipgloss.Color("#E2E8F0") // Mist
	TextDim   = lipgloss.Color("#8B95A7") // Pewter
	BgCard    = lipgloss.Color("#1F2433") // Ink
	Border    = lipgloss.Color("#3B4252") // Graphite
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Bar = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Unassigned = lipgloss.NewStyle().
			Foreground(TextDim)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent)
)
