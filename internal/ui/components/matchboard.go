package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/matchup/internal/ui/theme"
)

// Unassigned marks a slot with no option chosen yet.
const Unassigned = -1

// MatchBoard pairs every question slot with one of a shared list of
// options. Several slots may hold the same option.
type MatchBoard struct {
	Questions []string
	Options   []string
	Assigned  []int
	Cursor    int
	Locked    bool
}

// NewMatchBoard creates a board with every slot unassigned.
func NewMatchBoard(questions, options []string) MatchBoard {
	assigned := make([]int, len(questions))
	for i := range assigned {
		assigned[i] = Unassigned
	}
	return MatchBoard{
		Questions: questions,
		Options:   options,
		Assigned:  assigned,
	}
}

// Init returns nil.
func (b MatchBoard) Init() tea.Cmd {
	return nil
}

// Update moves the cursor between slots and cycles the option of the
// slot under it. Enter is left to the owning screen.
func (b MatchBoard) Update(msg tea.Msg) (MatchBoard, tea.Cmd) {
	if b.Locked || len(b.Questions) == 0 {
		return b, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if b.Cursor > 0 {
			b.Cursor--
		}
	case "down", "j", "tab":
		if b.Cursor < len(b.Questions)-1 {
			b.Cursor++
		}
	case "right", "l":
		b.cycle(1)
	case "left", "h":
		b.cycle(-1)
	case "backspace", "x":
		b.Assigned[b.Cursor] = Unassigned
	}
	return b, nil
}

// cycle steps the current slot through the options, wrapping at both
// ends. An unassigned slot starts at the first or last option.
func (b *MatchBoard) cycle(step int) {
	n := len(b.Options)
	if n == 0 {
		return
	}
	cur := b.Assigned[b.Cursor]
	if cur == Unassigned {
		if step > 0 {
			b.Assigned[b.Cursor] = 0
		} else {
			b.Assigned[b.Cursor] = n - 1
		}
		return
	}
	b.Assigned[b.Cursor] = ((cur+step)%n + n) % n
}

// Complete reports whether every slot holds an option.
func (b MatchBoard) Complete() bool {
	return b.Filled() == len(b.Assigned)
}

// Filled returns the number of assigned slots.
func (b MatchBoard) Filled() int {
	n := 0
	for _, a := range b.Assigned {
		if a != Unassigned {
			n++
		}
	}
	return n
}

// View renders one line per slot: the question and its chosen option.
func (b MatchBoard) View() string {
	width := 0
	for _, q := range b.Questions {
		width = max(width, lipgloss.Width(q))
	}

	var sb strings.Builder
	for i, q := range b.Questions {
		prefix := "  "
		style := theme.Unselected
		if i == b.Cursor && !b.Locked {
			prefix = "▸ "
			style = theme.Selected
		}

		answer := theme.Unassigned.Render("───")
		if a := b.Assigned[i]; a != Unassigned {
			answer = theme.Body.Render(b.Options[a])
		}

		pad := strings.Repeat(" ", width-lipgloss.Width(q))
		sb.WriteString(style.Render(fmt.Sprintf("%s%d. %s%s", prefix, i+1, q, pad)))
		sb.WriteString("  →  ")
		sb.WriteString(answer)
		sb.WriteString("\n")
	}
	return sb.String()
}
