package components

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func newBoard() MatchBoard {
	return NewMatchBoard([]string{"q1", "q2", "q3"}, []string{"a", "b"})
}

func TestMatchBoard_StartsUnassigned(t *testing.T) {
	b := newBoard()
	assert.Equal(t, []int{Unassigned, Unassigned, Unassigned}, b.Assigned)
	assert.False(t, b.Complete())
	assert.Equal(t, 0, b.Filled())
}

func TestMatchBoard_CycleWraps(t *testing.T) {
	b := newBoard()

	b, _ = b.Update(key(tea.KeyRight))
	assert.Equal(t, 0, b.Assigned[0])
	b, _ = b.Update(key(tea.KeyRight))
	assert.Equal(t, 1, b.Assigned[0])
	b, _ = b.Update(key(tea.KeyRight))
	assert.Equal(t, 0, b.Assigned[0], "right past the last option wraps")
	b, _ = b.Update(key(tea.KeyLeft))
	assert.Equal(t, 1, b.Assigned[0], "left before the first option wraps")
}

func TestMatchBoard_LeftFromUnassignedPicksLast(t *testing.T) {
	b := newBoard()
	b, _ = b.Update(key(tea.KeyLeft))
	assert.Equal(t, 1, b.Assigned[0])
}

func TestMatchBoard_CursorBounds(t *testing.T) {
	b := newBoard()
	b, _ = b.Update(key(tea.KeyUp))
	assert.Equal(t, 0, b.Cursor)

	for range 5 {
		b, _ = b.Update(key(tea.KeyDown))
	}
	assert.Equal(t, 2, b.Cursor)
}

func TestMatchBoard_ClearAndComplete(t *testing.T) {
	b := newBoard()
	for i := range 3 {
		b, _ = b.Update(key(tea.KeyRight))
		if i < 2 {
			b, _ = b.Update(key(tea.KeyDown))
		}
	}
	assert.True(t, b.Complete())

	b, _ = b.Update(key(tea.KeyBackspace))
	assert.Equal(t, Unassigned, b.Assigned[2])
	assert.Equal(t, 2, b.Filled())
}

func TestMatchBoard_LockedIgnoresKeys(t *testing.T) {
	b := newBoard()
	b.Locked = true
	b, _ = b.Update(key(tea.KeyRight))
	assert.Equal(t, Unassigned, b.Assigned[0])
}

func TestMatchBoard_ViewShowsAssignments(t *testing.T) {
	b := newBoard()
	b, _ = b.Update(key(tea.KeyRight))
	b, _ = b.Update(key(tea.KeyRight))

	out := b.View()
	assert.Contains(t, out, "1. q1")
	assert.Contains(t, out, "b")
	assert.Contains(t, out, "───")
}

func TestProgressBar_ShowsCount(t *testing.T) {
	out := NewProgressBar("Assigned", 2, 3, 40).View()
	assert.Contains(t, out, "2/3")
	assert.Contains(t, out, "Assigned")
}

func TestTextInput_FallsBackWhenEmpty(t *testing.T) {
	ti := NewTextInput("fallback", 10)
	assert.Equal(t, "fallback", ti.Value())

	ti, _ = ti.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Equal(t, "x", ti.Value())
}
