package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/matchup/internal/router"
	"github.com/abhisek/matchup/internal/screen"
	"github.com/abhisek/matchup/internal/ui/layout"
)

type stubScreen struct {
	title string
	hints []layout.KeyHint
}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "body of " + s.title }
func (s *stubScreen) Title() string                           { return s.title }

type hintedScreen struct{ stubScreen }

func (s *hintedScreen) KeyHints() []layout.KeyHint { return s.hints }

func sized(m tea.Model) AppModel {
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m.(AppModel)
}

func TestView_EmptyUntilSized(t *testing.T) {
	m := NewAppModel(&stubScreen{title: "Start"}, "p1")
	if got := m.frame(); got != "" {
		t.Errorf("expected empty view before the first resize, got %q", got)
	}
}

func TestView_FrameShowsTitleAndStatus(t *testing.T) {
	m := sized(NewAppModel(&stubScreen{title: "Start"}, "capitals"))
	out := m.frame()

	for _, want := range []string{"Matchup", "Start", "capitals", "body of Start", "Ctrl+C"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestView_TooSmall(t *testing.T) {
	var m tea.Model = NewAppModel(&stubScreen{title: "Start"}, "")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	if out := m.(AppModel).frame(); !strings.Contains(out, "Terminal too small") {
		t.Errorf("expected min size message, got %q", out)
	}
}

func TestView_UsesScreenKeyHints(t *testing.T) {
	first := &hintedScreen{stubScreen{title: "Board", hints: []layout.KeyHint{{Key: "←→", Description: "Answer"}}}}
	m := sized(NewAppModel(first, ""))
	if out := m.frame(); !strings.Contains(out, "Answer") {
		t.Error("expected footer to show the screen's key hints")
	}
}

func TestUpdate_CtrlCQuits(t *testing.T) {
	m := sized(NewAppModel(&stubScreen{title: "Start"}, ""))
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestUpdate_EscPopsOnlyAboveRoot(t *testing.T) {
	m := sized(NewAppModel(&stubScreen{title: "Start"}, ""))

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Error("expected no pop at the root screen")
		}
	}

	next, _ := m.Update(router.PushScreenMsg{Screen: &stubScreen{title: "Second"}})
	_, cmd = next.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected router.PopScreenMsg")
	}
}
