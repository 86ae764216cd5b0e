package play

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/matchup/internal/matching"
	"github.com/abhisek/matchup/internal/router"
	"github.com/abhisek/matchup/internal/screen"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testProblem(t *testing.T, extra map[string]any) *matching.Problem {
	t.Helper()
	raw := map[string]any{
		"unshuffle":            true,
		"all_success_feedback": "Well done",
		"questions": []any{
			map[string]any{"question": "France", "answer": "Paris", "success_feedback": "Yes, Paris"},
			map[string]any{"question": "Italy", "answer": "Rome"},
			map[string]any{"question": "Spain", "answer": "Madrid", "error_feedback": "Think Madrid"},
		},
	}
	for k, v := range extra {
		raw[k] = v
	}
	p, err := matching.Normalize("capitals", raw)
	require.NoError(t, err)
	return p
}

// replaced runs cmd the way the router would and returns the screen it
// switches to.
func replaced(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected a ReplaceScreenMsg")
	return msg.Screen
}

// answer assigns option opt to slot using the arrow keys. Options are in
// question order because the test problem is unshuffled.
func answer(s screen.Screen, slot, opt int) screen.Screen {
	for range slot {
		s, _ = s.Update(specialKey(tea.KeyDown))
	}
	for range opt + 1 {
		s, _ = s.Update(specialKey(tea.KeyRight))
	}
	for range slot {
		s, _ = s.Update(specialKey(tea.KeyUp))
	}
	return s
}

func TestFirst_AsksForSeedWhenMissing(t *testing.T) {
	p := testProblem(t, nil)

	_, ok := First(Config{Problem: p}).(*seedScreen)
	assert.True(t, ok)

	_, ok = First(Config{Problem: p, Seed: "s1"}).(*exerciseScreen)
	assert.True(t, ok)
}

func TestSeedScreen_EnterUsesTypedSeed(t *testing.T) {
	var s screen.Screen = newSeedScreen(Config{Problem: testProblem(t, nil)})
	for _, r := range "abc" {
		s, _ = s.Update(keyPress(r))
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))

	next := replaced(t, cmd).(*exerciseScreen)
	assert.Equal(t, "abc", next.cfg.Seed)
}

func TestSeedScreen_EnterFallsBackToGeneratedSeed(t *testing.T) {
	seed := newSeedScreen(Config{Problem: testProblem(t, nil)})
	_, cmd := seed.Update(specialKey(tea.KeyEnter))

	next := replaced(t, cmd).(*exerciseScreen)
	assert.Equal(t, seed.input.Fallback, next.cfg.Seed)
	assert.Len(t, next.cfg.Seed, 36)
}

func TestExercise_DeduplicatesRepeatedAnswers(t *testing.T) {
	raw := map[string]any{"questions": []any{
		map[string]any{"question": "2+2", "answer": "4"},
		map[string]any{"question": "3+1", "answer": "4"},
		map[string]any{"question": "1+1", "answer": "2"},
	}}
	p, err := matching.Normalize("sums", raw)
	require.NoError(t, err)

	s := newExerciseScreen(Config{Problem: p, Seed: "x"})
	assert.Len(t, s.options, 2)
	assert.Len(t, s.board.Options, 2)
	assert.Len(t, s.board.Questions, 3)
}

func TestExercise_FollowsPresentedOrder(t *testing.T) {
	p := testProblem(t, nil)
	raw := p.Raw()
	delete(raw, "unshuffle")
	shuffled, err := matching.Normalize(p.ID(), raw)
	require.NoError(t, err)

	s := newExerciseScreen(Config{Problem: shuffled, Seed: "seed-7", Locale: "en"})
	view := matching.Present(shuffled, "seed-7", "en")
	for i, a := range view.Answers {
		assert.Equal(t, a.Identity, s.options[i])
		assert.Equal(t, a.Text, s.board.Options[i])
	}
}

func TestExercise_IncompleteSubmitShowsNotice(t *testing.T) {
	var s screen.Screen = newExerciseScreen(Config{Problem: testProblem(t, nil), Seed: "x"})
	s = answer(s, 0, 0)

	s, cmd := s.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.NotEmpty(t, s.(*exerciseScreen).notice)
	assert.Contains(t, s.View(80, 20), "Match every question")
}

func TestExercise_CorrectSubmission(t *testing.T) {
	var graded []matching.Result
	cfg := Config{
		Problem:  testProblem(t, nil),
		Seed:     "x",
		OnGraded: func(r matching.Result) error { graded = append(graded, r); return nil },
	}

	var s screen.Screen = newExerciseScreen(cfg)
	for i := range 3 {
		s = answer(s, i, i)
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))

	res := replaced(t, cmd).(*resultScreen)
	require.Len(t, graded, 1)
	assert.True(t, graded[0].Valid)
	assert.Equal(t, matching.OutcomeAllCorrect, graded[0].Outcome)
	assert.True(t, res.result.Valid)

	out := res.View(80, 20)
	assert.Contains(t, out, "All matches correct")
	assert.Contains(t, out, "Well done")
	assert.Contains(t, out, "Yes, Paris")
}

func TestExercise_PartialSubmission(t *testing.T) {
	cfg := Config{Problem: testProblem(t, nil), Seed: "x"}

	var s screen.Screen = newExerciseScreen(cfg)
	s = answer(s, 0, 0)
	s = answer(s, 1, 1)
	s = answer(s, 2, 0)
	_, cmd := s.Update(specialKey(tea.KeyEnter))

	res := replaced(t, cmd).(*resultScreen)
	assert.False(t, res.result.Valid)
	assert.Equal(t, 1, res.result.InvalidCount)

	out := res.View(80, 20)
	assert.Contains(t, out, "1 of 3 matches wrong")
	assert.Contains(t, out, "Think Madrid")
}

func TestExercise_CentralizedHidesFeedback(t *testing.T) {
	cfg := Config{Problem: testProblem(t, map[string]any{"centralize": true}), Seed: "x"}

	var s screen.Screen = newExerciseScreen(cfg)
	for i := range 3 {
		s = answer(s, i, i)
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))

	res := replaced(t, cmd).(*resultScreen)
	assert.Nil(t, res.result.Feedback)
	out := res.View(80, 20)
	assert.NotContains(t, out, "Well done")
	assert.NotContains(t, out, "Yes, Paris")
}

func TestExercise_GradedCallbackErrorIsAWarning(t *testing.T) {
	cfg := Config{
		Problem:  testProblem(t, nil),
		Seed:     "x",
		OnGraded: func(matching.Result) error { return errors.New("database is locked") },
	}

	var s screen.Screen = newExerciseScreen(cfg)
	for i := range 3 {
		s = answer(s, i, i)
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))

	res := replaced(t, cmd).(*resultScreen)
	assert.True(t, res.result.Valid)
	assert.Contains(t, res.View(80, 20), "database is locked")
}

func TestResult_RetryAndQuit(t *testing.T) {
	cfg := Config{Problem: testProblem(t, nil), Seed: "x"}
	res := newResultScreen(cfg, matching.Present(cfg.Problem, "x", ""), matching.Result{Valid: true}, "")

	_, cmd := res.Update(keyPress('r'))
	next := replaced(t, cmd).(*exerciseScreen)
	assert.Equal(t, 0, next.board.Filled())

	_, cmd = res.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}
