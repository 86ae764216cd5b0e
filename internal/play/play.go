// Package play runs one matching problem in the terminal: an optional seed
// prompt, the exercise board, and the graded result.
package play

import (
	"github.com/abhisek/matchup/internal/app"
	"github.com/abhisek/matchup/internal/matching"
	"github.com/abhisek/matchup/internal/screen"
)

// GradedFunc is called once per graded submission. A returned error is
// shown on the result screen as a warning; it does not undo the grade.
type GradedFunc func(matching.Result) error

// Config describes one play session.
type Config struct {
	Problem *matching.Problem
	Locale  string

	// Seed orders the answers. When empty the learner is asked for one,
	// with a random default.
	Seed string

	OnGraded GradedFunc
}

// First returns the screen a session starts on.
func First(cfg Config) screen.Screen {
	if cfg.Seed == "" {
		return newSeedScreen(cfg)
	}
	return newExerciseScreen(cfg)
}

// Run plays cfg.Problem until the learner quits.
func Run(cfg Config) error {
	return app.Run(First(cfg), cfg.Problem.ID())
}
