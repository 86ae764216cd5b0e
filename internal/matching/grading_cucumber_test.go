//go:build cucumber

package matching

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cucumber/godog"

	"github.com/abhisek/matchup/internal/identity"
)

// TestGradingScenarios runs the grading feature scenarios.
func TestGradingScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "grading",
		ScenarioInitializer: InitializeGradingScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{filepath.Join("..", "..", "features", "grading.feature")},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeGradingScenario wires steps for grading scenarios.
func InitializeGradingScenario(ctx *godog.ScenarioContext) {
	state := &gradingScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a matching problem "([^"]+)" with items:$`, state.givenProblem)
	ctx.Step(`^aggregate feedback "([^"]*)", "([^"]*)" and "([^"]*)"$`, state.givenAggregate)
	ctx.Step(`^the problem is centralized$`, state.givenCentralized)
	ctx.Step(`^the learner submits "([^"]*)"$`, state.whenSubmits)
	ctx.Step(`^the submission is valid$`, state.thenValid)
	ctx.Step(`^the submission is not valid$`, state.thenNotValid)
	ctx.Step(`^(\d+) slots are wrong$`, state.thenWrongSlots)
	ctx.Step(`^the feedback is "([^"]*)"$`, state.thenFeedback)
	ctx.Step(`^the first feedback line is "([^"]*)"$`, state.thenFirstFeedback)
	ctx.Step(`^no feedback is returned$`, state.thenNoFeedback)
	ctx.Step(`^the submission is not well formed$`, state.thenNotWellFormed)
	ctx.Step(`^grading fails with a grading error$`, state.thenGradingError)
}

type gradingScenarioState struct {
	id        string
	raw       map[string]any
	sub       Submission
	result    Result
	gradeErr  error
	wellFormed bool
}

// reset clears scenario state.
func (s *gradingScenarioState) reset() {
	*s = gradingScenarioState{}
}

// givenProblem seeds raw content from a table with a header row.
func (s *gradingScenarioState) givenProblem(id string, table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("table needs a header and rows")
	}
	var header []string
	for _, c := range table.Rows[0].Cells {
		header = append(header, c.Value)
	}
	questions := make([]any, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		m := map[string]any{}
		for i, c := range row.Cells {
			m[header[i]] = c.Value
		}
		questions = append(questions, m)
	}
	s.id = id
	s.raw = map[string]any{"questions": questions, "unshuffle": true}
	return nil
}

// givenAggregate sets the three aggregate feedback messages.
func (s *gradingScenarioState) givenAggregate(all, partial, none string) error {
	s.raw["all_success_feedback"] = all
	s.raw["partial_success_feedback"] = partial
	s.raw["all_error_feedback"] = none
	return nil
}

// givenCentralized enables centralized feedback.
func (s *gradingScenarioState) givenCentralized() error {
	s.raw["centralize"] = true
	return nil
}

// whenSubmits grades a comma-separated list of answer texts.
func (s *gradingScenarioState) whenSubmits(answers string) error {
	p, err := Normalize(s.id, s.raw)
	if err != nil {
		return err
	}
	var slots []string
	for _, a := range strings.Split(answers, ",") {
		slots = append(slots, string(identity.Of(strings.TrimSpace(a))))
	}
	s.sub = Submission{s.id: slots}
	s.wellFormed = IsSubmissionWellFormed(p, s.sub)
	s.result, s.gradeErr = Grade(p, s.sub)
	return nil
}

func (s *gradingScenarioState) thenValid() error {
	if s.gradeErr != nil {
		return s.gradeErr
	}
	if !s.result.Valid {
		return fmt.Errorf("expected a valid submission")
	}
	return nil
}

func (s *gradingScenarioState) thenNotValid() error {
	if s.gradeErr != nil {
		return s.gradeErr
	}
	if s.result.Valid {
		return fmt.Errorf("expected an invalid submission")
	}
	return nil
}

func (s *gradingScenarioState) thenWrongSlots(n int) error {
	if s.result.InvalidCount != n {
		return fmt.Errorf("invalid count = %d, want %d", s.result.InvalidCount, n)
	}
	return nil
}

func (s *gradingScenarioState) thenFeedback(joined string) error {
	got := strings.Join(s.result.Feedback, " | ")
	if got != joined {
		return fmt.Errorf("feedback = %q, want %q", got, joined)
	}
	return nil
}

func (s *gradingScenarioState) thenFirstFeedback(line string) error {
	if len(s.result.Feedback) == 0 || s.result.Feedback[0] != line {
		return fmt.Errorf("feedback = %q, want first line %q", s.result.Feedback, line)
	}
	return nil
}

func (s *gradingScenarioState) thenNoFeedback() error {
	if s.result.Feedback != nil {
		return fmt.Errorf("expected no feedback, got %q", s.result.Feedback)
	}
	return nil
}

func (s *gradingScenarioState) thenNotWellFormed() error {
	if s.wellFormed {
		return fmt.Errorf("expected the submission to be rejected")
	}
	return nil
}

func (s *gradingScenarioState) thenGradingError() error {
	var gerr *GradingError
	if !errors.As(s.gradeErr, &gerr) {
		return fmt.Errorf("expected *GradingError, got %v", s.gradeErr)
	}
	return nil
}
