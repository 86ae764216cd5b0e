package matching

import "fmt"

// Rule names the definition invariant a DefinitionError reports.
type Rule string

const (
	RuleMalformed         Rule = "malformed"
	RuleMissingItems      Rule = "missing-items"
	RuleTooFewItems       Rule = "too-few-items"
	RuleDuplicateQuestion Rule = "duplicate-question"
	RuleMissingField      Rule = "missing-field"
)

// DefinitionError reports authoring content that cannot become a Problem.
// The host must refuse to publish the problem and show Detail to the author.
type DefinitionError struct {
	ProblemID string
	Rule      Rule
	Detail    string
	Err       error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("problem %s: %s: %s", e.ProblemID, e.Rule, e.Detail)
}

func (e *DefinitionError) Unwrap() error { return e.Err }

// GradingError reports a submission that references answers the problem does
// not know about, or does not fit the problem's slots. It signals a forged or
// stale client payload and must be surfaced as a rejected submission.
type GradingError struct {
	ProblemID string
	Slot      int // -1 when the error is not tied to one slot
	Identity  string
	Reason    string
}

func (e *GradingError) Error() string {
	if e.Slot >= 0 {
		return fmt.Sprintf("problem %s: slot %d: %s", e.ProblemID, e.Slot, e.Reason)
	}
	return fmt.Sprintf("problem %s: %s", e.ProblemID, e.Reason)
}
