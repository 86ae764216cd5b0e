package matching

import "github.com/abhisek/matchup/internal/task"

// Type is the task type tag of matching problems.
const Type = "matching"

// Register installs the matching kind in reg.
func Register(reg *task.Registry) {
	reg.Register(Type, Load)
}

// Load is the task.Loader for matching problems.
func Load(id string, raw map[string]any) (task.Problem, error) {
	p, err := Normalize(id, raw)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Type returns "matching".
func (p *Problem) Type() string { return Type }

// InputConsistent implements task.Problem.
func (p *Problem) InputConsistent(in task.Input) bool {
	return IsSubmissionWellFormed(p, Submission(in))
}

// Check implements task.Problem.
func (p *Problem) Check(in task.Input) (task.Result, error) {
	r, err := Grade(p, Submission(in))
	if err != nil {
		return task.Result{}, err
	}
	return task.Result{Valid: r.Valid, InvalidCount: r.InvalidCount, Feedback: r.Feedback}, nil
}

// Display implements task.Displayable; the value is a DisplayView.
func (p *Problem) Display(seed, locale string) any {
	return Present(p, seed, locale)
}
