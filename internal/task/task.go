// Package task groups problems of any kind into a gradable task and selects
// each problem's implementation by its type tag.
package task

import (
	"fmt"
	"sort"
)

// Input maps problem ids to the opaque values a client submitted for them.
type Input map[string][]string

// Result is the grading outcome of one problem.
type Result struct {
	Valid        bool
	InvalidCount int
	Feedback     []string
}

// Problem is the capability set every problem kind provides.
type Problem interface {
	// ID returns the problem id, unique within its task.
	ID() string

	// Type returns the kind tag the problem was loaded with.
	Type() string

	// InputConsistent reports whether in carries a well-formed answer for
	// this problem. Hosts call it before Check.
	InputConsistent(in Input) bool

	// Check grades the problem's part of in.
	Check(in Input) (Result, error)
}

// Displayable is implemented by problems that can produce a view for a
// renderer. The returned value is encoded by the host as-is.
type Displayable interface {
	Problem
	Display(seed, locale string) any
}

// Loader builds a problem of one kind from its raw authoring content.
type Loader func(id string, raw map[string]any) (Problem, error)

// Registry maps type tags to loaders.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{loaders: make(map[string]Loader)}
}

// Register installs the loader for a type tag, replacing any previous one.
func (r *Registry) Register(typ string, l Loader) {
	r.loaders[typ] = l
}

// Types returns the registered type tags in sorted order.
func (r *Registry) Types() []string {
	out := make([]string, 0, len(r.loaders))
	for t := range r.loaders {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Load builds a problem with the loader registered for typ.
func (r *Registry) Load(id, typ string, raw map[string]any) (Problem, error) {
	l, ok := r.loaders[typ]
	if !ok {
		return nil, fmt.Errorf("problem %s: unknown problem type %q", id, typ)
	}
	return l(id, raw)
}

// Task is an ordered set of problems graded together.
type Task struct {
	ID       string
	Name     string
	Format   string
	Problems []Problem

	// Content keeps each problem's raw authoring content by problem id.
	Content map[string]map[string]any
}

// Problem returns the problem with the given id.
func (t *Task) Problem(id string) (Problem, bool) {
	for _, p := range t.Problems {
		if p.ID() == id {
			return p, true
		}
	}
	return nil, false
}

// ProblemResult pairs a problem id with its result.
type ProblemResult struct {
	ProblemID string
	Result    Result
}

// Outcome is the grading outcome of a whole task.
type Outcome struct {
	Valid        bool
	InvalidCount int
	Problems     []ProblemResult
}

// ErrInconsistentInput is returned by Check when the input is not well
// formed for one of the task's problems.
type ErrInconsistentInput struct {
	ProblemID string
}

func (e *ErrInconsistentInput) Error() string {
	return fmt.Sprintf("input for problem %s is not consistent", e.ProblemID)
}

// Check grades every problem of the task. The task is valid when every
// problem is. Input that is inconsistent for any problem rejects the whole
// submission before anything is graded.
func (t *Task) Check(in Input) (Outcome, error) {
	for _, p := range t.Problems {
		if !p.InputConsistent(in) {
			return Outcome{}, &ErrInconsistentInput{ProblemID: p.ID()}
		}
	}

	out := Outcome{Valid: true}
	for _, p := range t.Problems {
		res, err := p.Check(in)
		if err != nil {
			return Outcome{}, fmt.Errorf("check %s: %w", p.ID(), err)
		}
		out.Valid = out.Valid && res.Valid
		out.InvalidCount += res.InvalidCount
		out.Problems = append(out.Problems, ProblemResult{ProblemID: p.ID(), Result: res})
	}
	return out, nil
}
