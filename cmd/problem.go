package cmd

import (
	"context"
	"fmt"

	"github.com/abhisek/matchup/internal/matching"
	"github.com/abhisek/matchup/internal/store"
	"github.com/abhisek/matchup/internal/task"
	"github.com/spf13/cobra"
)

func newRegistry() *task.Registry {
	reg := task.NewRegistry()
	matching.Register(reg)
	return reg
}

// addTaskFlag registers --task on commands that look a problem up.
func addTaskFlag(c *cobra.Command) {
	c.Flags().StringP("task", "t", "", "Task file holding the problem (default: the stored problem registry)")
}

// matchingProblem returns the problem with the given id and the id of the
// task it belongs to. With --task it is read from that file, otherwise
// from the problems saved by "validate --save". s may be nil when --task
// is set.
func matchingProblem(ctx context.Context, cmd *cobra.Command, s *store.Store, id string) (*matching.Problem, string, error) {
	if path, _ := cmd.Flags().GetString("task"); path != "" {
		t, err := task.LoadFile(path, newRegistry())
		if err != nil {
			return nil, "", err
		}
		p, ok := t.Problem(id)
		if !ok {
			return nil, "", fmt.Errorf("task %s has no problem %q", t.ID, id)
		}
		mp, ok := p.(*matching.Problem)
		if !ok {
			return nil, "", fmt.Errorf("problem %s is of type %q, not %q", id, p.Type(), matching.Type)
		}
		return mp, t.ID, nil
	}

	if s == nil {
		return nil, "", fmt.Errorf("problem %s: no task file given", id)
	}
	rec, err := s.ProblemRepo().Get(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("look up problem: %w", err)
	}
	if rec == nil {
		return nil, "", fmt.Errorf("problem %s is not stored; pass --task or run \"matchup validate --save\" first", id)
	}
	if rec.Type != matching.Type {
		return nil, "", fmt.Errorf("problem %s is of type %q, not %q", id, rec.Type, matching.Type)
	}
	p, err := matching.Normalize(rec.ProblemID, rec.Content)
	if err != nil {
		return nil, "", err
	}
	return p, rec.TaskID, nil
}

// canonicalContent returns the content stored for a problem: the canonical
// form for kinds that have one, the authored content otherwise.
func canonicalContent(t *task.Task, p task.Problem) map[string]any {
	if mp, ok := p.(*matching.Problem); ok {
		return mp.Raw()
	}
	return t.Content[p.ID()]
}

// recordGrade appends a grade event. Failures are reported but never
// change the grade.
func recordGrade(ctx context.Context, repo store.EventRepo, taskID string, p *matching.Problem, res matching.Result) error {
	err := repo.AppendGrade(ctx, store.GradeEventData{
		TaskID:       taskID,
		ProblemID:    p.ID(),
		ItemCount:    p.Len(),
		InvalidCount: res.InvalidCount,
		Valid:        res.Valid,
		Outcome:      string(res.Outcome),
	})
	if err != nil {
		return fmt.Errorf("record grade: %w", err)
	}
	return nil
}
