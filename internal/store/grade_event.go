package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/abhisek/matchup/ent"
	"github.com/abhisek/matchup/ent/gradeevent"
	"github.com/abhisek/matchup/ent/predicate"
)

func (r *eventRepo) AppendGrade(ctx context.Context, data GradeEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.GradeEvent.Create().
		SetSequence(seqNum).
		SetOrigin(originFrom(ctx)).
		SetTaskID(data.TaskID).
		SetProblemID(data.ProblemID).
		SetItemCount(data.ItemCount).
		SetInvalidCount(data.InvalidCount).
		SetValid(data.Valid).
		SetOutcome(data.Outcome).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save grade event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryGradeEvents(ctx context.Context, opts QueryOpts) ([]GradeEventRecord, error) {
	query := r.client.GradeEvent.Query().
		Where(window[predicate.GradeEvent](opts)...).
		Order(ent.Desc(gradeevent.FieldSequence))
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	events, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query grade events: %w", err)
	}

	records := make([]GradeEventRecord, len(events))
	for i, e := range events {
		records[i] = GradeEventRecord{
			Sequence:  e.Sequence,
			Timestamp: e.Timestamp,
			Origin:    e.Origin,
			GradeEventData: GradeEventData{
				TaskID:       e.TaskID,
				ProblemID:    e.ProblemID,
				ItemCount:    e.ItemCount,
				InvalidCount: e.InvalidCount,
				Valid:        e.Valid,
				Outcome:      e.Outcome,
			},
		}
	}
	return records, nil
}

func (r *eventRepo) GradeStats(ctx context.Context) ([]GradeStat, error) {
	events, err := r.client.GradeEvent.Query().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query grade stats: %w", err)
	}

	byProblem := make(map[string]*GradeStat)
	invalid := make(map[string]int)
	for _, e := range events {
		st, ok := byProblem[e.ProblemID]
		if !ok {
			st = &GradeStat{ProblemID: e.ProblemID}
			byProblem[e.ProblemID] = st
		}
		st.Attempts++
		if e.Valid {
			st.Passed++
		}
		invalid[e.ProblemID] += e.InvalidCount
		if e.Timestamp.After(st.LastGraded) {
			st.LastGraded = e.Timestamp
		}
	}

	stats := make([]GradeStat, 0, len(byProblem))
	for id, st := range byProblem {
		st.MeanInvalid = float64(invalid[id]) / float64(st.Attempts)
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].ProblemID < stats[j].ProblemID
	})
	return stats, nil
}
