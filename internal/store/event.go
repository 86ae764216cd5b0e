package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

// Column names every event table gets from schema.EventMixin.
const (
	columnSequence  = "sequence"
	columnTimestamp = "timestamp"
	columnOrigin    = "origin"
)

// sequence hands out the order shared by all event tables, so a grade can
// be placed before or after the LLM call that drafted its problem. The
// counter row is created by the first Next.
type sequence struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequence(db *sql.DB) (*sequence, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}
	return &sequence{db: db}, nil
}

// Next returns the next sequence number, starting at 1.
func (s *sequence) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO global_sequence (id, next_val) VALUES (1, 2)
		ON CONFLICT (id) DO UPDATE SET next_val = next_val + 1
		RETURNING next_val - 1`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}

// window turns QueryOpts into predicates usable on any event table.
func window[P ~func(*entsql.Selector)](opts QueryOpts) []P {
	var ps []P
	if opts.After > 0 {
		ps = append(ps, P(entsql.FieldGT(columnSequence, opts.After)))
	}
	if opts.Before > 0 {
		ps = append(ps, P(entsql.FieldLT(columnSequence, opts.Before)))
	}
	if !opts.From.IsZero() {
		ps = append(ps, P(entsql.FieldGTE(columnTimestamp, opts.From)))
	}
	if !opts.To.IsZero() {
		ps = append(ps, P(entsql.FieldLTE(columnTimestamp, opts.To)))
	}
	if opts.Origin != "" {
		ps = append(ps, P(entsql.FieldEQ(columnOrigin, opts.Origin)))
	}
	return ps
}

type originKey struct{}

// WithOrigin labels the events appended with ctx, typically with the
// command line that is running.
func WithOrigin(ctx context.Context, origin string) context.Context {
	return context.WithValue(ctx, originKey{}, origin)
}

func originFrom(ctx context.Context) string {
	o, _ := ctx.Value(originKey{}).(string)
	return o
}
