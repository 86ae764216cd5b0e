package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// ProblemRecord stores the canonical authoring content of a published
// problem, keyed by problem id.
type ProblemRecord struct {
	ent.Schema
}

func (ProblemRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("problem_id").
			NotEmpty().
			Unique().
			Comment("Externally assigned problem id"),
		field.String("task_id").
			Default("").
			Comment("Task the problem belongs to"),
		field.String("kind").
			NotEmpty().
			Comment("Problem kind tag, e.g. matching"),
		field.JSON("content", map[string]any{}).
			Comment("Canonical raw authoring content"),
		field.String("content_hash").
			NotEmpty().
			Comment("SHA-256 of the canonical content JSON"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now).
			Comment("Last time the record was saved"),
	}
}

func (ProblemRecord) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("task_id"),
	}
}
