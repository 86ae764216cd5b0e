package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GradeEvent records the outcome of one graded submission. The submitted
// identities themselves are not stored.
type GradeEvent struct {
	ent.Schema
}

func (GradeEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (GradeEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("task_id").
			Default("").
			Comment("Task the problem was loaded from"),
		field.String("problem_id").
			NotEmpty().
			Comment("Graded problem"),
		field.Int("item_count").
			Comment("Number of slots in the problem"),
		field.Int("invalid_count").
			Comment("Number of wrongly assigned slots"),
		field.Bool("valid").
			Comment("Whether every slot was correct"),
		field.String("outcome").
			NotEmpty().
			Comment("all-correct, partial, or all-wrong"),
	}
}

func (GradeEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("problem_id"),
		index.Fields("valid"),
	}
}
