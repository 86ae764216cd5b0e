package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// EventMixin holds what every event row carries: its place in the global
// order, when it happened and which command produced it. The column names
// are relied on by the store's generic query window.
type EventMixin struct {
	mixin.Schema
}

func (EventMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Unique().
			Immutable().
			Comment("Position in the order shared by all event tables"),
		field.Time("timestamp").
			Default(time.Now).
			Immutable(),
		field.String("origin").
			Default("").
			Immutable().
			Comment("Command that produced the event, e.g. \"matchup play\""),
	}
}

func (EventMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("timestamp"),
		index.Fields("origin"),
	}
}
