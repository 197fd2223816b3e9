package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// AnswerEvent records one answered quiz question.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("session_id").
			NotEmpty().
			Comment("Links to SessionEvent"),
		field.String("mode").
			NotEmpty().
			Comment("Concrete quiz mode of the question"),
		field.String("item_key").
			Default("").
			Comment("Label key of the underlying item"),
		field.String("prompt").
			Default(""),
		field.String("correct_answer"),
		field.String("given_answer"),
		field.Bool("correct"),
		field.Int64("time_ms").
			Default(0).
			Comment("Milliseconds from question shown to answer"),
	}
}

func (AnswerEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("session_id"),
		index.Fields("mode"),
	}
}
