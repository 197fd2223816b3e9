package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Label is the learner's knowledge label for one study item.
type Label struct {
	ent.Schema
}

func (Label) Fields() []ent.Field {
	return []ent.Field{
		field.String("kind").
			NotEmpty().
			Comment("grammar, kanji or vocabulary"),
		field.String("key").
			NotEmpty().
			Comment("Grammar term, kanji character or vocabulary word"),
		field.Enum("label").
			Values("good", "medium", "dont_know"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now),
	}
}

func (Label) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("kind", "key").Unique(),
	}
}
