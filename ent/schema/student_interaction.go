package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// StudentInteraction is an append-only log of answers and feedback.
type StudentInteraction struct {
	ent.Schema
}

func (StudentInteraction) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "student_interactions"}}
}

func (StudentInteraction) Mixin() []ent.Mixin {
	return []ent.Mixin{CreatedMixin{}}
}

func (StudentInteraction) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			NotEmpty(),
		field.String("subject"),
		field.String("topic"),
		field.String("subtopic").
			Optional(),
		field.Enum("interaction_type").
			Values("question", "answer", "doubt", "feedback"),
		field.String("content"),
		field.String("ai_response").
			Optional(),
		field.JSON("context", map[string]any{}),
	}
}

func (StudentInteraction) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "subject", "topic"),
	}
}
