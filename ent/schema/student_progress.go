package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// StudentProgress records a finished chapter session.
type StudentProgress struct {
	ent.Schema
}

func (StudentProgress) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "student_progress"}}
}

func (StudentProgress) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			NotEmpty(),
		field.String("subject").
			NotEmpty(),
		field.String("topic").
			NotEmpty().
			Comment("Chapter name"),
		field.String("subtopic").
			Default(""),
		field.Time("completed_at"),
		field.Int("quiz_score").
			Optional().
			Nillable().
			Comment("Percentage, null when no quiz was answered"),
		field.Int("time_spent").
			Optional().
			Nillable().
			Comment("Minutes"),
		field.String("difficulty_level").
			Optional(),
	}
}

func (StudentProgress) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "subject", "topic", "subtopic").Unique(),
	}
}
