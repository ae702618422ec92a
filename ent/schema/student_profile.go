package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// StudentProfile is one learner's profile, keyed by user id.
type StudentProfile struct {
	ent.Schema
}

func (StudentProfile) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "student_profiles"}}
}

func (StudentProfile) Mixin() []ent.Mixin {
	return []ent.Mixin{TimestampsMixin{}}
}

func (StudentProfile) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			NotEmpty().
			Unique(),
		field.String("full_name").
			Default(""),
		field.Int("grade_level").
			Default(11).
			Comment("11 or 12"),
		field.String("exam_type").
			Default("Boards").
			Comment("Boards, NEET, JEE or UPSC"),
		field.String("learning_style").
			Default("text").
			Comment("visual, audio or text"),
		field.JSON("preferred_subjects", []string{}),
	}
}
