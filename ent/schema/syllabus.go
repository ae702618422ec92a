package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Syllabus lists the chapters of each class and subject.
type Syllabus struct {
	ent.Schema
}

func (Syllabus) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "syllabus"}}
}

func (Syllabus) Fields() []ent.Field {
	return []ent.Field{
		field.String("class").
			Comment("11 or 12"),
		field.String("subject"),
		field.String("parent_subject").
			Optional(),
		field.String("chapter_id"),
		field.String("chapter_name"),
		field.Int("order").
			Positive(),
	}
}

func (Syllabus) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("class", "subject", "chapter_id").Unique(),
	}
}
