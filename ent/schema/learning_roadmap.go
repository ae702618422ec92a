package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LearningRoadmap stores a generated roadmap and how far the learner got.
type LearningRoadmap struct {
	ent.Schema
}

func (LearningRoadmap) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "learning_roadmaps"}}
}

func (LearningRoadmap) Mixin() []ent.Mixin {
	return []ent.Mixin{TimestampsMixin{}}
}

func (LearningRoadmap) Fields() []ent.Field {
	return []ent.Field{
		field.String("user_id").
			NotEmpty(),
		field.String("subject").
			NotEmpty(),
		field.String("topic").
			NotEmpty(),
		field.String("plan_type").
			Default("deep-learning").
			Comment("fast-track or deep-learning"),
		field.JSON("roadmap_data", map[string]any{}).
			Comment("{roadmap, completed}"),
		field.JSON("progress", map[string]any{}).
			Comment("{chunks_completed, total_chunks}"),
	}
}

func (LearningRoadmap) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("user_id", "subject", "topic", "plan_type").Unique(),
	}
}
