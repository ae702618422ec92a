package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// LLMRequest records every chat completion for cost tracking and debugging.
type LLMRequest struct {
	ent.Schema
}

func (LLMRequest) Annotations() []schema.Annotation {
	return []schema.Annotation{entsql.Annotation{Table: "llm_requests"}}
}

func (LLMRequest) Mixin() []ent.Mixin {
	return []ent.Mixin{CreatedMixin{}}
}

func (LLMRequest) Fields() []ent.Field {
	return []ent.Field{
		field.String("provider").
			Comment("Provider name: groq, openai, openrouter, anthropic, gemini"),
		field.String("model").
			Comment("Actual model ID used"),
		field.String("purpose").
			Comment("Consumer-provided label: roadmap, content, flashcard, quiz"),
		field.Int("input_tokens").
			Default(0),
		field.Int("output_tokens").
			Default(0),
		field.Int64("latency_ms").
			Default(0),
		field.Bool("success"),
		field.String("error_message").
			Default(""),
	}
}

func (LLMRequest) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("model"),
		index.Fields("purpose"),
	}
}
