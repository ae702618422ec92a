package lessons

import "github.com/abhisek/studymate/internal/llm"

// QuizSchema defines the JSON shape of a generated quiz question.
var QuizSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A multiple choice question with four options and an explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question text",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactly four answer options, without A)/B) prefixes",
			},
			"correct_index": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     3,
				"description": "Zero-based index of the correct option",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Why the correct option is right (1-3 sentences)",
			},
		},
		"required":             []any{"question", "options", "correct_index", "explanation"},
		"additionalProperties": false,
	},
}
