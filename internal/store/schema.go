package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent/dialect"
)

// Tables follow the hosted backend's contract. {{id}}, {{ts}} and {{json}}
// are replaced per dialect before execution.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS student_profiles (
		id {{id}},
		user_id TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL DEFAULT '',
		grade_level INTEGER NOT NULL DEFAULT 11,
		exam_type TEXT NOT NULL DEFAULT 'Boards',
		learning_style TEXT NOT NULL DEFAULT 'text',
		preferred_subjects {{json}} NOT NULL,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS student_progress (
		id {{id}},
		user_id TEXT NOT NULL,
		subject TEXT NOT NULL,
		topic TEXT NOT NULL,
		subtopic TEXT NOT NULL DEFAULT '',
		completed_at {{ts}} NOT NULL,
		quiz_score INTEGER,
		time_spent INTEGER,
		difficulty_level TEXT
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS student_progress_key
		ON student_progress (user_id, subject, topic, subtopic)`,
	`CREATE TABLE IF NOT EXISTS learning_roadmaps (
		id {{id}},
		user_id TEXT NOT NULL,
		subject TEXT NOT NULL,
		topic TEXT NOT NULL,
		plan_type TEXT NOT NULL DEFAULT 'deep-learning',
		roadmap_data {{json}} NOT NULL,
		progress {{json}} NOT NULL,
		created_at {{ts}} NOT NULL,
		updated_at {{ts}} NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS learning_roadmaps_key
		ON learning_roadmaps (user_id, subject, topic, plan_type)`,
	`CREATE TABLE IF NOT EXISTS student_interactions (
		id {{id}},
		user_id TEXT NOT NULL,
		subject TEXT NOT NULL,
		topic TEXT NOT NULL,
		subtopic TEXT,
		interaction_type TEXT NOT NULL,
		content TEXT NOT NULL,
		ai_response TEXT,
		context {{json}} NOT NULL,
		created_at {{ts}} NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS student_interactions_topic
		ON student_interactions (user_id, subject, topic)`,
	`CREATE TABLE IF NOT EXISTS syllabus (
		id {{id}},
		class TEXT NOT NULL,
		subject TEXT NOT NULL,
		parent_subject TEXT,
		chapter_id TEXT NOT NULL,
		chapter_name TEXT NOT NULL,
		"order" INTEGER NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS syllabus_key
		ON syllabus (class, subject, chapter_id)`,
	`CREATE TABLE IF NOT EXISTS llm_requests (
		id {{id}},
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL DEFAULT 0,
		error_message TEXT NOT NULL DEFAULT '',
		created_at {{ts}} NOT NULL
	)`,
}

func (s *Store) migrate(ctx context.Context) error {
	r := columnTypes(s.dialect)
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, r.Replace(stmt)); err != nil {
			return fmt.Errorf("exec %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func columnTypes(d string) *strings.Replacer {
	if d == dialect.Postgres {
		return strings.NewReplacer(
			"{{id}}", "BIGSERIAL PRIMARY KEY",
			"{{ts}}", "TIMESTAMPTZ",
			"{{json}}", "JSONB",
		)
	}
	return strings.NewReplacer(
		"{{id}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{ts}}", "DATETIME",
		"{{json}}", "TEXT",
	)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
