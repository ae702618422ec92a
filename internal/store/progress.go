package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const tableProgress = "student_progress"

type progressRepo struct {
	s *Store
}

type progressRow struct {
	UserID          string    `db:"user_id"`
	Subject         string    `db:"subject"`
	Topic           string    `db:"topic"`
	Subtopic        string    `db:"subtopic"`
	CompletedAt     time.Time `db:"completed_at"`
	QuizScore       *int      `db:"quiz_score"`
	TimeSpent       *int      `db:"time_spent"`
	DifficultyLevel *string   `db:"difficulty_level"`
}

var progressColumns = []string{
	"user_id", "subject", "topic", "subtopic", "completed_at",
	"quiz_score", "time_spent", "difficulty_level",
}

func (r *progressRepo) Upsert(ctx context.Context, rec ProgressRecord) error {
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = time.Now()
	}

	query, args := r.s.builder().
		Insert(tableProgress).
		Columns(progressColumns...).
		Values(rec.UserID, rec.Subject, rec.Topic, rec.Subtopic, rec.CompletedAt.UTC(),
			rec.QuizScore, rec.TimeSpent, rec.DifficultyLevel).
		OnConflict(
			entsql.ConflictColumns("user_id", "subject", "topic", "subtopic"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (r *progressRepo) List(ctx context.Context, userID string, limit int) ([]ProgressRecord, error) {
	sel := r.s.builder().
		Select(progressColumns...).
		From(entsql.Table(tableProgress)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("completed_at"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	var rows []progressRow
	if err := r.s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	out := make([]ProgressRecord, 0, len(rows))
	for _, row := range rows {
		rec := ProgressRecord{
			UserID:      row.UserID,
			Subject:     row.Subject,
			Topic:       row.Topic,
			Subtopic:    row.Subtopic,
			CompletedAt: row.CompletedAt,
			QuizScore:   row.QuizScore,
			TimeSpent:   row.TimeSpent,
		}
		if row.DifficultyLevel != nil {
			rec.DifficultyLevel = *row.DifficultyLevel
		}
		out = append(out, rec)
	}
	return out, nil
}
