package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const tableProfiles = "student_profiles"

type profileRepo struct {
	s *Store
}

type profileRow struct {
	UserID            string    `db:"user_id"`
	FullName          string    `db:"full_name"`
	GradeLevel        int       `db:"grade_level"`
	ExamType          string    `db:"exam_type"`
	LearningStyle     string    `db:"learning_style"`
	PreferredSubjects string    `db:"preferred_subjects"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

var profileColumns = []string{
	"user_id", "full_name", "grade_level", "exam_type",
	"learning_style", "preferred_subjects", "created_at", "updated_at",
}

func (r *profileRepo) Get(ctx context.Context, userID string) (*ProfileRecord, error) {
	query, args := r.s.builder().
		Select(profileColumns...).
		From(entsql.Table(tableProfiles)).
		Where(entsql.EQ("user_id", userID)).
		Limit(1).
		Query()

	var row profileRow
	if err := r.s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	rec := &ProfileRecord{
		UserID:        row.UserID,
		FullName:      row.FullName,
		GradeLevel:    row.GradeLevel,
		ExamType:      row.ExamType,
		LearningStyle: row.LearningStyle,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	if err := unmarshalJSON(row.PreferredSubjects, &rec.PreferredSubjects); err != nil {
		return nil, fmt.Errorf("decode preferred_subjects: %w", err)
	}
	return rec, nil
}

func (r *profileRepo) Upsert(ctx context.Context, rec ProfileRecord) error {
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}
	if rec.PreferredSubjects == nil {
		rec.PreferredSubjects = []string{}
	}
	subjects, err := marshalJSON(rec.PreferredSubjects)
	if err != nil {
		return fmt.Errorf("encode preferred_subjects: %w", err)
	}

	query, args := r.s.builder().
		Insert(tableProfiles).
		Columns(profileColumns...).
		Values(rec.UserID, rec.FullName, rec.GradeLevel, rec.ExamType,
			rec.LearningStyle, subjects, rec.CreatedAt.UTC(), rec.UpdatedAt.UTC()).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("full_name").
					SetExcluded("grade_level").
					SetExcluded("exam_type").
					SetExcluded("learning_style").
					SetExcluded("preferred_subjects").
					SetExcluded("updated_at")
			}),
		).
		Query()

	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
