package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const tableSyllabus = "syllabus"

type syllabusRepo struct {
	s *Store
}

type syllabusRow struct {
	Class         string         `db:"class"`
	Subject       string         `db:"subject"`
	ParentSubject sql.NullString `db:"parent_subject"`
	ChapterID     string         `db:"chapter_id"`
	ChapterName   string         `db:"chapter_name"`
	Order         int            `db:"order"`
}

var syllabusColumns = []string{
	"class", "subject", "parent_subject", "chapter_id", "chapter_name", "order",
}

func (r *syllabusRepo) Chapters(ctx context.Context, class, subject string) ([]SyllabusEntry, error) {
	query, args := r.s.builder().
		Select(syllabusColumns...).
		From(entsql.Table(tableSyllabus)).
		Where(entsql.And(
			entsql.EQ("class", class),
			entsql.EQ("subject", subject),
		)).
		OrderBy("order").
		Query()

	var rows []syllabusRow
	if err := r.s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("query syllabus: %w", err)
	}

	out := make([]SyllabusEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, SyllabusEntry{
			Class:         row.Class,
			Subject:       row.Subject,
			ParentSubject: row.ParentSubject.String,
			ChapterID:     row.ChapterID,
			ChapterName:   row.ChapterName,
			Order:         row.Order,
		})
	}
	return out, nil
}

func (r *syllabusRepo) Seed(ctx context.Context, entries []SyllabusEntry) error {
	if len(entries) == 0 {
		return nil
	}

	ins := r.s.builder().Insert(tableSyllabus).Columns(syllabusColumns...)
	for _, e := range entries {
		ins = ins.Values(e.Class, e.Subject, nullString(e.ParentSubject), e.ChapterID, e.ChapterName, e.Order)
	}
	query, args := ins.
		OnConflict(
			entsql.ConflictColumns("class", "subject", "chapter_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("seed syllabus: %w", err)
	}
	return nil
}
