package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const tableRoadmaps = "learning_roadmaps"

// Plan types of learning_roadmaps.
const (
	PlanFastTrack    = "fast-track"
	PlanDeepLearning = "deep-learning"
)

type roadmapRepo struct {
	s *Store
}

type roadmapRow struct {
	UserID      string    `db:"user_id"`
	Subject     string    `db:"subject"`
	Topic       string    `db:"topic"`
	PlanType    string    `db:"plan_type"`
	RoadmapData string    `db:"roadmap_data"`
	Progress    string    `db:"progress"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

var roadmapColumns = []string{
	"user_id", "subject", "topic", "plan_type",
	"roadmap_data", "progress", "created_at", "updated_at",
}

func (r *roadmapRepo) Upsert(ctx context.Context, rec RoadmapRecord) error {
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}
	if rec.PlanType == "" {
		rec.PlanType = PlanDeepLearning
	}

	data, err := marshalJSON(rec.Data)
	if err != nil {
		return fmt.Errorf("encode roadmap_data: %w", err)
	}
	progress, err := marshalJSON(rec.Progress)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}

	query, args := r.s.builder().
		Insert(tableRoadmaps).
		Columns(roadmapColumns...).
		Values(rec.UserID, rec.Subject, rec.Topic, rec.PlanType,
			data, progress, rec.CreatedAt.UTC(), rec.UpdatedAt.UTC()).
		OnConflict(
			entsql.ConflictColumns("user_id", "subject", "topic", "plan_type"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("roadmap_data").
					SetExcluded("progress").
					SetExcluded("updated_at")
			}),
		).
		Query()

	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert roadmap: %w", err)
	}
	return nil
}

func (r *roadmapRepo) List(ctx context.Context, userID string) ([]RoadmapRecord, error) {
	query, args := r.s.builder().
		Select(roadmapColumns...).
		From(entsql.Table(tableRoadmaps)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("updated_at")).
		Query()

	var rows []roadmapRow
	if err := r.s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list roadmaps: %w", err)
	}

	out := make([]RoadmapRecord, 0, len(rows))
	for _, row := range rows {
		rec := RoadmapRecord{
			UserID:    row.UserID,
			Subject:   row.Subject,
			Topic:     row.Topic,
			PlanType:  row.PlanType,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		}
		if err := unmarshalJSON(row.RoadmapData, &rec.Data); err != nil {
			return nil, fmt.Errorf("decode roadmap_data: %w", err)
		}
		if err := unmarshalJSON(row.Progress, &rec.Progress); err != nil {
			return nil, fmt.Errorf("decode progress: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}
