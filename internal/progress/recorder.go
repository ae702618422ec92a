// Package progress persists finished learning sessions and summarizes
// a learner's history.
package progress

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/studymate/internal/logger"
	"github.com/abhisek/studymate/internal/store"
)

const (
	// Subtopic marks a whole-chapter completion row.
	Subtopic = "Complete Chapter"

	DifficultyMedium = "medium"
)

// Completion describes a finished session.
type Completion struct {
	UserID      string
	Subject     string
	Chapter     string
	Roadmap     string
	TotalChunks int

	// QuizScore is nil when no quiz was answered.
	QuizScore *int

	StartedAt  time.Time
	FinishedAt time.Time
}

// TimeSpentMinutes is the session length rounded to whole minutes.
func (c Completion) TimeSpentMinutes() int {
	return int(math.Round(c.FinishedAt.Sub(c.StartedAt).Minutes()))
}

// Recorder writes completions to the backend.
type Recorder struct {
	progress store.ProgressRepo
	roadmaps store.RoadmapRepo
	log      *logger.Logger
	now      func() time.Time
}

func NewRecorder(progress store.ProgressRepo, roadmaps store.RoadmapRepo, log *logger.Logger) *Recorder {
	return &Recorder{
		progress: progress,
		roadmaps: roadmaps,
		log:      logger.OrNop(log).With("component", "progress"),
		now:      time.Now,
	}
}

// RecordCompletion upserts the progress row and the roadmap row. The two
// writes are independent: each runs regardless of the other's outcome and
// failures are logged, never rolled back. The joined error is returned
// for callers that want to surface it.
func (r *Recorder) RecordCompletion(ctx context.Context, c Completion) error {
	if c.FinishedAt.IsZero() {
		c.FinishedAt = r.now()
	}

	var (
		g           errgroup.Group
		progressErr error
		roadmapErr  error
	)
	g.Go(func() error {
		progressErr = r.writeProgress(ctx, c)
		return progressErr
	})
	g.Go(func() error {
		roadmapErr = r.writeRoadmap(ctx, c)
		return roadmapErr
	})
	_ = g.Wait()

	if progressErr != nil {
		r.log.Error("save progress failed", "user_id", c.UserID, "subject", c.Subject, "error", progressErr)
	}
	if roadmapErr != nil {
		r.log.Error("save roadmap failed", "user_id", c.UserID, "subject", c.Subject, "error", roadmapErr)
	}
	if progressErr == nil && roadmapErr == nil {
		r.log.Info("session completion saved", "user_id", c.UserID, "subject", c.Subject, "chapter", c.Chapter)
	}
	return errors.Join(progressErr, roadmapErr)
}

func (r *Recorder) writeProgress(ctx context.Context, c Completion) error {
	if r.progress == nil {
		return fmt.Errorf("no progress store")
	}
	spent := c.TimeSpentMinutes()
	return r.progress.Upsert(ctx, store.ProgressRecord{
		UserID:          c.UserID,
		Subject:         c.Subject,
		Topic:           c.Chapter,
		Subtopic:        Subtopic,
		CompletedAt:     c.FinishedAt,
		QuizScore:       c.QuizScore,
		TimeSpent:       &spent,
		DifficultyLevel: DifficultyMedium,
	})
}

func (r *Recorder) writeRoadmap(ctx context.Context, c Completion) error {
	if r.roadmaps == nil {
		return fmt.Errorf("no roadmap store")
	}
	return r.roadmaps.Upsert(ctx, store.RoadmapRecord{
		UserID:   c.UserID,
		Subject:  c.Subject,
		Topic:    c.Chapter,
		PlanType: store.PlanDeepLearning,
		Data:     store.RoadmapData{Roadmap: c.Roadmap, Completed: true},
		Progress: store.RoadmapProgress{
			ChunksCompleted: c.TotalChunks,
			TotalChunks:     c.TotalChunks,
		},
		UpdatedAt: c.FinishedAt,
	})
}
