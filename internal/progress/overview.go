package progress

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/abhisek/studymate/internal/store"
)

// Stats summarizes a learner's completions.
type Stats struct {
	// AverageQuizScore is the mean over records that have a score, 0 if none do.
	AverageQuizScore int
	TopicsCompleted  int
	// RecentActivity counts completions within the last seven days.
	RecentActivity   int
	TotalTimeMinutes int
	Records          []store.ProgressRecord
}

// Overview reads the user's completions, newest first.
func (r *Recorder) Overview(ctx context.Context, userID string) (Stats, error) {
	if r.progress == nil {
		return Stats{}, fmt.Errorf("no progress store")
	}
	recs, err := r.progress.List(ctx, userID, 0)
	if err != nil {
		return Stats{}, fmt.Errorf("load progress: %w", err)
	}
	return Summarize(recs, r.now()), nil
}

// Summarize computes Stats for recs as of now.
func Summarize(recs []store.ProgressRecord, now time.Time) Stats {
	s := Stats{TopicsCompleted: len(recs), Records: recs}

	weekAgo := now.AddDate(0, 0, -7)
	var scoreSum, scored int
	for _, rec := range recs {
		if rec.QuizScore != nil {
			scoreSum += *rec.QuizScore
			scored++
		}
		if rec.TimeSpent != nil {
			s.TotalTimeMinutes += *rec.TimeSpent
		}
		if rec.CompletedAt.After(weekAgo) {
			s.RecentActivity++
		}
	}
	if scored > 0 {
		s.AverageQuizScore = int(math.Round(float64(scoreSum) / float64(scored)))
	}
	return s
}
