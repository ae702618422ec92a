package progress

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studymate/internal/store"
)

func intPtr(v int) *int { return &v }

type memProgress struct {
	mu   sync.Mutex
	recs []store.ProgressRecord
	err  error
}

func (m *memProgress) Upsert(_ context.Context, rec store.ProgressRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memProgress) List(context.Context, string, int) ([]store.ProgressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recs, m.err
}

type memRoadmaps struct {
	mu   sync.Mutex
	recs []store.RoadmapRecord
	err  error
}

func (m *memRoadmaps) Upsert(_ context.Context, rec store.RoadmapRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.recs = append(m.recs, rec)
	return nil
}

func (m *memRoadmaps) List(context.Context, string) ([]store.RoadmapRecord, error) {
	return m.recs, m.err
}

func testCompletion() Completion {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return Completion{
		UserID:      "u1",
		Subject:     "Physics",
		Chapter:     "Kinematics",
		Roadmap:     "Day 1: basics",
		TotalChunks: 5,
		QuizScore:   intPtr(60),
		StartedAt:   start,
		FinishedAt:  start.Add(12*time.Minute + 40*time.Second),
	}
}

func TestRecordCompletionWritesBothRows(t *testing.T) {
	prog := &memProgress{}
	maps := &memRoadmaps{}
	r := NewRecorder(prog, maps, nil)

	require.NoError(t, r.RecordCompletion(context.Background(), testCompletion()))

	require.Len(t, prog.recs, 1)
	p := prog.recs[0]
	assert.Equal(t, "Kinematics", p.Topic)
	assert.Equal(t, "Complete Chapter", p.Subtopic)
	assert.Equal(t, "medium", p.DifficultyLevel)
	require.NotNil(t, p.TimeSpent)
	assert.Equal(t, 13, *p.TimeSpent)
	assert.Equal(t, 60, *p.QuizScore)

	require.Len(t, maps.recs, 1)
	m := maps.recs[0]
	assert.Equal(t, "deep-learning", m.PlanType)
	assert.Equal(t, store.RoadmapData{Roadmap: "Day 1: basics", Completed: true}, m.Data)
	assert.Equal(t, store.RoadmapProgress{ChunksCompleted: 5, TotalChunks: 5}, m.Progress)
}

func TestRecordCompletionFailuresAreIndependent(t *testing.T) {
	prog := &memProgress{err: errors.New("disk full")}
	maps := &memRoadmaps{}
	r := NewRecorder(prog, maps, nil)

	err := r.RecordCompletion(context.Background(), testCompletion())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Len(t, maps.recs, 1, "roadmap row is written even when progress fails")
}

func TestRecordCompletionNilStores(t *testing.T) {
	r := NewRecorder(nil, nil, nil)
	assert.Error(t, r.RecordCompletion(context.Background(), testCompletion()))
}

func TestTimeSpentRounds(t *testing.T) {
	c := testCompletion()
	c.FinishedAt = c.StartedAt.Add(29 * time.Second)
	assert.Equal(t, 0, c.TimeSpentMinutes())
	c.FinishedAt = c.StartedAt.Add(90 * time.Second)
	assert.Equal(t, 2, c.TimeSpentMinutes())
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	recs := []store.ProgressRecord{
		{Topic: "a", QuizScore: intPtr(80), TimeSpent: intPtr(10), CompletedAt: now.Add(-time.Hour)},
		{Topic: "b", QuizScore: intPtr(65), TimeSpent: intPtr(5), CompletedAt: now.AddDate(0, 0, -3)},
		{Topic: "c", CompletedAt: now.AddDate(0, 0, -30)},
	}
	s := Summarize(recs, now)
	assert.Equal(t, 3, s.TopicsCompleted)
	assert.Equal(t, 73, s.AverageQuizScore)
	assert.Equal(t, 2, s.RecentActivity)
	assert.Equal(t, 15, s.TotalTimeMinutes)

	empty := Summarize(nil, now)
	assert.Zero(t, empty.AverageQuizScore)
	assert.Zero(t, empty.TopicsCompleted)
}

func TestOverviewFromStore(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	defer s.Close()

	r := NewRecorder(s.ProgressRepo(), s.RoadmapRepo(), nil)
	c := testCompletion()
	c.FinishedAt = time.Now()
	c.StartedAt = c.FinishedAt.Add(-20 * time.Minute)
	require.NoError(t, r.RecordCompletion(context.Background(), c))
	// Completing the same chapter again replaces the row.
	c.QuizScore = intPtr(100)
	require.NoError(t, r.RecordCompletion(context.Background(), c))

	stats, err := r.Overview(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TopicsCompleted)
	assert.Equal(t, 100, stats.AverageQuizScore)
	assert.Equal(t, 1, stats.RecentActivity)

	maps, err := s.RoadmapRepo().List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, maps, 1)
	assert.True(t, maps[0].Data.Completed)
}
