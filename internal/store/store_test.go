package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func intPtr(v int) *int { return &v }

func TestResolveDriver(t *testing.T) {
	driver, d, dsn := resolveDriver("postgres://u:p@db.example.com/app")
	assert.Equal(t, "pgx", driver)
	assert.Equal(t, "postgres", d)
	assert.Equal(t, "postgres://u:p@db.example.com/app", dsn)

	driver, d, dsn = resolveDriver("sqlite:///tmp/a.db")
	assert.Equal(t, "sqlite", driver)
	assert.Equal(t, "sqlite3", d)
	assert.Equal(t, "/tmp/a.db?_time_format=sqlite", dsn)

	_, _, dsn = resolveDriver("/tmp/a.db?_pragma=x")
	assert.Equal(t, "/tmp/a.db?_pragma=x&_time_format=sqlite", dsn)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twice.db")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestProfileRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.ProfileRepo()

	got, err := repo.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, repo.Upsert(ctx, ProfileRecord{
		UserID:            "u1",
		FullName:          "Asha",
		GradeLevel:        11,
		ExamType:          "NEET",
		LearningStyle:     "audio",
		PreferredSubjects: []string{"Physics", "Biology"},
	}))

	got, err = repo.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Asha", got.FullName)
	assert.Equal(t, 11, got.GradeLevel)
	assert.Equal(t, []string{"Physics", "Biology"}, got.PreferredSubjects)
	created := got.CreatedAt

	require.NoError(t, repo.Upsert(ctx, ProfileRecord{
		UserID:        "u1",
		FullName:      "Asha K",
		GradeLevel:    12,
		ExamType:      "JEE",
		LearningStyle: "text",
		CreatedAt:     created.Add(time.Hour),
	}))

	got, err = repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Asha K", got.FullName)
	assert.Equal(t, 12, got.GradeLevel)
	assert.Empty(t, got.PreferredSubjects)
	assert.True(t, got.CreatedAt.Equal(created), "created_at must survive an update")
}

func TestProgressRepoUpsertKey(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.ProgressRepo()

	base := ProgressRecord{
		UserID:          "u1",
		Subject:         "Physics",
		Topic:           "Physics - Kinematics",
		Subtopic:        "Complete Chapter",
		CompletedAt:     time.Now().Add(-time.Hour),
		QuizScore:       intPtr(50),
		TimeSpent:       intPtr(12),
		DifficultyLevel: "medium",
	}
	require.NoError(t, repo.Upsert(ctx, base))

	again := base
	again.QuizScore = intPtr(80)
	again.CompletedAt = time.Now()
	require.NoError(t, repo.Upsert(ctx, again))

	other := base
	other.Topic = "Physics - Optics"
	other.QuizScore = nil
	other.CompletedAt = time.Now().Add(-2 * time.Hour)
	require.NoError(t, repo.Upsert(ctx, other))

	recs, err := repo.List(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "Physics - Kinematics", recs[0].Topic)
	require.NotNil(t, recs[0].QuizScore)
	assert.Equal(t, 80, *recs[0].QuizScore)
	assert.Nil(t, recs[1].QuizScore)

	recs, err = repo.List(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestRoadmapRepoKeepsCreatedAt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.RoadmapRepo()

	first := time.Now().Add(-24 * time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, repo.Upsert(ctx, RoadmapRecord{
		UserID:    "u1",
		Subject:   "Chemistry",
		Topic:     "Chemistry - Atomic Structure",
		PlanType:  PlanDeepLearning,
		Data:      RoadmapData{Roadmap: "Day 1", Completed: false},
		Progress:  RoadmapProgress{ChunksCompleted: 1, TotalChunks: 5},
		CreatedAt: first,
		UpdatedAt: first,
	}))
	require.NoError(t, repo.Upsert(ctx, RoadmapRecord{
		UserID:   "u1",
		Subject:  "Chemistry",
		Topic:    "Chemistry - Atomic Structure",
		PlanType: PlanDeepLearning,
		Data:     RoadmapData{Roadmap: "Day 1", Completed: true},
		Progress: RoadmapProgress{ChunksCompleted: 5, TotalChunks: 5},
	}))

	recs, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Data.Completed)
	assert.Equal(t, 5, recs[0].Progress.ChunksCompleted)
	assert.True(t, recs[0].CreatedAt.Equal(first))
	assert.True(t, recs[0].UpdatedAt.After(first))
}

func TestInteractionRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.InteractionRepo()

	err := repo.Append(ctx, Interaction{UserID: "u1", Type: "shout"})
	require.Error(t, err)

	require.NoError(t, repo.Append(ctx, Interaction{
		UserID:  "u1",
		Subject: "Biology",
		Topic:   "Biology - Cell",
		Type:    InteractionFeedback,
		Content: "understood",
		Context: map[string]any{"chunk": 0},
	}))
	require.NoError(t, repo.Append(ctx, Interaction{
		UserID:     "u1",
		Subject:    "Biology",
		Topic:      "Biology - Cell",
		Subtopic:   "Chunk 1 concepts",
		Type:       InteractionAnswer,
		Content:    "B",
		AIResponse: "correct",
	}))

	got, err := repo.List(ctx, "u1", "Biology", "Biology - Cell")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, InteractionFeedback, got[0].Type)
	assert.Equal(t, float64(0), got[0].Context["chunk"])
	assert.Equal(t, "", got[0].Subtopic)
	assert.Equal(t, "correct", got[1].AIResponse)
}

func TestSyllabusRepo(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.SyllabusRepo()

	require.NoError(t, repo.Seed(ctx, []SyllabusEntry{
		{Class: "11", Subject: "Physics", ChapterID: "phy_02", ChapterName: "Units", Order: 2},
		{Class: "11", Subject: "Physics", ChapterID: "phy_01", ChapterName: "Physical World", Order: 1},
		{Class: "12", Subject: "Physics", ChapterID: "phy_01", ChapterName: "Electric Charges", Order: 1},
	}))
	// Reseeding renames in place.
	require.NoError(t, repo.Seed(ctx, []SyllabusEntry{
		{Class: "11", Subject: "Physics", ChapterID: "phy_02", ChapterName: "Units and Measurements", Order: 2},
	}))
	require.NoError(t, repo.Seed(ctx, nil))

	got, err := repo.Chapters(ctx, "11", "Physics")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "phy_01", got[0].ChapterID)
	assert.Equal(t, "Units and Measurements", got[1].ChapterName)

	got, err = repo.Chapters(ctx, "11", "History")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEventStoreUsage(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	events := s.EventRepo()

	require.NoError(t, events.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "groq", Model: "llama3-8b-8192", Purpose: "roadmap",
		InputTokens: 100, OutputTokens: 300, Success: true,
	}))
	require.NoError(t, events.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "groq", Model: "llama3-8b-8192", Purpose: "quiz",
		InputTokens: 40, ErrorMessage: "rate limited",
	}))

	usage, err := events.Usage(ctx)
	require.NoError(t, err)
	require.Len(t, usage, 1)
	assert.Equal(t, "llama3-8b-8192", usage[0].Model)
	assert.EqualValues(t, 2, usage[0].Requests)
	assert.EqualValues(t, 1, usage[0].Successes)
	assert.EqualValues(t, 140, usage[0].InputTokens)
	assert.EqualValues(t, 300, usage[0].OutputTokens)
}
