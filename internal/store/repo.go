package store

import (
	"context"
	"encoding/json"
	"time"
)

// ProfileRecord is a row of student_profiles.
type ProfileRecord struct {
	UserID            string
	FullName          string
	GradeLevel        int
	ExamType          string
	LearningStyle     string
	PreferredSubjects []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProgressRecord is a row of student_progress.
type ProgressRecord struct {
	UserID          string
	Subject         string
	Topic           string
	Subtopic        string
	CompletedAt     time.Time
	QuizScore       *int
	TimeSpent       *int
	DifficultyLevel string
}

// RoadmapData is the roadmap_data JSON blob.
type RoadmapData struct {
	Roadmap   string `json:"roadmap"`
	Completed bool   `json:"completed"`
}

// RoadmapProgress is the progress JSON blob.
type RoadmapProgress struct {
	ChunksCompleted int `json:"chunks_completed"`
	TotalChunks     int `json:"total_chunks"`
}

// RoadmapRecord is a row of learning_roadmaps.
type RoadmapRecord struct {
	UserID    string
	Subject   string
	Topic     string
	PlanType  string
	Data      RoadmapData
	Progress  RoadmapProgress
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interaction types accepted by student_interactions.
const (
	InteractionQuestion = "question"
	InteractionAnswer   = "answer"
	InteractionDoubt    = "doubt"
	InteractionFeedback = "feedback"
)

// Interaction is a row of student_interactions.
type Interaction struct {
	UserID     string
	Subject    string
	Topic      string
	Subtopic   string
	Type       string
	Content    string
	AIResponse string
	Context    map[string]any
	CreatedAt  time.Time
}

// SyllabusEntry is a row of syllabus.
type SyllabusEntry struct {
	Class         string
	Subject       string
	ParentSubject string
	ChapterID     string
	ChapterName   string
	Order         int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMUsage aggregates llm_requests per model.
type LLMUsage struct {
	Model        string `db:"model"`
	Requests     int64  `db:"requests"`
	Successes    int64  `db:"successes"`
	InputTokens  int64  `db:"input_tokens"`
	OutputTokens int64  `db:"output_tokens"`
}

// ProfileRepo manages learner profiles.
type ProfileRepo interface {
	// Get returns the profile for userID, or nil if none exists.
	Get(ctx context.Context, userID string) (*ProfileRecord, error)

	// Upsert creates or replaces the profile keyed by user id.
	Upsert(ctx context.Context, rec ProfileRecord) error
}

// ProgressRepo manages completion records.
type ProgressRepo interface {
	// Upsert writes rec keyed by (user, subject, topic, subtopic).
	Upsert(ctx context.Context, rec ProgressRecord) error

	// List returns the user's records, most recent first. limit <= 0 means all.
	List(ctx context.Context, userID string, limit int) ([]ProgressRecord, error)
}

// RoadmapRepo manages roadmap/progress blobs.
type RoadmapRepo interface {
	// Upsert writes rec keyed by (user, subject, topic, plan type),
	// keeping the original created_at.
	Upsert(ctx context.Context, rec RoadmapRecord) error

	// List returns the user's roadmaps, most recently updated first.
	List(ctx context.Context, userID string) ([]RoadmapRecord, error)
}

// InteractionRepo records learner interactions.
type InteractionRepo interface {
	Append(ctx context.Context, in Interaction) error
	List(ctx context.Context, userID, subject, topic string) ([]Interaction, error)
}

// SyllabusRepo reads and seeds the syllabus table.
type SyllabusRepo interface {
	// Chapters returns the chapters of a class/subject ordered by order.
	Chapters(ctx context.Context, class, subject string) ([]SyllabusEntry, error)

	// Seed upserts entries keyed by (class, subject, chapter_id).
	Seed(ctx context.Context, entries []SyllabusEntry) error
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}

func marshalJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalJSON decodes a JSON column. Empty values leave v untouched.
func unmarshalJSON(raw string, v any) error {
	if raw == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), v)
}
