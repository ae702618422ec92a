package llm

import "context"

// Purpose labels what a request is for. It ends up on the llm_requests
// row and on every log line about the request.
type Purpose string

const (
	PurposeRoadmap   Purpose = "roadmap"
	PurposeStudyPlan Purpose = "study-plan"
	PurposeContent   Purpose = "content"
	PurposeFlashcard Purpose = "flashcard"
	PurposeQuiz      Purpose = "quiz"
	PurposeUnknown   Purpose = "unknown"
)

type ctxKey int

const (
	purposeKey ctxKey = iota
	sessionKey
)

// WithPurpose attaches a purpose label to the context.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey, p)
}

// PurposeFrom extracts the purpose label, or PurposeUnknown.
func PurposeFrom(ctx context.Context) Purpose {
	if p, ok := ctx.Value(purposeKey).(Purpose); ok && p != "" {
		return p
	}
	return PurposeUnknown
}

// WithSession tags requests made on behalf of a learning session.
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey, sessionID)
}

// SessionFrom returns the session id set by WithSession, or "".
func SessionFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey).(string)
	return id
}

// logFields returns the request labels for structured log lines.
func logFields(ctx context.Context, kv ...any) []any {
	out := append([]any{"purpose", string(PurposeFrom(ctx))}, kv...)
	if id := SessionFrom(ctx); id != "" {
		out = append(out, "session_id", id)
	}
	return out
}
