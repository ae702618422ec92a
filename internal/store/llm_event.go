package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const tableLLMRequests = "llm_requests"

// EventStore implements EventRepo and reports usage totals.
type EventStore struct {
	s *Store
}

func (r *EventStore) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	success := 0
	if data.Success {
		success = 1
	}

	query, args := r.s.builder().
		Insert(tableLLMRequests).
		Columns("provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "created_at").
		Values(data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, success, data.ErrorMessage, time.Now().UTC()).
		Query()

	if _, err := r.s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

// Usage returns request and token totals grouped by model.
func (r *EventStore) Usage(ctx context.Context) ([]LLMUsage, error) {
	query, args := r.s.builder().
		Select(
			"model",
			"COUNT(*) AS requests",
			"SUM(success) AS successes",
			"SUM(input_tokens) AS input_tokens",
			"SUM(output_tokens) AS output_tokens",
		).
		From(entsql.Table(tableLLMRequests)).
		GroupBy("model").
		OrderBy("model").
		Query()

	var out []LLMUsage
	if err := r.s.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("query llm usage: %w", err)
	}
	return out, nil
}
