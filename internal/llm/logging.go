package llm

import (
	"context"
	"time"

	"github.com/abhisek/studymate/internal/logger"
	"github.com/abhisek/studymate/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an
// llm_requests row and a structured log line.
type LoggingProvider struct {
	inner     Provider
	name      string
	eventRepo store.EventRepo
	log       *logger.Logger
}

// WithLogging wraps a Provider with event logging. repo may be nil.
func WithLogging(p Provider, name string, repo store.EventRepo, log *logger.Logger) Provider {
	return &LoggingProvider{inner: p, name: name, eventRepo: repo, log: logger.OrNop(log)}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:  l.name,
		Model:     l.inner.ModelID(),
		Purpose:   string(PurposeFrom(ctx)),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("llm request failed", logFields(ctx, "provider", l.name, "latency_ms", data.LatencyMs, "error", err)...)
	} else {
		l.log.Debug("llm request", logFields(ctx, "provider", l.name, "model", data.Model,
			"latency_ms", data.LatencyMs, "input_tokens", data.InputTokens, "output_tokens", data.OutputTokens)...)
	}

	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			l.log.Warn("failed to record llm request event", "error", logErr)
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
