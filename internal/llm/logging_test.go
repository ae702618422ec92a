package llm

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/abhisek/studymate/internal/store"
)

type recordingEventRepo struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestWithLogging_RecordsSuccessAndFailure(t *testing.T) {
	repo := &recordingEventRepo{}
	mock := NewMockProvider(
		MockResponse{Content: []byte("hi"), Usage: Usage{InputTokens: 3, OutputTokens: 2}},
		MockResponse{Err: errors.New("boom")},
	)
	p := WithLogging(mock, "mock", repo, nil)

	ctx := WithPurpose(context.Background(), "roadmap")
	if _, err := p.Generate(ctx, Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error to pass through")
	}

	if len(repo.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(repo.events))
	}
	ok, failed := repo.events[0], repo.events[1]
	if !ok.Success || ok.Purpose != "roadmap" || ok.InputTokens != 3 || ok.Provider != "mock" {
		t.Errorf("unexpected success event %+v", ok)
	}
	if failed.Success || failed.ErrorMessage != "boom" {
		t.Errorf("unexpected failure event %+v", failed)
	}
}

func TestWithLogging_RepoErrorDoesNotFailRequest(t *testing.T) {
	repo := &recordingEventRepo{err: errors.New("disk full")}
	p := WithLogging(NewMockProvider(MockText("hi")), "mock", repo, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("repo error leaked: %v", err)
	}
}

func TestWithLogging_NilRepo(t *testing.T) {
	p := WithLogging(NewMockProvider(MockText("hi")), "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("model = %q", p.ModelID())
	}
}
