package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func retryConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockText("ok"),
	)
	p := WithRetry(mock, retryConfig(3))

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != "ok" || mock.CallCount() != 2 {
		t.Fatalf("unexpected result %q after %d calls", resp.Content, mock.CallCount())
	}
}

func TestRetry_SingleAttemptNeverRetries(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
		MockText("unused"),
	)
	p := WithRetry(mock, retryConfig(1))

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_MaxTokensNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrMaxTokensExceeded{}},
		MockText("unused"),
	)
	p := WithRetry(mock, retryConfig(3))

	_, err := p.Generate(context.Background(), Request{})
	var mt *ErrMaxTokensExceeded
	if !errors.As(err, &mt) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrProviderUnavailable{}},
	)
	cfg := retryConfig(2)
	cfg.InitialWait = time.Minute
	cfg.MaxWait = time.Minute
	p := WithRetry(mock, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Generate(ctx, Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
