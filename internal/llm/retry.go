package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient provider errors with exponential
// backoff and jitter. The gateway only installs it when
// Retry.MaxAttempts > 1.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	invalidRetried := false

	for attempt := 0; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if attempt == attempts-1 || !r.shouldRetry(err, &invalidRetried) {
			return nil, err
		}
		if werr := sleep(ctx, r.backoff(attempt, err)); werr != nil {
			return nil, werr
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// shouldRetry allows one extra attempt for a reply that failed schema
// validation and defers to retryable for everything else.
func (r *RetryProvider) shouldRetry(err error, invalidRetried *bool) bool {
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		if *invalidRetried {
			return false
		}
		*invalidRetried = true
		return true
	}
	return retryable(err)
}

// backoff honours RetryAfter on rate limits, otherwise grows by
// Multiplier up to MaxWait with ±20% jitter.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.config.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
