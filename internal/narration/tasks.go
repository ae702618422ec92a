package narration

import (
	"context"
	"sync"
	"time"
)

// Tasks runs delayed narration jobs under one owner-scoped context.
// CancelPending stops what is running now; Close also refuses new work.
type Tasks struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	pending map[uint64]context.CancelFunc
	nextID  uint64
	wg      sync.WaitGroup
}

func NewTasks(parent context.Context) *Tasks {
	ctx, cancel := context.WithCancel(parent)
	return &Tasks{ctx: ctx, cancel: cancel, pending: make(map[uint64]context.CancelFunc)}
}

// After runs fn once delay has elapsed, unless the task is cancelled
// first. It does not wait for fn.
func (t *Tasks) After(delay time.Duration, fn func(ctx context.Context)) {
	t.mu.Lock()
	if t.ctx.Err() != nil {
		t.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(t.ctx)
	id := t.nextID
	t.nextID++
	t.pending[id] = cancel
	t.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer t.wg.Done()
		defer t.done(id)

		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		fn(ctx)
	}()
}

func (t *Tasks) done(id uint64) {
	t.mu.Lock()
	if cancel, ok := t.pending[id]; ok {
		cancel()
		delete(t.pending, id)
	}
	t.mu.Unlock()
}

// Pending returns the number of tasks not yet finished.
func (t *Tasks) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// CancelPending cancels every task started so far.
func (t *Tasks) CancelPending() {
	t.mu.Lock()
	for id, cancel := range t.pending {
		cancel()
		delete(t.pending, id)
	}
	t.mu.Unlock()
}

// Close cancels all tasks and waits for them to return.
func (t *Tasks) Close() {
	t.mu.Lock()
	t.cancel()
	t.mu.Unlock()
	t.CancelPending()
	t.wg.Wait()
}
