package profile

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/abhisek/studymate/internal/logger"
	"github.com/abhisek/studymate/internal/store"
)

// Source is the read side of a Provider, as consumed by sessions.
type Source interface {
	Current() Profile
	Subscribe(fn func(Profile)) (unsubscribe func())
}

// Provider owns the current learner's profile. Updates are persisted
// and pushed to subscribers.
type Provider struct {
	repo   store.ProfileRepo
	userID string
	log    *logger.Logger

	mu      sync.Mutex
	current *Profile
	subs    map[int]func(Profile)
	nextSub int
}

// NewProvider creates a provider for userID. repo may be nil, in which
// case the profile lives only in memory.
func NewProvider(repo store.ProfileRepo, userID string, log *logger.Logger) *Provider {
	return &Provider{
		repo:   repo,
		userID: userID,
		log:    logger.OrNop(log),
		subs:   make(map[int]func(Profile)),
	}
}

// NewStatic returns an in-memory provider seeded with p.
func NewStatic(p Profile) *Provider {
	prov := NewProvider(nil, p.UserID, nil)
	prov.current = &p
	return prov
}

// UserID returns the learner this provider serves.
func (p *Provider) UserID() string {
	return p.userID
}

// Load reads the stored profile. It returns false when none exists yet.
func (p *Provider) Load(ctx context.Context) (bool, error) {
	if p.repo == nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		return p.current != nil, nil
	}

	rec, err := p.repo.Get(ctx, p.userID)
	if err != nil {
		return false, fmt.Errorf("load profile: %w", err)
	}
	if rec == nil {
		return false, nil
	}

	prof := fromRecord(*rec)
	p.mu.Lock()
	p.current = &prof
	p.mu.Unlock()
	return true, nil
}

// Exists reports whether a profile has been loaded or saved.
func (p *Provider) Exists() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil
}

// Current returns the profile, or the default one if none exists.
func (p *Provider) Current() Profile {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return Default(p.userID)
	}
	out := *p.current
	out.PreferredSubjects = slices.Clone(out.PreferredSubjects)
	return out
}

// Update validates, persists and publishes next.
func (p *Provider) Update(ctx context.Context, next Profile) (Profile, error) {
	next.UserID = p.userID
	next.PreferredSubjects = DedupeSubjects(next.PreferredSubjects)
	if err := next.Validate(); err != nil {
		return Profile{}, err
	}

	now := time.Now()
	p.mu.Lock()
	if p.current != nil && !p.current.CreatedAt.IsZero() {
		next.CreatedAt = p.current.CreatedAt
	}
	p.mu.Unlock()
	if next.CreatedAt.IsZero() {
		next.CreatedAt = now
	}
	next.UpdatedAt = now

	if p.repo != nil {
		if err := p.repo.Upsert(ctx, next.record()); err != nil {
			return Profile{}, fmt.Errorf("save profile: %w", err)
		}
	}

	p.mu.Lock()
	p.current = &next
	subs := make([]func(Profile), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	p.log.Info("profile updated", "user_id", p.userID, "exam", next.ExamType, "grade", next.GradeLevel)
	for _, fn := range subs {
		fn(next)
	}
	return next, nil
}

// Subscribe registers fn for profile changes. The returned function
// removes it and is safe to call more than once.
func (p *Provider) Subscribe(fn func(Profile)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, id)
			p.mu.Unlock()
		})
	}
}

// Subscribers returns the number of registered subscribers.
func (p *Provider) Subscribers() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.subs)
}
