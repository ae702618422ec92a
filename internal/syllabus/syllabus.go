// Package syllabus lists the chapters of a subject, exam subject sets and
// study plan timeframes.
package syllabus

import (
	"context"
	"fmt"
	"sort"

	"github.com/abhisek/studymate/internal/logger"
	"github.com/abhisek/studymate/internal/store"
)

// Chapter is one chapter of a subject.
type Chapter struct {
	ID    string
	Name  string
	Order int
}

// Source says where a chapter list came from.
type Source string

const (
	SourceBackend  Source = "backend"
	SourceFallback Source = "fallback"
)

// Catalog reads chapters from the backend and falls back to the
// built-in tables.
type Catalog struct {
	repo store.SyllabusRepo
	log  *logger.Logger
}

// NewCatalog creates a catalog. repo may be nil.
func NewCatalog(repo store.SyllabusRepo, log *logger.Logger) *Catalog {
	return &Catalog{repo: repo, log: logger.OrNop(log)}
}

// Chapters returns the chapters of subject for class ("11" or "12").
// Backend errors are logged and answered from the fallback tables.
func (c *Catalog) Chapters(ctx context.Context, class, subject string) ([]Chapter, Source) {
	if c.repo != nil {
		entries, err := c.repo.Chapters(ctx, class, subject)
		switch {
		case err != nil:
			c.log.Warn("syllabus lookup failed, using fallback", "class", class, "subject", subject, "error", err)
		case len(entries) > 0:
			out := make([]Chapter, len(entries))
			for i, e := range entries {
				out[i] = Chapter{ID: e.ChapterID, Name: e.ChapterName, Order: e.Order}
			}
			sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
			return out, SourceBackend
		}
	}
	return FallbackChapters(subject), SourceFallback
}

// Seed writes the built-in tables for every subject with one into the
// backend, for both classes. It returns the number of rows written.
func (c *Catalog) Seed(ctx context.Context, classes ...string) (int, error) {
	if c.repo == nil {
		return 0, fmt.Errorf("no backend configured")
	}
	if len(classes) == 0 {
		classes = []string{"11", "12"}
	}

	subjects := make([]string, 0, len(static.Subjects))
	for s := range static.Subjects {
		subjects = append(subjects, s)
	}
	sort.Strings(subjects)

	var entries []store.SyllabusEntry
	for _, class := range classes {
		for _, subject := range subjects {
			for _, ch := range FallbackChapters(subject) {
				entries = append(entries, store.SyllabusEntry{
					Class:       class,
					Subject:     subject,
					ChapterID:   ch.ID,
					ChapterName: ch.Name,
					Order:       ch.Order,
				})
			}
		}
	}

	if err := c.repo.Seed(ctx, entries); err != nil {
		return 0, err
	}
	c.log.Info("syllabus seeded", "rows", len(entries))
	return len(entries), nil
}
