package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/jmoiron/sqlx"

	// Hosted Postgres via database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store is the backend: a local SQLite file or a hosted Postgres
// database, both driven through the same repositories.
type Store struct {
	db      *sqlx.DB
	dialect string
}

// Open connects to the backend at url and creates missing tables.
// postgres:// and postgresql:// URLs use pgx; anything else is treated
// as a SQLite DSN (a file path, optionally prefixed with sqlite://).
func Open(url string) (*Store, error) {
	driver, d, dsn := resolveDriver(url)

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if d == dialect.SQLite {
		// Pragmas are per connection.
		db.SetMaxOpenConns(1)
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	} else if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect: %w", err)
	}

	s := &Store{db: sqlx.NewDb(db, driver), dialect: d}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return s, nil
}

func resolveDriver(url string) (driver, d, dsn string) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "pgx", dialect.Postgres, url
	}

	dsn = strings.TrimPrefix(url, "sqlite://")
	if !strings.Contains(dsn, "_time_format=") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_time_format=sqlite"
	}
	return "sqlite", dialect.SQLite, dsn
}

// DB returns the underlying database handle.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// Dialect returns the ent dialect name ("sqlite3" or "postgres").
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) builder() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

// ProfileRepo returns the student_profiles repository.
func (s *Store) ProfileRepo() ProfileRepo { return &profileRepo{s: s} }

// ProgressRepo returns the student_progress repository.
func (s *Store) ProgressRepo() ProgressRepo { return &progressRepo{s: s} }

// RoadmapRepo returns the learning_roadmaps repository.
func (s *Store) RoadmapRepo() RoadmapRepo { return &roadmapRepo{s: s} }

// InteractionRepo returns the student_interactions repository.
func (s *Store) InteractionRepo() InteractionRepo { return &interactionRepo{s: s} }

// SyllabusRepo returns the syllabus repository.
func (s *Store) SyllabusRepo() SyllabusRepo { return &syllabusRepo{s: s} }

// EventRepo returns the llm_requests repository.
func (s *Store) EventRepo() *EventStore { return &EventStore{s: s} }

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the local database file path in priority order:
// 1. STUDYMATE_DB environment variable
// 2. $XDG_DATA_HOME/studymate/studymate.db
// 3. ~/.local/share/studymate/studymate.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("STUDYMATE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "studymate.db")
	return p, EnsureDir(p)
}

// DataDir returns the per-user data directory for studymate.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "studymate"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
