// Package config gathers everything studymate needs at startup: the
// backend URL, the learner id, logging options and the chat and speech
// gateway settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/abhisek/studymate/internal/llm"
	"github.com/abhisek/studymate/internal/store"
	"github.com/abhisek/studymate/internal/tts"
)

// Config is the aggregated application configuration.
type Config struct {
	// DBURL is a SQLite file path or a postgres:// URL.
	DBURL string
	// DBKey is the password for a hosted Postgres backend when the URL
	// does not carry one.
	DBKey string

	UserID  string
	DataDir string

	LogMode     string
	LogPath     string
	LogHashSalt string

	LLM llm.Config
	TTS tts.Config
}

// Overrides are command-line values that win over the environment.
type Overrides struct {
	// EnvFile is loaded instead of ./.env when set.
	EnvFile string
	DBURL   string
	UserID  string
}

// Load reads the .env file (a missing file is not an error), then the
// environment, then applies overrides.
func Load(o Overrides) (Config, error) {
	if err := loadEnvFile(o.EnvFile); err != nil {
		return Config{}, err
	}

	dataDir := os.Getenv("STUDYMATE_DATA_DIR")
	if dataDir == "" {
		d, err := store.DataDir()
		if err != nil {
			return Config{}, err
		}
		dataDir = d
	}

	cfg := Config{
		DBURL:       firstNonEmpty(o.DBURL, os.Getenv("STUDYMATE_DB_URL"), os.Getenv("STUDYMATE_DB")),
		DBKey:       os.Getenv("STUDYMATE_DB_KEY"),
		UserID:      firstNonEmpty(o.UserID, os.Getenv("STUDYMATE_USER_ID")),
		DataDir:     dataDir,
		LogMode:     firstNonEmpty(os.Getenv("STUDYMATE_LOG_MODE"), "dev"),
		LogPath:     firstNonEmpty(os.Getenv("STUDYMATE_LOG_PATH"), filepath.Join(dataDir, "logs", "studymate.log")),
		LogHashSalt: os.Getenv("STUDYMATE_LOG_SALT"),
		LLM:         llm.ConfigFromEnv(),
		TTS:         tts.ConfigFromEnv(),
	}
	if cfg.DBURL == "" {
		cfg.DBURL = filepath.Join(dataDir, "studymate.db")
	}
	if cfg.TTS.CacheDir == "" && cfg.TTS.RedisURL == "" {
		cfg.TTS.CacheDir = filepath.Join(dataDir, "audio")
	}
	return cfg, nil
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}

// IsPostgres reports whether the backend is a hosted Postgres database.
func (c Config) IsPostgres() bool {
	return strings.HasPrefix(c.DBURL, "postgres://") || strings.HasPrefix(c.DBURL, "postgresql://")
}

// Validate checks the backend configuration. Unlike missing chat or
// speech keys, which only switch those gateways to simulation, a bad
// backend configuration stops startup.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DBURL) == "" {
		return fmt.Errorf("backend URL is not set: set STUDYMATE_DB_URL or pass --db")
	}
	if !c.IsPostgres() {
		return nil
	}
	u, err := url.Parse(c.DBURL)
	if err != nil {
		return fmt.Errorf("parse backend URL: %w", err)
	}
	if u.Host == "" {
		return fmt.Errorf("backend URL %q has no host", u.Redacted())
	}
	if _, ok := u.User.Password(); !ok && c.DBKey == "" {
		return fmt.Errorf("hosted backend needs a credential: add a password to the URL or set STUDYMATE_DB_KEY")
	}
	return nil
}

// StoreURL returns the URL to open, with DBKey filled in as the
// Postgres password when the URL lacks one.
func (c Config) StoreURL() string {
	if !c.IsPostgres() || c.DBKey == "" {
		return c.DBURL
	}
	u, err := url.Parse(c.DBURL)
	if err != nil {
		return c.DBURL
	}
	if _, ok := u.User.Password(); ok {
		return c.DBURL
	}
	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, c.DBKey)
	return u.String()
}

// ResolveUserID returns the configured user id, or the one stored in
// the data directory, creating it on first run.
func (c *Config) ResolveUserID() (string, error) {
	if c.UserID != "" {
		return c.UserID, nil
	}
	path := filepath.Join(c.DataDir, "user_id")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if id := strings.TrimSpace(string(data)); id != "" {
			c.UserID = id
			return id, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("read user id: %w", err)
	}

	id := uuid.NewString()
	if err := store.EnsureDir(path); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write user id: %w", err)
	}
	c.UserID = id
	return id, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
