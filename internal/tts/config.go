package tts

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultBaseURL = "https://api.elevenlabs.io"
	defaultVoiceID = "pNInz6obpgDQGcFmaJgB"
	defaultModelID = "eleven_monolingual_v1"
)

// Config holds speech synthesis configuration.
type Config struct {
	APIKey  string
	VoiceID string
	ModelID string
	BaseURL string

	Stability       float64
	SimilarityBoost float64

	// Timeout bounds a single synthesis request. Default: 10s.
	Timeout time.Duration

	// CacheDir enables the on-disk audio cache when set.
	CacheDir string

	// RedisURL enables the Redis audio cache when set. It takes
	// precedence over CacheDir.
	RedisURL string
	CacheTTL time.Duration
}

// DefaultConfig returns a Config with the ElevenLabs defaults.
func DefaultConfig() Config {
	return Config{
		VoiceID:         defaultVoiceID,
		ModelID:         defaultModelID,
		BaseURL:         defaultBaseURL,
		Stability:       0.5,
		SimilarityBoost: 0.5,
		Timeout:         10 * time.Second,
		CacheTTL:        7 * 24 * time.Hour,
	}
}

// ConfigFromEnv builds a Config from environment variables.
// ELEVENLABS_API_KEY is honoured as an alias of STUDYMATE_ELEVENLABS_API_KEY.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.APIKey = firstEnv("STUDYMATE_ELEVENLABS_API_KEY", "ELEVENLABS_API_KEY")
	if v := os.Getenv("STUDYMATE_ELEVENLABS_VOICE_ID"); v != "" {
		cfg.VoiceID = v
	}
	if v := os.Getenv("STUDYMATE_ELEVENLABS_MODEL"); v != "" {
		cfg.ModelID = v
	}
	if v := os.Getenv("STUDYMATE_ELEVENLABS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if d, err := time.ParseDuration(os.Getenv("STUDYMATE_TTS_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}
	cfg.CacheDir = os.Getenv("STUDYMATE_TTS_CACHE_DIR")
	cfg.RedisURL = os.Getenv("STUDYMATE_REDIS_URL")
	if d, err := time.ParseDuration(os.Getenv("STUDYMATE_TTS_CACHE_TTL")); err == nil && d > 0 {
		cfg.CacheTTL = d
	}
	return cfg
}

// Validate reports why real synthesis is impossible. Like the chat
// gateway, a failure here only switches narration to local speech.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("STUDYMATE_ELEVENLABS_API_KEY is not set")
	}
	if c.VoiceID == "" {
		return fmt.Errorf("voice id is empty")
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
