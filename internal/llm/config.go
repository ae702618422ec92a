package llm

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "groq", "openai", "openrouter", "anthropic", "gemini", "mock"
	Provider string

	Groq       GroqConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Temperature and MaxTokens are applied to requests that leave them unset.
	Temperature float64
	MaxTokens   int

	// SimulatedDelay is how long the gateway pauses before returning a
	// simulated reply, so demo mode feels like a network round trip.
	SimulatedDelay time.Duration

	// Timeout is the maximum duration for a single LLM request. Default: 30s.
	Timeout time.Duration
}

// GroqConfig holds Groq-specific configuration.
type GroqConfig struct {
	APIKey  string
	Model   string // Default: "llama3-8b-8192"
	BaseURL string // Default: "https://api.groq.com/openai/v1"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.

	// Headers are added to every request.
	Headers map[string]string
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "meta-llama/llama-3-8b-instruct"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
// MaxAttempts of 1 disables retries; every call is attempted once
// and the gateway falls back to simulation on failure.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "groq",
		Groq: GroqConfig{
			Model:   "llama3-8b-8192",
			BaseURL: defaultGroqBaseURL,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "meta-llama/llama-3-8b-instruct",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Temperature:    0.7,
		MaxTokens:      1024,
		SimulatedDelay: 1 * time.Second,
		Timeout:        30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. GROQ_API_KEY is honoured as an alias of
// STUDYMATE_GROQ_API_KEY.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("STUDYMATE_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	cfg.Groq.APIKey = firstEnv("STUDYMATE_GROQ_API_KEY", "GROQ_API_KEY")
	if m := os.Getenv("STUDYMATE_GROQ_MODEL"); m != "" {
		cfg.Groq.Model = m
	}
	if u := os.Getenv("STUDYMATE_GROQ_BASE_URL"); u != "" {
		cfg.Groq.BaseURL = u
	}

	cfg.Anthropic.APIKey = firstEnv("STUDYMATE_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")
	if m := os.Getenv("STUDYMATE_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	cfg.OpenAI.APIKey = firstEnv("STUDYMATE_OPENAI_API_KEY", "OPENAI_API_KEY")
	if m := os.Getenv("STUDYMATE_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("STUDYMATE_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	cfg.Gemini.APIKey = firstEnv("STUDYMATE_GEMINI_API_KEY", "GEMINI_API_KEY")
	if m := os.Getenv("STUDYMATE_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	cfg.OpenRouter.APIKey = firstEnv("STUDYMATE_OPENROUTER_API_KEY", "OPENROUTER_API_KEY")
	if m := os.Getenv("STUDYMATE_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	if n, err := strconv.Atoi(os.Getenv("STUDYMATE_LLM_MAX_ATTEMPTS")); err == nil && n > 0 {
		cfg.Retry.MaxAttempts = n
	}
	if d, err := time.ParseDuration(os.Getenv("STUDYMATE_LLM_SIMULATED_DELAY")); err == nil && d >= 0 {
		cfg.SimulatedDelay = d
	}
	if d, err := time.ParseDuration(os.Getenv("STUDYMATE_LLM_TIMEOUT")); err == nil && d > 0 {
		cfg.Timeout = d
	}

	return cfg
}

// Validate checks that the selected provider has its required API key set.
// A validation failure is not fatal: the gateway reports it as the
// reason it is unavailable and runs in simulation mode.
func (c Config) Validate() error {
	switch c.Provider {
	case "groq":
		if c.Groq.APIKey == "" {
			return fmt.Errorf("STUDYMATE_GROQ_API_KEY is not set")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("STUDYMATE_ANTHROPIC_API_KEY is not set")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("STUDYMATE_OPENAI_API_KEY is not set")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("STUDYMATE_GEMINI_API_KEY is not set")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("STUDYMATE_OPENROUTER_API_KEY is not set")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
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
