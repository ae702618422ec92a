package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/studymate/internal/logger"
	"github.com/abhisek/studymate/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with
// logging and, when more than one attempt is configured, retries.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "groq":
		base, err = NewGroqProvider(cfg.Groq)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewEchoMock()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	p := WithLogging(base, cfg.Provider, eventRepo, log)
	if cfg.Retry.MaxAttempts > 1 {
		p = WithRetry(p, cfg.Retry)
	}
	return p, nil
}
