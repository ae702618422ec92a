package llm

import "fmt"

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// GroqProvider talks to Groq's OpenAI-compatible chat completions
// endpoint. Groq takes max_tokens and only supports json_object output.
type GroqProvider struct {
	*OpenAIProvider
}

// NewGroqProvider creates a provider targeting the Groq API.
func NewGroqProvider(cfg GroqConfig) (*GroqProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	inner, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
	})
	if err != nil {
		return nil, err
	}
	inner.legacyMaxTokens = true
	inner.jsonObject = true

	return &GroqProvider{OpenAIProvider: inner}, nil
}
