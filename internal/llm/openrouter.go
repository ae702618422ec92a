package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider talks to OpenRouter's OpenAI-compatible API. Requests
// carry OpenRouter's app attribution headers.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: baseURL,
		Headers: map[string]string{
			"HTTP-Referer": "https://github.com/abhisek/studymate",
			"X-Title":      "studymate",
		},
	})
	if err != nil {
		return nil, err
	}
	// Not every routed model supports json_schema.
	inner.jsonObject = true

	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
