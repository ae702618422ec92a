package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func TestAnthropicProvider_TextReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":   "msg_test",
			"type": "message",
			"role": "assistant",
			"content": []map[string]any{
				{"type": "text", "text": "FRONT: What is inertia?\nBACK: Resistance to change in motion."},
			},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
		})
	}))
	t.Cleanup(server.Close)

	client := anthropic.NewClient(option.WithAPIKey("test-key"), option.WithBaseURL(server.URL))
	p := &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}

	resp, err := p.Generate(context.Background(), Request{
		System:    "Create engaging flashcards.",
		Messages:  []Message{{Role: RoleUser, Content: "Create a flashcard for Physics - Laws of Motion"}},
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 80 {
		t.Fatalf("expected 80 total tokens, got %d", resp.Usage.TotalTokens)
	}
	if resp.StopReason != "end" {
		t.Fatalf("stop reason = %q", resp.StopReason)
	}
}

func TestResolveModel(t *testing.T) {
	if got := resolveModel("claude-haiku", anthropicModels); got != "claude-haiku-4-5-20251001" {
		t.Errorf("claude-haiku resolved to %q", got)
	}
	if got := resolveModel("gemini-flash", geminiModels); got != "gemini-2.0-flash" {
		t.Errorf("gemini-flash resolved to %q", got)
	}
	if got := resolveModel("llama3-8b-8192", openaiModels); got != "llama3-8b-8192" {
		t.Errorf("pass-through failed: %q", got)
	}
}

func TestBuildGeminiSchema_Quiz(t *testing.T) {
	s := buildGeminiSchema(testQuizSchema().Definition)
	if s.Type != "OBJECT" {
		t.Fatalf("type = %s", s.Type)
	}
	if s.Properties["options"].Items.Type != "STRING" {
		t.Fatalf("options items = %s", s.Properties["options"].Items.Type)
	}
	if len(s.Required) != 4 {
		t.Fatalf("required = %v", s.Required)
	}
}
