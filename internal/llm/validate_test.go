package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func testQuizSchema() *Schema {
	return &Schema{
		Name:        "test-quiz",
		Description: "A multiple choice question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 4,
					"maxItems": 4,
				},
				"correct_index": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
				"explanation":   map[string]any{"type": "string"},
			},
			"required": []any{"question", "options", "correct_index", "explanation"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"question":"q","options":["a","b","c","d"],"correct_index":2,"explanation":"e"}`, false},
		{"missing explanation", `{"question":"q","options":["a","b","c","d"],"correct_index":2}`, true},
		{"three options", `{"question":"q","options":["a","b","c"],"correct_index":2,"explanation":"e"}`, true},
		{"index out of range", `{"question":"q","options":["a","b","c","d"],"correct_index":4,"explanation":"e"}`, true},
		{"not json", `Question: what?`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(testQuizSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateResponse() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestUnfence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"{\"a\":1}", "{\"a\":1}"},
		{"```json\n{\"a\":1}\n```", "{\"a\":1}"},
		{"```\n{\"a\":1}```", "{\"a\":1}"},
		{"  plain text  ", "plain text"},
	}
	for _, tt := range tests {
		if got := Unfence(tt.in); got != tt.want {
			t.Errorf("Unfence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecode(t *testing.T) {
	var out struct {
		Question     string   `json:"question"`
		Options      []string `json:"options"`
		CorrectIndex int      `json:"correct_index"`
	}
	text := "```json\n{\"question\":\"q\",\"options\":[\"a\",\"b\",\"c\",\"d\"],\"correct_index\":1,\"explanation\":\"e\"}\n```"
	if err := Decode(testQuizSchema(), text, &out); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Question != "q" || len(out.Options) != 4 || out.CorrectIndex != 1 {
		t.Fatalf("decoded %+v", out)
	}

	if err := Decode(testQuizSchema(), `{"question":"q"}`, &out); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestFinishResponse_TruncatedSchemaReply(t *testing.T) {
	req := Request{Schema: testQuizSchema()}
	_, err := finishResponse(req, `{"question":"q","opt`, Usage{}, "m", "max_tokens")
	var mt *ErrMaxTokensExceeded
	if !errors.As(err, &mt) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}

	resp, err := finishResponse(Request{}, "a long lesson that was cut", Usage{}, "m", "max_tokens")
	if err != nil {
		t.Fatalf("text replies keep truncated content: %v", err)
	}
	if resp.StopReason != "max_tokens" {
		t.Fatalf("stop reason = %q", resp.StopReason)
	}
}
