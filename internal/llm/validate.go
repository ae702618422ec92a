package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// compiled holds compiled schemas keyed by Schema.Name.
var compiled sync.Map // map[string]*jsonschema.Schema

// Validate checks raw against schema after removing a Markdown code
// fence. It returns *ErrInvalidResponse on failure and nil when schema
// is nil.
func Validate(schema *Schema, raw json.RawMessage) error {
	return validateResponse(schema, json.RawMessage(Unfence(string(raw))))
}

// Decode validates text against schema and unmarshals it into v.
func Decode(schema *Schema, text string, v any) error {
	raw := json.RawMessage(Unfence(text))
	if err := validateResponse(schema, raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// Unfence strips a surrounding ```json code fence. Llama models on Groq
// often wrap JSON replies in one even in JSON mode.
func Unfence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}

func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	sch, err := compile(schema)
	if err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("compile schema %q: %w", schema.Name, err)}
	}
	if err := sch.Validate(parsed); err != nil {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf("schema %q: %w", schema.Name, err)}
	}
	return nil
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(schema.Name); ok {
		return s.(*jsonschema.Schema), nil
	}

	// The compiler wants plain JSON values (float64, []any), not the Go
	// literals the definition maps are written with.
	b, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal definition: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(b)))
	if err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	url := "schema://studymate/" + schema.Name + ".json"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	compiled.Store(schema.Name, s)
	return s, nil
}

// finishResponse turns provider output into a Response. Schema replies
// are unfenced and validated. A schema reply stopped at the token limit
// is reported as ErrMaxTokensExceeded.
func finishResponse(req Request, text string, usage Usage, model, stop string) (*Response, error) {
	if req.Schema == nil {
		return &Response{Content: json.RawMessage(text), Usage: usage, Model: model, StopReason: stop}, nil
	}

	content := json.RawMessage(Unfence(text))
	if stop == "max_tokens" {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}
