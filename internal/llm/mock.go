package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockText is a MockResponse carrying plain text content.
func MockText(text string) MockResponse {
	return MockResponse{Content: json.RawMessage(text)}
}

// MockProvider is a deterministic Provider for tests and the "mock"
// provider setting. Queued responses are returned in FIFO order; once
// the queue is empty Fallback answers, or the call fails with
// ErrProviderUnavailable when Fallback is nil.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	Fallback func(Request) MockResponse
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewEchoMock answers every request with the simulated reply text, as
// if it came from a live model. Used for STUDYMATE_LLM_PROVIDER=mock so
// the live code path can be exercised offline.
func NewEchoMock() *MockProvider {
	return &MockProvider{Fallback: func(req Request) MockResponse {
		text := Simulate(req)
		return MockResponse{
			Content: json.RawMessage(text),
			Usage:   Usage{InputTokens: len(req.LastMessage()) / 4, OutputTokens: len(text) / 4},
		}
	}}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.Fallback != nil:
		resp = m.Fallback(req)
	default:
		return nil, &ErrProviderUnavailable{}
	}
	if resp.Err != nil {
		return nil, resp.Err
	}

	resp.Usage.TotalTokens = resp.Usage.InputTokens + resp.Usage.OutputTokens
	return &Response{Content: resp.Content, Usage: resp.Usage, Model: "mock", StopReason: "end"}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
