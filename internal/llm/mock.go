package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply. A non-nil Err is returned as is.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order and records every
// request it sees. Once the script runs out it answers with Fallback,
// or fails as unavailable when Fallback is nil. It backs the "mock"
// provider setting and the tests.
type MockProvider struct {
	Calls    []Request
	Fallback json.RawMessage

	mu     sync.Mutex
	script []MockResponse
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	m.script = append(m.script, r)
	m.mu.Unlock()
}

func (m *MockProvider) next(req Request) (MockResponse, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, req)
	if len(m.script) == 0 {
		return MockResponse{Content: m.Fallback}, m.Fallback != nil
	}
	r := m.script[0]
	m.script = m.script[1:]
	return r, true
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	r, ok := m.next(req)
	switch {
	case !ok:
		return nil, &ErrProviderUnavailable{}
	case r.Err != nil:
		return nil, r.Err
	}
	return settle(req, completion{text: string(r.Content), usage: r.Usage, model: m.ModelID()})
}

func (m *MockProvider) ModelID() string { return "mock" }

// CallCount is the number of Generate calls so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
