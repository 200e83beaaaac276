package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// Reply is one scripted outcome of a Mock.
type Reply struct {
	Content string
	Err     error
}

// Mock is a scripted Provider. It returns replies in order, records every
// request and fails with ErrProviderUnavailable once the script runs out.
type Mock struct {
	mu       sync.Mutex
	script   []Reply
	requests []Request
}

// NewMock returns a Mock that plays replies in order.
func NewMock(replies ...Reply) *Mock {
	return &Mock{script: replies}
}

func (m *Mock) Model() string { return "mock" }

func (m *Mock) Complete(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if len(m.script) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.script[0]
	m.script = m.script[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	content := json.RawMessage(next.Content)
	if err := checkReply(req, content); err != nil {
		return nil, err
	}
	return &Response{Content: content, Model: "mock"}, nil
}

// Push appends replies to the script.
func (m *Mock) Push(replies ...Reply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, replies...)
}

// Requests returns the requests received so far.
func (m *Mock) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}
