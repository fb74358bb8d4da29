package testutil

import (
	"context"
	"sync"

	"duet/model"
)

// MockBackend implements model.Backend for testing and records every request.
type MockBackend struct {
	// Configurable responses
	GenerateFunc func(ctx context.Context, req model.Request) (string, error)
	PingFunc     func(ctx context.Context) error

	mu       sync.Mutex
	requests []model.Request
	replies  []string
}

// NewMockBackend creates a mock that returns replies in order, then
// "Mock response" once they run out.
func NewMockBackend(replies ...string) *MockBackend {
	mock := &MockBackend{replies: replies}
	mock.GenerateFunc = mock.defaultGenerate
	mock.PingFunc = func(ctx context.Context) error { return nil }
	return mock
}

func (m *MockBackend) defaultGenerate(ctx context.Context, req model.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.replies) == 0 {
		return "Mock response", nil
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]
	return reply, nil
}

func (m *MockBackend) Generate(ctx context.Context, req model.Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	return m.GenerateFunc(ctx, req)
}

func (m *MockBackend) Ping(ctx context.Context) error {
	return m.PingFunc(ctx)
}

// Requests returns a copy of every request received so far.
func (m *MockBackend) Requests() []model.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Request(nil), m.requests...)
}

// Calls returns the number of Generate calls.
func (m *MockBackend) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
