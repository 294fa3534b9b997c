// Package testutil provides a scripted Generator for tests.
package testutil

import (
	"context"
	"sync"
)

// MockGenerator replays queued responses in order and records every prompt.
// Hook, when set, runs before each reply and may block or cancel.
type MockGenerator struct {
	mu        sync.Mutex
	responses []Response
	prompts   []string
	Hook      func(ctx context.Context, prompt string)
}

type Response struct {
	Text string
	Err  error
}

func NewMockGenerator(responses ...Response) *MockGenerator {
	return &MockGenerator{responses: responses}
}

func (m *MockGenerator) Queue(responses ...Response) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, responses...)
}

func (m *MockGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	hook := m.Hook
	m.mu.Unlock()

	if hook != nil {
		hook(ctx, prompt)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.responses) == 0 {
		return "", nil
	}
	next := m.responses[0]
	m.responses = m.responses[1:]
	return next.Text, next.Err
}

func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
