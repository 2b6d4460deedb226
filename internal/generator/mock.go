package generator

import (
	"context"
	"sync"
)

var _ Base = (*MockBase)(nil)

// MockBase implements Base for testing
type MockBase struct {
	mu    sync.Mutex
	calls int

	// Hook for testing error scenarios
	InitializeError error
}

// NewMockBase creates a new MockBase
func NewMockBase() *MockBase {
	return &MockBase{}
}

// Initialize records the call and returns InitializeError.
func (m *MockBase) Initialize(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	return m.InitializeError
}

// Calls returns how many times Initialize ran.
func (m *MockBase) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls
}
