package npm

import (
	"context"
	"sync"
	"time"
)

var _ Installer = (*MockInstaller)(nil)

// MockInstaller implements Installer for testing
type MockInstaller struct {
	mu       sync.Mutex
	calls    []InstallCall
	finished []DependencyKind

	// Hooks for testing error scenarios
	Errors map[DependencyKind]error
	// Block, when set for a kind, is waited on before that install returns.
	Block map[DependencyKind]chan struct{}
	// Delay, when set for a kind, is slept before that install returns.
	Delay map[DependencyKind]time.Duration
}

// InstallCall records a single Install invocation
type InstallCall struct {
	Kind     DependencyKind
	Packages []string
}

// NewMockInstaller creates a new MockInstaller
func NewMockInstaller() *MockInstaller {
	return &MockInstaller{
		Errors: make(map[DependencyKind]error),
		Block:  make(map[DependencyKind]chan struct{}),
		Delay:  make(map[DependencyKind]time.Duration),
	}
}

// Install records the call and returns the configured error for kind.
func (m *MockInstaller) Install(ctx context.Context, kind DependencyKind, packages []string) error {
	m.mu.Lock()
	m.calls = append(m.calls, InstallCall{
		Kind:     kind,
		Packages: append([]string(nil), packages...),
	})
	block := m.Block[kind]
	delay := m.Delay[kind]
	err := m.Errors[kind]
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	m.mu.Lock()
	m.finished = append(m.finished, kind)
	m.mu.Unlock()

	return err
}

// Finished returns the kinds whose install ran to completion, in order.
func (m *MockInstaller) Finished() []DependencyKind {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]DependencyKind(nil), m.finished...)
}

// Calls returns the recorded calls.
func (m *MockInstaller) Calls() []InstallCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]InstallCall(nil), m.calls...)
}

// Installed returns the packages requested for kind.
func (m *MockInstaller) Installed(kind DependencyKind) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var packages []string
	for _, call := range m.calls {
		if call.Kind == kind {
			packages = append(packages, call.Packages...)
		}
	}
	return packages
}
