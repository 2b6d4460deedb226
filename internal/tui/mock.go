package tui

import (
	"context"
	"fmt"
	"sync"
)

var _ Prompter = (*MockPrompter)(nil)

// MockPrompter implements Prompter with scripted answers for testing
type MockPrompter struct {
	mu      sync.Mutex
	prompts []PromptCall

	ConfirmAnswer bool
	SelectAnswer  string

	// Hooks for testing error scenarios
	ConfirmError error
	SelectError  error
}

// PromptCall records a single prompt shown to the operator
type PromptCall struct {
	Kind    string // "confirm" or "select"
	Message string
	Choices []string
}

// NewMockPrompter creates a MockPrompter that confirms and picks answer.
func NewMockPrompter(confirm bool, answer string) *MockPrompter {
	return &MockPrompter{
		ConfirmAnswer: confirm,
		SelectAnswer:  answer,
	}
}

// Confirm implements Prompter.
func (m *MockPrompter) Confirm(_ context.Context, message string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, PromptCall{Kind: "confirm", Message: message})
	if m.ConfirmError != nil {
		return false, m.ConfirmError
	}
	return m.ConfirmAnswer, nil
}

// Select implements Prompter. An empty SelectAnswer picks the first choice.
func (m *MockPrompter) Select(_ context.Context, message string, choices []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, PromptCall{
		Kind:    "select",
		Message: message,
		Choices: append([]string(nil), choices...),
	})
	if m.SelectError != nil {
		return "", m.SelectError
	}
	if len(choices) == 0 {
		return "", ErrNoChoices
	}
	if m.SelectAnswer == "" {
		return choices[0], nil
	}
	for _, choice := range choices {
		if choice == m.SelectAnswer {
			return choice, nil
		}
	}
	return "", fmt.Errorf("mock answer %q is not one of %v", m.SelectAnswer, choices)
}

// Prompts returns the recorded prompts.
func (m *MockPrompter) Prompts() []PromptCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]PromptCall(nil), m.prompts...)
}
