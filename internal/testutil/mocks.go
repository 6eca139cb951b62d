package testutil

import (
	"context"
	"fmt"
)

// MockChatProvider is a canned-reply chat backend for pipeline tests. It
// satisfies the llm.ChatProvider interface.
type MockChatProvider struct {
	Reply       func(prompt string) (string, error)
	Prompts     []string
	Unavailable bool
}

// Complete records the prompt and returns the canned reply.
func (m *MockChatProvider) Complete(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)
	if m.Reply == nil {
		return "", fmt.Errorf("no reply configured")
	}
	return m.Reply(prompt)
}

// Name returns the provider name
func (m *MockChatProvider) Name() string {
	return "mock"
}

// IsAvailable reports the configured availability
func (m *MockChatProvider) IsAvailable() bool {
	return !m.Unavailable
}
