package mock

import (
	"context"
	"sync"

	"github.com/poiesic/scopegate/ai"
)

// MockCompleter is a test double for ai.Completer.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// CompleteFunc is called by Complete if set.
	// If nil, a canned narrative is returned.
	CompleteFunc func(ctx context.Context, systemPrompt, userPrompt string, opts *ai.CompletionOptions) (string, error)

	mu          sync.Mutex
	callCount   int
	lastSystem  string
	lastUser    string
	lastOptions *ai.CompletionOptions
}

// NewMockCompleter creates a mock completer with default canned behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Complete records the call and returns the injected or canned response.
func (m *MockCompleter) Complete(ctx context.Context, systemPrompt, userPrompt string, opts *ai.CompletionOptions) (string, error) {
	m.mu.Lock()
	m.callCount++
	m.lastSystem = systemPrompt
	m.lastUser = userPrompt
	m.lastOptions = opts
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, systemPrompt, userPrompt, opts)
	}
	return "mock narrative", nil
}

// CallCount returns the number of times Complete was called.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastPrompts returns the system and user prompts from the most recent call.
func (m *MockCompleter) LastPrompts() (system, user string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSystem, m.lastUser
}

// LastOptions returns the decoding options from the most recent call.
func (m *MockCompleter) LastOptions() *ai.CompletionOptions {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastOptions
}

// Reset clears the call count, recorded prompts and injected behavior.
func (m *MockCompleter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.lastSystem = ""
	m.lastUser = ""
	m.lastOptions = nil
	m.CompleteFunc = nil
}
