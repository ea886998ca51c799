// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder and ai.Completer
// for use in unit tests. The mocks allow tests to run without external AI
// service dependencies and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockEmbedder := mock.NewMockEmbedder()
//	embedding, err := mockEmbedder.EmbedText(ctx, "test")
//
//	// Custom behavior injection
//	mockCompleter := mock.NewMockCompleter()
//	mockCompleter.CompleteFunc = func(ctx context.Context, sys, user string, opts *ai.CompletionOptions) (string, error) {
//	    return "YES\n\nRelevant documents:\n[tickets] TKT-1 (Alpha Corp): login outage", nil
//	}
//
//	// Check call counts
//	count := mockCompleter.CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: Returns deterministic 1536-dim vectors based on text hash
//   - MockCompleter: Returns a fixed "mock narrative" string
package mock
