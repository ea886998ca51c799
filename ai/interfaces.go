package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Completer produces free-text completions from a prompt pair.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete sends the system and user prompts to the completion service
	// and returns the generated text. Decoding behavior is controlled by
	// opts; a nil opts uses DefaultCompletionOptions.
	//
	// Returns ErrServiceUnavailable (possibly wrapped) when the service is
	// unreachable or not ready, and ErrMalformedResponse when the service
	// answers without usable text.
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts *CompletionOptions) (string, error)
}
