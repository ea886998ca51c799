package ai

// CompletionOptions controls decoding behavior for a completion request.
type CompletionOptions struct {
	// Temperature controls sampling randomness. 0 is deterministic.
	Temperature float64

	// TopK restricts sampling to the K most likely tokens.
	TopK int

	// TopP restricts sampling to the smallest token set whose cumulative
	// probability exceeds P.
	TopP float64

	// MaxTokens caps the number of generated tokens. Generous by default so
	// itemized answers are not truncated mid-list.
	MaxTokens int
}

// DefaultCompletionOptions returns the decoding defaults used when a caller
// passes nil options.
func DefaultCompletionOptions() *CompletionOptions {
	return &CompletionOptions{
		Temperature: 0.1,
		TopK:        10,
		TopP:        0.9,
		MaxTokens:   2048,
	}
}
