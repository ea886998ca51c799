package seed

import "errors"

var (
	// ErrStoreRequired is returned when a nil point store is provided.
	ErrStoreRequired = errors.New("point store is required")

	// ErrEmbedderRequired is returned when a nil embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")
)
