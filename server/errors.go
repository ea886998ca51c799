package server

import "errors"

var (
	// ErrGatewayRequired is returned when a nil gateway is provided.
	ErrGatewayRequired = errors.New("gateway is required")

	// ErrAnalyzerRequired is returned when a nil analyzer is provided.
	ErrAnalyzerRequired = errors.New("analyzer is required")

	// ErrMetaAnalyzerRequired is returned when a nil meta-analyzer is provided.
	ErrMetaAnalyzerRequired = errors.New("meta-analyzer is required")

	// ErrEmbedderRequired is returned when a nil embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrDocumentStoreRequired is returned when a nil document store is provided.
	ErrDocumentStoreRequired = errors.New("document store is required")
)
