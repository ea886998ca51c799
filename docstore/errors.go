package docstore

import "errors"

var (
	// ErrNotFound is returned when a requested document does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrMissingID is returned when a document lacks its collection's
	// identifier field.
	ErrMissingID = errors.New("document has no identifier field")
)
