// Package backend defines the vector search backend abstraction.
//
// A PointStore is an authenticated connection to a vector database, bound to
// exactly one credential. The gateway layer owns the mapping from roles to
// PointStores; this package only knows about collections, vectors and points.
//
// The production implementation lives in backend/qdrant; backend/mock
// provides a call-counting test double.
package backend
