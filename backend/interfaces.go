// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package backend

import "context"

// ScoredPoint is one raw match from a vector similarity search: the
// backend-assigned identifier, a match score in [0,1] and the native payload.
type ScoredPoint struct {
	ID      string
	Score   float32
	Payload map[string]any
}

// Point is one record to upsert into a collection.
type Point struct {
	ID      uint64
	Vector  []float32
	Payload map[string]any
}

// PointStore is a vector search backend scoped to one credential. Each
// authenticated connection gets its own PointStore; authorization is enforced
// by the backend per credential, not by this interface.
//
// Implementations must be thread-safe for concurrent use.
type PointStore interface {
	// Search runs a vector similarity search over the named collection,
	// returning matches ordered by descending score with payload attached
	// and raw vectors excluded.
	//
	// Returns ErrPermissionDenied (possibly wrapped) when the backend
	// rejects the credential for this collection.
	Search(ctx context.Context, collection string, vector []float32, limit uint64) ([]ScoredPoint, error)

	// Upsert writes points into the named collection.
	Upsert(ctx context.Context, collection string, points []Point) error

	// CollectionExists reports whether the named collection exists.
	CollectionExists(ctx context.Context, name string) (bool, error)

	// ListCollections returns the names of all visible collections.
	ListCollections(ctx context.Context) ([]string, error)

	// CreateCollection creates a collection configured for cosine-distance
	// vectors of the given size.
	CreateCollection(ctx context.Context, name string, vectorSize uint64) error

	// Close releases the underlying connection.
	Close() error
}
