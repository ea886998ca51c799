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


package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/scopegate/ai"
	"github.com/poiesic/scopegate/backend"
	"github.com/poiesic/scopegate/core"
	"github.com/poiesic/scopegate/docstore"
	"github.com/poiesic/scopegate/gateway"
)

// Seeder embeds and upserts source documents.
type Seeder struct {
	store    backend.PointStore
	embedder ai.Embedder
	docs     *docstore.Store
	logger   *slog.Logger
}

// Option configures a Seeder.
type Option func(*Seeder) error

// WithDocumentStore also loads seeded documents into a document store,
// keyed by their identifier field.
func WithDocumentStore(docs *docstore.Store) Option {
	return func(s *Seeder) error {
		s.docs = docs
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Seeder) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSeeder creates a seeder writing through the given store. The store
// must carry a credential allowed to create collections and upsert points.
func NewSeeder(store backend.PointStore, embedder ai.Embedder, opts ...Option) (*Seeder, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	s := &Seeder{
		store:    store,
		embedder: embedder,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// CreateCollections creates every known collection, skipping ones that
// already exist.
func (s *Seeder) CreateCollections(ctx context.Context) error {
	for _, collection := range core.Collections {
		exists, err := s.store.CollectionExists(ctx, string(collection))
		if err != nil {
			return fmt.Errorf("checking collection %s: %w", collection, err)
		}
		if exists {
			s.logger.Info("collection already exists", "collection", collection)
			continue
		}

		if err := s.store.CreateCollection(ctx, string(collection), gateway.VectorSize); err != nil {
			return fmt.Errorf("creating collection %s: %w", collection, err)
		}
		s.logger.Info("created collection", "collection", collection)
	}
	return nil
}

// SeedFile embeds and upserts one collection's source file.
// Returns the number of documents seeded.
func (s *Seeder) SeedFile(ctx context.Context, collection core.Collection, path string) (int, error) {
	docs, err := docstore.LoadFile(path)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = embeddingText(collection, doc)
	}

	vectors, err := s.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embedding %s documents: %w", collection, err)
	}
	if len(vectors) != len(docs) {
		return 0, fmt.Errorf("embedding %s documents: got %d vectors for %d texts",
			collection, len(vectors), len(docs))
	}

	points := make([]backend.Point, len(docs))
	for i, doc := range docs {
		id, ok := docstore.DocumentID(collection, doc)
		if !ok {
			return 0, fmt.Errorf("%s document %d: %w", collection, i, docstore.ErrMissingID)
		}

		// Deterministic point IDs keyed on collection and document ID, so
		// reseeding replaces points rather than duplicating them.
		points[i] = backend.Point{
			ID:      uint64(core.IDFromContent(string(collection) + ":" + id)),
			Vector:  vectors[i],
			Payload: doc,
		}
	}

	if err := s.store.Upsert(ctx, string(collection), points); err != nil {
		return 0, fmt.Errorf("upserting %s documents: %w", collection, err)
	}

	if s.docs != nil {
		if err := s.docs.PutDocuments(ctx, collection, docs...); err != nil {
			return 0, fmt.Errorf("loading document store: %w", err)
		}
	}

	s.logger.Info("seeded collection", "collection", collection, "documents", len(docs))
	return len(docs), nil
}

// embeddingText builds the text embedded for a document: the fields that
// carry its searchable substance, space-joined.
func embeddingText(collection core.Collection, doc map[string]any) string {
	first, second := "summary", "terms"
	if collection == core.CollectionTickets {
		first, second = "subject", "description"
	}
	return stringValue(doc[first]) + " " + stringValue(doc[second])
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
