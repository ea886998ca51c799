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
	"fmt"
	"log/slog"
	"sync"

	"github.com/poiesic/scopegate/backend"
	"github.com/poiesic/scopegate/core"
)

// StoreFactory constructs an authenticated backend connection for one
// credential. Injected so tests can substitute doubles.
type StoreFactory func(endpoint, credential string) (backend.PointStore, error)

// RegistryConfig is the static role-to-credential table, constructed once at
// process start and passed into the registry. Never looked up through ambient
// globals, so tests can run multiple independently configured registries.
type RegistryConfig struct {
	// Endpoint is the search backend URL shared by all roles.
	Endpoint string

	// Credentials maps each role to its backend API key. A role missing here
	// fails Resolve with ErrCredentialMissing.
	Credentials map[core.Role]string
}

// Registry maps roles to authenticated backend connections. One connection is
// constructed per role on first use and cached for the process lifetime;
// handles are never evicted or refreshed.
type Registry struct {
	config  RegistryConfig
	factory StoreFactory
	logger  *slog.Logger

	mu     sync.Mutex
	stores map[core.Role]backend.PointStore
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryLogger sets a custom logger.
// Default is slog.Default().
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewRegistry creates a credential registry. The factory constructs one
// backend connection per role credential.
func NewRegistry(config RegistryConfig, factory StoreFactory, opts ...RegistryOption) (*Registry, error) {
	if config.Endpoint == "" {
		return nil, ErrEndpointRequired
	}
	if factory == nil {
		return nil, fmt.Errorf("store factory required")
	}

	r := &Registry{
		config:  config,
		factory: factory,
		logger:  slog.Default(),
		stores:  make(map[core.Role]backend.PointStore),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Resolve returns the backend connection for the role, constructing and
// caching it on first use. The lock is held across construction so concurrent
// callers observe at most one handle per role.
func (r *Registry) Resolve(role core.Role) (backend.PointStore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store, ok := r.stores[role]; ok {
		return store, nil
	}

	credential, ok := r.config.Credentials[role]
	if !ok || credential == "" {
		return nil, fmt.Errorf("%w: %s", ErrCredentialMissing, role)
	}

	store, err := r.factory(r.config.Endpoint, credential)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("constructed backend connection", "role", role)
	r.stores[role] = store
	return store, nil
}

// Close releases every cached connection.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var firstErr error
	for role, store := range r.stores {
		if err := store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(r.stores, role)
	}
	return firstErr
}
