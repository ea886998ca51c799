package mock

import (
	"context"
	"sync"

	"github.com/poiesic/scopegate/backend"
)

// MockStore is a test double for backend.PointStore.
// It allows custom behavior injection via function fields and records call
// counts per collection so tests can assert which backend calls were made.
type MockStore struct {
	// SearchFunc is called by Search if set. If nil, Canned results for the
	// collection are returned.
	SearchFunc func(ctx context.Context, collection string, vector []float32, limit uint64) ([]backend.ScoredPoint, error)

	// UpsertFunc is called by Upsert if set.
	UpsertFunc func(ctx context.Context, collection string, points []backend.Point) error

	// Canned holds default search results per collection.
	Canned map[string][]backend.ScoredPoint

	mu          sync.Mutex
	searchCalls map[string]int
	upsertCalls int
	upserted    map[string][]backend.Point
	adminCalls  int
	collections []string
	closed      bool
}

// NewMockStore creates a mock store with no canned results.
func NewMockStore() *MockStore {
	return &MockStore{
		Canned:      map[string][]backend.ScoredPoint{},
		searchCalls: map[string]int{},
		upserted:    map[string][]backend.Point{},
	}
}

// Search records the call and returns injected or canned results.
func (m *MockStore) Search(ctx context.Context, collection string, vector []float32, limit uint64) ([]backend.ScoredPoint, error) {
	m.mu.Lock()
	m.searchCalls[collection]++
	m.mu.Unlock()

	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, collection, vector, limit)
	}

	results := m.Canned[collection]
	if uint64(len(results)) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Upsert records the call and the points written, replacing any previous
// upsert for the collection.
func (m *MockStore) Upsert(ctx context.Context, collection string, points []backend.Point) error {
	m.mu.Lock()
	m.upsertCalls++
	m.upserted[collection] = append([]backend.Point(nil), points...)
	m.mu.Unlock()

	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, collection, points)
	}
	return nil
}

// CollectionExists reports whether the collection was registered via
// SetCollections.
func (m *MockStore) CollectionExists(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adminCalls++
	for _, c := range m.collections {
		if c == name {
			return true, nil
		}
	}
	return false, nil
}

// ListCollections returns the registered collection names.
func (m *MockStore) ListCollections(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adminCalls++
	return append([]string(nil), m.collections...), nil
}

// CreateCollection registers the collection name.
func (m *MockStore) CreateCollection(ctx context.Context, name string, vectorSize uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.adminCalls++
	m.collections = append(m.collections, name)
	return nil
}

// Close marks the store closed.
func (m *MockStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// SetCollections registers collection names for the admin operations.
func (m *MockStore) SetCollections(names ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections = names
}

// SearchCalls returns how many searches were issued against the collection.
func (m *MockStore) SearchCalls(collection string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchCalls[collection]
}

// TotalSearchCalls returns how many searches were issued in total.
func (m *MockStore) TotalSearchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.searchCalls {
		total += n
	}
	return total
}

// Upserted returns the points written by the most recent upsert into the
// collection.
func (m *MockStore) Upserted(collection string) []backend.Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upserted[collection]
}

// UpsertCalls returns how many upserts were issued.
func (m *MockStore) UpsertCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upsertCalls
}

// Closed reports whether Close was called.
func (m *MockStore) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
