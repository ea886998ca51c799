package gateway

import (
	"sync"
	"testing"

	"github.com/poiesic/scopegate/backend"
	"github.com/poiesic/scopegate/backend/mock"
	"github.com/poiesic/scopegate/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistryConfig() RegistryConfig {
	return RegistryConfig{
		Endpoint: "http://localhost:6334",
		Credentials: map[core.Role]string{
			core.RoleHeadOfSupport:   "key-head",
			core.RoleAccountManagerA: "key-a",
			core.RoleAccountManagerB: "key-b",
			core.RoleAccountManagerC: "key-c",
			core.RoleSupportAgent:    "key-agent",
		},
	}
}

func countingFactory(constructed *[]string) StoreFactory {
	var mu sync.Mutex
	return func(endpoint, credential string) (backend.PointStore, error) {
		mu.Lock()
		defer mu.Unlock()
		*constructed = append(*constructed, credential)
		return mock.NewMockStore(), nil
	}
}

func TestNewRegistry(t *testing.T) {
	t.Run("valid configuration", func(t *testing.T) {
		registry, err := NewRegistry(testRegistryConfig(), countingFactory(&[]string{}))
		require.NoError(t, err)
		assert.NotNil(t, registry)
	})

	t.Run("missing endpoint", func(t *testing.T) {
		config := testRegistryConfig()
		config.Endpoint = ""
		_, err := NewRegistry(config, countingFactory(&[]string{}))
		assert.ErrorIs(t, err, ErrEndpointRequired)
	})

	t.Run("nil factory", func(t *testing.T) {
		_, err := NewRegistry(testRegistryConfig(), nil)
		assert.Error(t, err)
	})
}

func TestRegistryResolve(t *testing.T) {
	t.Run("constructs once per role", func(t *testing.T) {
		var constructed []string
		registry, err := NewRegistry(testRegistryConfig(), countingFactory(&constructed))
		require.NoError(t, err)

		first, err := registry.Resolve(core.RoleHeadOfSupport)
		require.NoError(t, err)
		second, err := registry.Resolve(core.RoleHeadOfSupport)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, []string{"key-head"}, constructed)
	})

	t.Run("distinct roles get distinct credentials", func(t *testing.T) {
		var constructed []string
		registry, err := NewRegistry(testRegistryConfig(), countingFactory(&constructed))
		require.NoError(t, err)

		_, err = registry.Resolve(core.RoleAccountManagerA)
		require.NoError(t, err)
		_, err = registry.Resolve(core.RoleSupportAgent)
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"key-a", "key-agent"}, constructed)
	})

	t.Run("missing credential", func(t *testing.T) {
		config := testRegistryConfig()
		delete(config.Credentials, core.RoleSupportAgent)
		registry, err := NewRegistry(config, countingFactory(&[]string{}))
		require.NoError(t, err)

		_, err = registry.Resolve(core.RoleSupportAgent)
		assert.ErrorIs(t, err, ErrCredentialMissing)
	})

	t.Run("concurrent resolve observes one handle", func(t *testing.T) {
		var constructed []string
		registry, err := NewRegistry(testRegistryConfig(), countingFactory(&constructed))
		require.NoError(t, err)

		const callers = 16
		handles := make([]backend.PointStore, callers)
		var wg sync.WaitGroup
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				store, err := registry.Resolve(core.RoleAccountManagerB)
				assert.NoError(t, err)
				handles[i] = store
			}(i)
		}
		wg.Wait()

		assert.Len(t, constructed, 1)
		for _, h := range handles {
			assert.Same(t, handles[0], h)
		}
	})
}

func TestRegistryClose(t *testing.T) {
	registry, err := NewRegistry(testRegistryConfig(), func(endpoint, credential string) (backend.PointStore, error) {
		return mock.NewMockStore(), nil
	})
	require.NoError(t, err)

	store, err := registry.Resolve(core.RoleHeadOfSupport)
	require.NoError(t, err)

	require.NoError(t, registry.Close())
	assert.True(t, store.(*mock.MockStore).Closed())
}
