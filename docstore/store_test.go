package docstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scopegate/core"
)

func newMemoryStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestPutAndGetDocument(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	contract := map[string]any{
		"contractId": "CTR-001",
		"clientName": "Alpha Corp",
		"summary":    "Annual support contract",
		"value":      float64(120000),
	}

	require.NoError(t, store.PutDocuments(ctx, core.CollectionContracts, contract))

	t.Run("returns the document verbatim", func(t *testing.T) {
		got, err := store.GetDocument(ctx, core.CollectionContracts, "CTR-001")
		require.NoError(t, err)
		assert.Equal(t, contract, got)
	})

	t.Run("unknown id returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetDocument(ctx, core.CollectionContracts, "CTR-999")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("collections do not bleed into each other", func(t *testing.T) {
		_, err := store.GetDocument(ctx, core.CollectionTickets, "CTR-001")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("re-putting an id overwrites", func(t *testing.T) {
		updated := map[string]any{
			"contractId": "CTR-001",
			"clientName": "Alpha Corp",
			"summary":    "Renewed support contract",
		}
		require.NoError(t, store.PutDocuments(ctx, core.CollectionContracts, updated))

		got, err := store.GetDocument(ctx, core.CollectionContracts, "CTR-001")
		require.NoError(t, err)
		assert.Equal(t, "Renewed support contract", got["summary"])
	})
}

func TestPutDocumentsRequiresIdentifier(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	t.Run("missing field", func(t *testing.T) {
		err := store.PutDocuments(ctx, core.CollectionTickets, map[string]any{"subject": "login broken"})
		assert.ErrorIs(t, err, ErrMissingID)
	})

	t.Run("wrong collection field", func(t *testing.T) {
		// A contract-shaped document cannot be stored as a ticket.
		err := store.PutDocuments(ctx, core.CollectionTickets, map[string]any{"contractId": "CTR-001"})
		assert.ErrorIs(t, err, ErrMissingID)
	})

	t.Run("non-string id", func(t *testing.T) {
		err := store.PutDocuments(ctx, core.CollectionTickets, map[string]any{"ticketId": float64(42)})
		assert.ErrorIs(t, err, ErrMissingID)
	})
}

func TestListDocuments(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore(t)

	tickets := []map[string]any{
		{"ticketId": "TKT-001", "subject": "password reset"},
		{"ticketId": "TKT-002", "subject": "billing dispute"},
		{"ticketId": "TKT-003", "subject": "outage report"},
	}
	require.NoError(t, store.PutDocuments(ctx, core.CollectionTickets, tickets...))
	require.NoError(t, store.PutDocuments(ctx, core.CollectionContracts,
		map[string]any{"contractId": "CTR-001", "clientName": "Beta LLC"}))

	got, err := store.ListDocuments(ctx, core.CollectionTickets)
	require.NoError(t, err)
	assert.ElementsMatch(t, tickets, got)

	empty := newMemoryStore(t)
	got, err = empty.ListDocuments(ctx, core.CollectionTickets)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDocumentID(t *testing.T) {
	tests := []struct {
		name       string
		collection core.Collection
		doc        map[string]any
		wantID     string
		wantOK     bool
	}{
		{"contract id", core.CollectionContracts, map[string]any{"contractId": "CTR-7"}, "CTR-7", true},
		{"ticket id", core.CollectionTickets, map[string]any{"ticketId": "TKT-7"}, "TKT-7", true},
		{"absent", core.CollectionContracts, map[string]any{}, "", false},
		{"empty string", core.CollectionContracts, map[string]any{"contractId": ""}, "", false},
		{"wrong type", core.CollectionTickets, map[string]any{"ticketId": 7}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := DocumentID(tt.collection, tt.doc)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Run("parses a JSON array", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "tickets.txt")
		payload := `[{"ticketId":"TKT-001","subject":"login broken"},{"ticketId":"TKT-002","subject":"slow dashboard"}]`
		require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

		docs, err := LoadFile(path)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "TKT-001", docs[0]["ticketId"])
		assert.Equal(t, "slow dashboard", docs[1]["subject"])
	})

	t.Run("rejects non-array payloads", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.txt")
		require.NoError(t, os.WriteFile(path, []byte(`{"ticketId":"TKT-001"}`), 0644))

		_, err := LoadFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
		assert.Error(t, err)
	})
}
