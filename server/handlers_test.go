package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/scopegate/ai/mock"
	"github.com/poiesic/scopegate/analysis"
	"github.com/poiesic/scopegate/core"
	"github.com/poiesic/scopegate/docstore"
)

// stubGateway is a SearchGateway backed by injectable functions.
type stubGateway struct {
	mu sync.Mutex

	searchFunc func(role core.Role, collection core.Collection, vector []float32, limit uint64) ([]core.SearchResult, error)
	createFunc func(name string, vectorSize uint64) error

	lastRole       core.Role
	lastCollection core.Collection
	collections    []string
}

func (g *stubGateway) Search(_ context.Context, role core.Role, collection core.Collection, vector []float32, limit uint64) ([]core.SearchResult, error) {
	g.mu.Lock()
	g.lastRole = role
	g.lastCollection = collection
	g.mu.Unlock()

	if g.searchFunc != nil {
		return g.searchFunc(role, collection, vector, limit)
	}
	return nil, nil
}

func (g *stubGateway) CollectionExists(_ context.Context, name string) (bool, error) {
	for _, c := range g.collections {
		if c == name {
			return true, nil
		}
	}
	return false, nil
}

func (g *stubGateway) ListCollections(_ context.Context) ([]string, error) {
	return g.collections, nil
}

func (g *stubGateway) CreateCollection(_ context.Context, name string, vectorSize uint64) error {
	if g.createFunc != nil {
		return g.createFunc(name, vectorSize)
	}
	return nil
}

// stubDocs is a DocumentStore backed by a map.
type stubDocs struct {
	docs map[string]map[string]any
}

func (d *stubDocs) GetDocument(_ context.Context, collection core.Collection, id string) (map[string]any, error) {
	doc, ok := d.docs[string(collection)+"/"+id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return doc, nil
}

func newTestServer(t *testing.T, gw *stubGateway, docs *stubDocs) *Server {
	t.Helper()

	if gw == nil {
		gw = &stubGateway{}
	}
	if docs == nil {
		docs = &stubDocs{}
	}

	analyzer, err := analysis.NewAnalyzer(mock.NewMockCompleter(), core.DefaultCapabilities())
	require.NoError(t, err)
	meta, err := analysis.NewMetaAnalyzer(mock.NewMockCompleter())
	require.NoError(t, err)

	s, err := New(gw, analyzer, meta, mock.NewMockEmbedder(), docs)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func doJSON(t *testing.T, s *Server, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil, nil)
	rec := doJSON(t, s, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleSearch(t *testing.T) {
	t.Run("missing role header defaults to head of support", func(t *testing.T) {
		gw := &stubGateway{}
		s := newTestServer(t, gw, nil)

		rec := doJSON(t, s, http.MethodPost, "/api/search",
			searchRequest{Collection: "contracts", Vector: []float32{0.1}}, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, core.RoleHeadOfSupport, gw.lastRole)
	})

	t.Run("role header is honored", func(t *testing.T) {
		gw := &stubGateway{}
		s := newTestServer(t, gw, nil)

		rec := doJSON(t, s, http.MethodPost, "/api/search",
			searchRequest{Collection: "tickets"}, map[string]string{"X-Role": "SUPPORT_AGENT"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, core.RoleSupportAgent, gw.lastRole)
	})

	t.Run("unknown role is invalid input", func(t *testing.T) {
		s := newTestServer(t, nil, nil)
		rec := doJSON(t, s, http.MethodPost, "/api/search",
			searchRequest{Collection: "contracts"}, map[string]string{"X-Role": "SUPERUSER"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown collection is invalid input", func(t *testing.T) {
		s := newTestServer(t, nil, nil)
		rec := doJSON(t, s, http.MethodPost, "/api/search",
			searchRequest{Collection: "invoices"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("results use the payload field names", func(t *testing.T) {
		gw := &stubGateway{
			searchFunc: func(core.Role, core.Collection, []float32, uint64) ([]core.SearchResult, error) {
				return []core.SearchResult{{
					ID:         "CTR-001",
					Score:      0.91,
					Collection: core.CollectionContracts,
					Name:       "CTR-001",
					Summary:    "Annual support",
					Tenant:     "Alpha Corp",
					Permission: "Full Access",
				}}, nil
			},
		}
		s := newTestServer(t, gw, nil)

		rec := doJSON(t, s, http.MethodPost, "/api/search",
			searchRequest{Collection: "contracts"}, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Results []map[string]any `json:"results"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "Alpha Corp", resp.Results[0]["tenant_id"])
		assert.Equal(t, "Full Access", resp.Results[0]["permission_level"])
	})

	t.Run("backend failure maps to 500", func(t *testing.T) {
		gw := &stubGateway{
			searchFunc: func(core.Role, core.Collection, []float32, uint64) ([]core.SearchResult, error) {
				return nil, errors.New("backend unavailable")
			},
		}
		s := newTestServer(t, gw, nil)

		rec := doJSON(t, s, http.MethodPost, "/api/search",
			searchRequest{Collection: "contracts"}, nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandleQuery(t *testing.T) {
	t.Run("requires a query", func(t *testing.T) {
		s := newTestServer(t, nil, nil)
		rec := doJSON(t, s, http.MethodPost, "/api/query", queryRequest{}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown role is invalid input", func(t *testing.T) {
		s := newTestServer(t, nil, nil)
		rec := doJSON(t, s, http.MethodPost, "/api/query",
			queryRequest{Query: "alpha", Roles: []string{"NOBODY"}}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("runs the pipeline across all roles by default", func(t *testing.T) {
		s := newTestServer(t, &stubGateway{}, nil)
		rec := doJSON(t, s, http.MethodPost, "/api/query",
			queryRequest{Query: "alpha contracts"}, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Query        string             `json:"query"`
			Roles        []queryRolePayload `json:"roles"`
			MetaAnalysis string             `json:"metaAnalysis"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

		assert.Equal(t, "alpha contracts", resp.Query)
		require.Len(t, resp.Roles, len(core.Roles))
		assert.Equal(t, "mock narrative", resp.MetaAnalysis)

		byRole := make(map[string]queryRolePayload, len(resp.Roles))
		for _, rp := range resp.Roles {
			byRole[rp.Role] = rp
		}
		assert.Equal(t, "No access to any data.", byRole["ACCOUNT_MANAGER_C"].AIAnswer)
		assert.Equal(t, "No matching results found.", byRole["HEAD_OF_SUPPORT"].AIAnswer)
	})
}

func TestHandleAnalyze(t *testing.T) {
	s := newTestServer(t, nil, nil)

	t.Run("no-access role gets the fixed narrative", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/analyze", analyzeRequest{
			Query: "alpha contracts",
			Role:  "ACCOUNT_MANAGER_C",
		}, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "No access to any data.", resp["analysis"])
	})

	t.Run("no relevant results gets the fixed narrative", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/analyze", analyzeRequest{
			Query: "zeta",
			Role:  "HEAD_OF_SUPPORT",
			Results: []searchResultPayload{
				{Name: "CTR-001", Tenant: "Alpha Corp", Summary: "support", Score: 0.4},
			},
		}, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "No matching results found.", resp["analysis"])
	})

	t.Run("unknown role is invalid input", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/analyze",
			analyzeRequest{Query: "q", Role: "NOBODY"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleMetaAnalyze(t *testing.T) {
	s := newTestServer(t, nil, nil)

	t.Run("empty input gets the fixed narrative", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/meta-analyze",
			metaAnalyzeRequest{Query: "alpha"}, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "No results available for meta-analysis.", resp["analysis"])
	})

	t.Run("unknown role is invalid input", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/meta-analyze", metaAnalyzeRequest{
			Query:       "alpha",
			RoleResults: []rolePayload{{Role: "NOBODY"}},
		}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleEmbed(t *testing.T) {
	s := newTestServer(t, nil, nil)

	t.Run("requires text", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/embed", embedRequest{}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns the embedding", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/embed", embedRequest{Text: "alpha"}, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Vector []float32 `json:"vector"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Vector, mock.Dimensions)
	})
}

func TestHandleDocument(t *testing.T) {
	docs := &stubDocs{docs: map[string]map[string]any{
		"contracts/CTR-001": {"contractId": "CTR-001", "clientName": "Alpha Corp"},
	}}
	s := newTestServer(t, nil, docs)

	t.Run("found", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/document",
			documentRequest{ID: "CTR-001", Collection: "contracts"}, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "Alpha Corp", doc["clientName"])
	})

	t.Run("not found", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/document",
			documentRequest{ID: "CTR-999", Collection: "contracts"}, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown collection is invalid input", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/document",
			documentRequest{ID: "CTR-001", Collection: "invoices"}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCollectionAdmin(t *testing.T) {
	gw := &stubGateway{collections: []string{"contracts", "tickets"}}
	s := newTestServer(t, gw, nil)

	t.Run("list", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/api/collections", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Collections []string `json:"collections"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"contracts", "tickets"}, resp.Collections)
	})

	t.Run("check existing", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/api/check-collection?collection=tickets", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"exists":true}`, rec.Body.String())
	})

	t.Run("check missing param", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodGet, "/api/check-collection", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create defaults the vector size", func(t *testing.T) {
		var gotSize uint64
		gw := &stubGateway{createFunc: func(name string, vectorSize uint64) error {
			gotSize = vectorSize
			return nil
		}}
		s := newTestServer(t, gw, nil)

		rec := doJSON(t, s, http.MethodPost, "/api/create-collection",
			createCollectionRequest{Name: "contracts"}, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint64(1536), gotSize)
	})

	t.Run("create requires a name", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/api/create-collection",
			createCollectionRequest{}, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
