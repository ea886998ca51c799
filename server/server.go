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


package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/poiesic/scopegate/ai"
	"github.com/poiesic/scopegate/analysis"
	"github.com/poiesic/scopegate/core"
	"github.com/poiesic/scopegate/pipeline"
)

// SearchGateway is the scoped search and collection administration surface
// the HTTP layer depends on. Implemented by gateway.Gateway.
type SearchGateway interface {
	Search(ctx context.Context, role core.Role, collection core.Collection, vector []float32, limit uint64) ([]core.SearchResult, error)
	CollectionExists(ctx context.Context, name string) (bool, error)
	ListCollections(ctx context.Context) ([]string, error)
	CreateCollection(ctx context.Context, name string, vectorSize uint64) error
}

// DocumentStore looks up raw source documents. Implemented by docstore.Store.
type DocumentStore interface {
	GetDocument(ctx context.Context, collection core.Collection, id string) (map[string]any, error)
}

// Server serves the HTTP API.
type Server struct {
	gateway      SearchGateway
	analyzer     *analysis.Analyzer
	meta         *analysis.MetaAnalyzer
	embedder     ai.Embedder
	docs         DocumentStore
	orchestrator *pipeline.Orchestrator
	logger       *slog.Logger
	mux          *http.ServeMux
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// New creates the HTTP server and registers its routes.
func New(
	gateway SearchGateway,
	analyzer *analysis.Analyzer,
	meta *analysis.MetaAnalyzer,
	embedder ai.Embedder,
	docs DocumentStore,
	opts ...Option,
) (*Server, error) {
	if gateway == nil {
		return nil, ErrGatewayRequired
	}
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}
	if meta == nil {
		return nil, ErrMetaAnalyzerRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if docs == nil {
		return nil, ErrDocumentStoreRequired
	}

	s := &Server{
		gateway:  gateway,
		analyzer: analyzer,
		meta:     meta,
		embedder: embedder,
		docs:     docs,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	orchestrator, err := pipeline.NewOrchestrator(gateway, embedder, analyzer, meta,
		pipeline.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.orchestrator = orchestrator

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/query", s.handleQuery)
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/meta-analyze", s.handleMetaAnalyze)
	mux.HandleFunc("POST /api/embed", s.handleEmbed)
	mux.HandleFunc("POST /api/document", s.handleDocument)
	mux.HandleFunc("GET /api/collections", s.handleListCollections)
	mux.HandleFunc("GET /api/check-collection", s.handleCheckCollection)
	mux.HandleFunc("POST /api/create-collection", s.handleCreateCollection)
	s.mux = mux

	return s, nil
}

// Router returns the server's handler for mounting or testing.
func (s *Server) Router() http.Handler {
	return s.mux
}

// Close releases the pipeline worker pool.
func (s *Server) Close() {
	s.orchestrator.Release()
}

// ListenAndServe blocks serving the API on addr until ctx is canceled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
