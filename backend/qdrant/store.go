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


package qdrant

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/poiesic/scopegate/backend"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	defaultGRPCPort = 6334

	// requestTimeout bounds every backend call.
	requestTimeout = 10 * time.Second
)

// Store implements backend.PointStore over Qdrant's gRPC API.
// One Store is bound to exactly one API key; Qdrant enforces per-key
// collection permissions server-side.
type Store struct {
	client *qdrant.Client
	logger *slog.Logger
}

var _ backend.PointStore = (*Store)(nil)

// NewStore connects to the Qdrant endpoint with the given API key.
// The endpoint is a URL; an https scheme enables TLS and a missing port
// defaults to Qdrant's gRPC port.
func NewStore(endpoint, apiKey string) (backend.PointStore, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid backend endpoint %q: %w", endpoint, err)
	}

	port := defaultGRPCPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid backend endpoint port %q: %w", p, err)
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   u.Hostname(),
		Port:   port,
		APIKey: apiKey,
		UseTLS: u.Scheme == "https",
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrUnavailable, err)
	}

	return &Store{
		client: client,
		logger: slog.Default().With("component", "qdrant-store"),
	}, nil
}

// Search runs a vector similarity search with payload attached and raw
// vectors excluded.
func (s *Store) Search(ctx context.Context, collection string, vector []float32, limit uint64) ([]backend.ScoredPoint, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	points, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: collection,
		Query:          qdrant.NewQueryDense(vector),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(false),
	})
	if err != nil {
		return nil, mapError(err)
	}

	results := make([]backend.ScoredPoint, 0, len(points))
	for _, point := range points {
		results = append(results, backend.ScoredPoint{
			ID:      pointIDString(point.GetId()),
			Score:   point.GetScore(),
			Payload: payloadToMap(point.GetPayload()),
		})
	}
	return results, nil
}

// Upsert writes points into the named collection.
func (s *Store) Upsert(ctx context.Context, collection string, points []backend.Point) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	structs := make([]*qdrant.PointStruct, 0, len(points))
	for _, p := range points {
		structs = append(structs, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(p.ID),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(p.Payload),
		})
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         structs,
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

// CollectionExists reports whether the named collection exists.
func (s *Store) CollectionExists(ctx context.Context, name string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	exists, err := s.client.CollectionExists(ctx, name)
	if err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

// ListCollections returns the names of all collections visible to this key.
func (s *Store) ListCollections(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	names, err := s.client.ListCollections(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return names, nil
}

// CreateCollection creates a cosine-distance collection of the given size.
func (s *Store) CreateCollection(ctx context.Context, name string, vectorSize uint64) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	err := s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

// Close releases the gRPC connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// mapError translates gRPC status codes into backend sentinel errors so
// callers never depend on grpc directly.
func mapError(err error) error {
	switch status.Code(err) {
	case codes.PermissionDenied, codes.Unauthenticated:
		return fmt.Errorf("%w: %v", backend.ErrPermissionDenied, err)
	case codes.NotFound:
		return fmt.Errorf("%w: %v", backend.ErrCollectionNotFound, err)
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %v", backend.ErrUnavailable, err)
	default:
		return err
	}
}

func pointIDString(id *qdrant.PointId) string {
	if id == nil {
		return ""
	}
	if uuid := id.GetUuid(); uuid != "" {
		return uuid
	}
	return strconv.FormatUint(id.GetNum(), 10)
}
