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


package pipeline

import "errors"

var (
	// ErrSearcherRequired is returned when a nil searcher is provided.
	ErrSearcherRequired = errors.New("searcher is required")

	// ErrEmbedderRequired is returned when a nil embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrAnalyzerRequired is returned when a nil analyzer is provided.
	ErrAnalyzerRequired = errors.New("analyzer is required")

	// ErrMetaAnalyzerRequired is returned when a nil meta-analyzer is provided.
	ErrMetaAnalyzerRequired = errors.New("meta-analyzer is required")

	// ErrNoRoles is returned when a run is requested with no roles.
	ErrNoRoles = errors.New("at least one role is required")
)
