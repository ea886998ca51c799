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


package analysis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/scopegate/ai"
	"github.com/poiesic/scopegate/core"
)

// Analyzer turns one role's filtered result set into a narrative answer.
type Analyzer struct {
	completer    ai.Completer
	capabilities core.CapabilityTable
	logger       *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
	}
}

// NewAnalyzer creates a per-role analyzer.
func NewAnalyzer(completer ai.Completer, capabilities core.CapabilityTable, opts ...Option) (*Analyzer, error) {
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	if capabilities == nil {
		return nil, ErrCapabilitiesRequired
	}

	a := &Analyzer{
		completer:    completer,
		capabilities: capabilities,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Analyze produces a yes/no narrative for the role's results.
//
// A revoked role short-circuits to a fixed literal without invoking the
// completion service, as does a result set where nothing passes the relevance
// filter. Otherwise the surviving top results are formatted into a structured
// prompt and completed with deterministic decoding. A completion failure is
// returned as an error; no narrative is silently substituted.
func (a *Analyzer) Analyze(ctx context.Context, query string, results []core.SearchResult, role core.Role) (string, error) {
	capability, ok := a.capabilities[role]
	if !ok {
		return "", core.ErrUnknownRole
	}
	if !capability.HasAccess {
		return NoAccessNarrative, nil
	}

	relevant := FilterRank(query, results)
	if len(relevant) == 0 {
		return NoMatchesNarrative, nil
	}

	narrative, err := a.completer.Complete(ctx, roleSystemPrompt, buildRolePrompt(query, relevant), &ai.CompletionOptions{
		Temperature: 0,
		TopK:        5,
		TopP:        0.1,
		MaxTokens:   2048, // itemized document lists must not be truncated
	})
	if err != nil {
		a.logger.Error("per-role analysis failed", "role", role, "err", err)
		return "", fmt.Errorf("analysis for role %s: %w", role, err)
	}
	return narrative, nil
}
