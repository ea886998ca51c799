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

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/scopegate/ai"
	"github.com/poiesic/scopegate/analysis"
	"github.com/poiesic/scopegate/core"
)

// Searcher executes a scoped vector search on behalf of a role.
// It is implemented by gateway.Gateway.
type Searcher interface {
	Search(ctx context.Context, role core.Role, collection core.Collection, vector []float32, limit uint64) ([]core.SearchResult, error)
}

// RoleReport holds everything produced for a single role during a run.
// Results and SearchErrs distinguish "nothing matched for this role" from
// "a search failed for this role": a collection whose search failed appears
// in SearchErrs and contributes no results, while its sibling collections
// are unaffected.
type RoleReport struct {
	Role        core.Role
	Results     []core.SearchResult
	SearchErrs  map[core.Collection]error
	Narrative   string
	AnalysisErr error
}

// Report is the full outcome of one pipeline run.
type Report struct {
	Query string
	Roles []RoleReport
	Meta  string
}

// Orchestrator runs the full search-and-analysis pipeline: embed the query
// once, fan out per-role per-collection searches on a worker pool, analyze
// each role's merged results concurrently, then synthesize a meta-analysis
// once every per-role analysis has settled.
type Orchestrator struct {
	searcher Searcher
	embedder ai.Embedder
	analyzer *analysis.Analyzer
	meta     *analysis.MetaAnalyzer
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithPoolSize sets the worker pool size for concurrent searches and
// analyses. Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}

		if o.pool != nil {
			o.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		o.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates a new pipeline orchestrator.
func NewOrchestrator(
	searcher Searcher,
	embedder ai.Embedder,
	analyzer *analysis.Analyzer,
	meta *analysis.MetaAnalyzer,
	opts ...Option,
) (*Orchestrator, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if analyzer == nil {
		return nil, ErrAnalyzerRequired
	}
	if meta == nil {
		return nil, ErrMetaAnalyzerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		searcher: searcher,
		embedder: embedder,
		analyzer: analyzer,
		meta:     meta,
		pool:     pool,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}

	return o, nil
}

// Run executes the pipeline for a query across the given roles.
//
// The query is embedded once and that vector is shared by every search.
// An embedding failure is fatal: nothing downstream can run without a
// vector. After that, failures stay scoped: a failed (role, collection)
// search is recorded in the role's SearchErrs and its siblings proceed;
// a failed per-role analysis is recorded in AnalysisErr and that role is
// excluded from the meta-analysis input. A meta-analysis failure returns
// the partially filled report alongside the error, so per-role results
// already gathered remain available to the caller.
func (o *Orchestrator) Run(ctx context.Context, query string, roles []core.Role, monitor Monitor) (*Report, error) {
	if len(roles) == 0 {
		return nil, ErrNoRoles
	}
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	vector, err := o.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	monitor.QueryEmbedded(len(vector))

	report := &Report{
		Query: query,
		Roles: make([]RoleReport, len(roles)),
	}

	// Stage one: fan out one search per (role, collection) pair. Each
	// role's task group joins independently so its results reach the
	// monitor without waiting on sibling roles.
	var searchWG sync.WaitGroup
	for i, role := range roles {
		report.Roles[i] = RoleReport{
			Role:       role,
			SearchErrs: make(map[core.Collection]error),
		}
		rr := &report.Roles[i]

		var (
			mu     sync.Mutex
			roleWG sync.WaitGroup
			lists  = make([][]core.SearchResult, 0, len(core.Collections))
		)

		for _, collection := range core.Collections {
			roleWG.Add(1)
			task := func() {
				defer roleWG.Done()
				results, searchErr := o.searcher.Search(ctx, rr.Role, collection, vector, analysis.MaxResults)
				mu.Lock()
				defer mu.Unlock()
				if searchErr != nil {
					o.logger.Error("search failed",
						"role", rr.Role, "collection", collection, "err", searchErr)
					rr.SearchErrs[collection] = searchErr
					return
				}
				lists = append(lists, results)
			}
			if submitErr := o.pool.Submit(task); submitErr != nil {
				roleWG.Done()
				mu.Lock()
				rr.SearchErrs[collection] = submitErr
				mu.Unlock()
			}
		}

		searchWG.Add(1)
		go func() {
			defer searchWG.Done()
			roleWG.Wait()
			rr.Results = core.MergeTopN(analysis.MaxResults, lists...)
			monitor.RoleSearched(rr.Role, rr.Results, rr.SearchErrs)
		}()
	}
	searchWG.Wait()

	// Stage two: per-role analyses run concurrently. A role whose searches
	// all failed still gets analyzed; its empty result set yields the
	// no-matches narrative rather than an error.
	var analysisWG sync.WaitGroup
	for i := range report.Roles {
		rr := &report.Roles[i]
		analysisWG.Add(1)
		task := func() {
			defer analysisWG.Done()
			narrative, analyzeErr := o.analyzer.Analyze(ctx, query, rr.Results, rr.Role)
			if analyzeErr != nil {
				o.logger.Error("analysis failed", "role", rr.Role, "err", analyzeErr)
				rr.AnalysisErr = analyzeErr
			} else {
				rr.Narrative = narrative
			}
			monitor.RoleAnalyzed(rr.Role, rr.Narrative, rr.AnalysisErr)
		}
		if submitErr := o.pool.Submit(task); submitErr != nil {
			rr.AnalysisErr = submitErr
			analysisWG.Done()
			monitor.RoleAnalyzed(rr.Role, "", submitErr)
		}
	}
	analysisWG.Wait()

	// Stage three: meta-analysis starts only after every per-role analysis
	// has settled.
	roleResults := make([]core.RoleResult, len(report.Roles))
	for i, rr := range report.Roles {
		roleResults[i] = core.RoleResult{
			Role:      rr.Role,
			Results:   rr.Results,
			Narrative: rr.Narrative,
			Err:       rr.AnalysisErr,
		}
	}

	metaNarrative, metaErr := o.meta.MetaAnalyze(ctx, query, roleResults, core.RoleDescriptions)
	monitor.MetaAnalyzed(metaNarrative, metaErr)
	if metaErr != nil {
		return report, fmt.Errorf("pipeline: %w", metaErr)
	}
	report.Meta = metaNarrative

	monitor.Finish(report)
	return report, nil
}

// Release releases the worker pool.
// The orchestrator should not be used after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}
