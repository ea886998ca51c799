// Package analysis turns role-scoped search results into narratives.
//
// The Relevance Filter is the single gate deciding which results are worth
// narrating; both the per-role combine/truncate path and the prompt
// construction consume it, so the two paths cannot disagree. The Analyzer
// produces one narrative per role; the MetaAnalyzer produces a single
// cross-role report over every role's results and narratives.
package analysis
