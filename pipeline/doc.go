// Package pipeline orchestrates the full query flow: embed once, search
// per role and per collection concurrently, analyze each role's merged
// results, then synthesize a cross-role meta-analysis.
//
// Failures stay scoped to the narrowest unit that can absorb them. Only
// an embedding failure is fatal to a run; everything after it degrades
// per role or per collection and the report labels what failed.
package pipeline
