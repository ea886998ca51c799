// Package server exposes the gateway over HTTP. Routes mirror the demo's
// API surface: scoped search, per-role analysis, cross-role meta-analysis,
// embedding, document lookup, and collection administration.
//
// The caller's role arrives in the X-Role header and defaults to
// HEAD_OF_SUPPORT when absent. Invalid input maps to 400, a missing
// document to 404, and backend failures to 500.
package server
