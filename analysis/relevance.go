package analysis

import (
	"sort"
	"strings"

	"github.com/poiesic/scopegate/core"
)

// ScoreThreshold admits a result on score alone, with no query-term overlap.
const ScoreThreshold = 0.7

// MaxResults caps how many filtered results reach the narrative prompt.
const MaxResults = 5

// Relevant reports whether a result is worth sending to the narrative
// analyzer for the given query. The query is tokenized on whitespace,
// case-insensitively; a result passes if any token is a substring of its
// tenant, summary or name, or if its score clears the threshold. This is a
// heuristic gate, not a ranking.
func Relevant(query string, result core.SearchResult) bool {
	tenant := strings.ToLower(result.Tenant)
	summary := strings.ToLower(result.Summary)
	name := strings.ToLower(result.Name)

	for _, term := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(tenant, term) || strings.Contains(summary, term) || strings.Contains(name, term) {
			return true
		}
	}
	return result.Score > ScoreThreshold
}

// FilterRank applies the relevance gate, re-sorts by descending score and
// caps the output at MaxResults. The input is not modified.
func FilterRank(query string, results []core.SearchResult) []core.SearchResult {
	filtered := make([]core.SearchResult, 0, len(results))
	for _, result := range results {
		if Relevant(query, result) {
			filtered = append(filtered, result)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Score > filtered[j].Score
	})
	if len(filtered) > MaxResults {
		filtered = filtered[:MaxResults]
	}
	return filtered
}
