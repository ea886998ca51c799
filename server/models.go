package server

import "github.com/poiesic/scopegate/core"

// searchResultPayload is the wire form of a normalized search result.
// Field names match the payload schema the UI and seed data already use.
type searchResultPayload struct {
	ID         string         `json:"id"`
	Score      float32        `json:"score"`
	Collection string         `json:"collection,omitempty"`
	Name       string         `json:"name"`
	Summary    string         `json:"summary"`
	Tenant     string         `json:"tenant_id"`
	Permission string         `json:"permission_level,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
}

func toPayload(result core.SearchResult) searchResultPayload {
	return searchResultPayload{
		ID:         result.ID,
		Score:      result.Score,
		Collection: string(result.Collection),
		Name:       result.Name,
		Summary:    result.Summary,
		Tenant:     result.Tenant,
		Permission: result.Permission,
		Details:    result.Details,
	}
}

func toPayloads(results []core.SearchResult) []searchResultPayload {
	payloads := make([]searchResultPayload, len(results))
	for i, result := range results {
		payloads[i] = toPayload(result)
	}
	return payloads
}

func fromPayload(payload searchResultPayload) core.SearchResult {
	return core.SearchResult{
		ID:         payload.ID,
		Score:      payload.Score,
		Collection: core.Collection(payload.Collection),
		Name:       payload.Name,
		Summary:    payload.Summary,
		Tenant:     payload.Tenant,
		Permission: payload.Permission,
		Details:    payload.Details,
	}
}

func fromPayloads(payloads []searchResultPayload) []core.SearchResult {
	results := make([]core.SearchResult, len(payloads))
	for i, payload := range payloads {
		results[i] = fromPayload(payload)
	}
	return results
}

// rolePayload carries one role's results and narrative into meta-analysis.
type rolePayload struct {
	Role     string                `json:"role"`
	Results  []searchResultPayload `json:"results"`
	AIAnswer string                `json:"aiAnswer"`
}

type queryRequest struct {
	Query string   `json:"query"`
	Roles []string `json:"roles"`
}

// queryRolePayload is one role's slice of a full pipeline run. SearchErrors
// keeps "search failed for this collection" distinguishable from "nothing
// matched".
type queryRolePayload struct {
	Role         string                `json:"role"`
	Results      []searchResultPayload `json:"results"`
	AIAnswer     string                `json:"aiAnswer,omitempty"`
	Error        string                `json:"error,omitempty"`
	SearchErrors map[string]string     `json:"searchErrors,omitempty"`
}

type searchRequest struct {
	Vector     []float32 `json:"vector"`
	Collection string    `json:"collection"`
	Limit      uint64    `json:"limit"`
}

type analyzeRequest struct {
	Query   string                `json:"query"`
	Results []searchResultPayload `json:"results"`
	Role    string                `json:"role"`
}

type metaAnalyzeRequest struct {
	Query       string        `json:"query"`
	RoleResults []rolePayload `json:"roleResults"`
}

type embedRequest struct {
	Text string `json:"text"`
}

type documentRequest struct {
	ID         string `json:"id"`
	Collection string `json:"collection"`
}

type createCollectionRequest struct {
	Name string `json:"name"`
	Size uint64 `json:"size"`
}
