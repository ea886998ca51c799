package gateway

import "github.com/poiesic/scopegate/core"

// Normalization masks collection-specific field names behind the canonical
// result shape. Missing fields degrade to documented fallbacks, never to an
// error: a raw record with no recognizable fields still yields a populated
// result.

// Fallbacks used when a native payload lacks the source field.
const (
	UnknownContract   = "Unknown Contract"
	UnknownTicket     = "Unknown Ticket"
	UnknownPermission = "Unknown"
)

// Normalize maps a raw backend payload into the canonical result shape for
// the given collection. The raw payload is preserved untouched in Details.
func Normalize(collection core.Collection, id string, score float32, payload map[string]any) core.SearchResult {
	result := core.SearchResult{
		ID:         id,
		Score:      score,
		Collection: collection,
		Details:    payload,
	}
	if collection == core.CollectionContracts {
		result.Name = stringField(payload, "contractId", UnknownContract)
		result.Summary = stringField(payload, "summary", "")
		result.Tenant = stringField(payload, "clientName", "")
		result.Permission = stringField(payload, "currentStatus", UnknownPermission)
	} else {
		result.Name = stringField(payload, "ticketId", UnknownTicket)
		result.Summary = stringField(payload, "description", "")
		result.Tenant = stringField(payload, "company", "")
		result.Permission = stringField(payload, "status", UnknownPermission)
	}
	return result
}

func stringField(payload map[string]any, key, fallback string) string {
	if payload == nil {
		return fallback
	}
	if value, ok := payload[key].(string); ok && value != "" {
		return value
	}
	return fallback
}
