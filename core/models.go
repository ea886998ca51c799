package core

import (
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for seeded points, generated by content-based
// hashing so that reseeding identical data is idempotent.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b
// hashing. Identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Collection is one backend-resident partition of documents with its own
// native record schema.
type Collection string

const (
	CollectionContracts Collection = "contracts"
	CollectionTickets   Collection = "tickets"
)

// Collections lists the closed set of valid collections.
var Collections = []Collection{CollectionContracts, CollectionTickets}

// ParseCollection validates a collection name received from a caller.
func ParseCollection(s string) (Collection, error) {
	for _, c := range Collections {
		if Collection(s) == c {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCollection, s)
}

// SearchResult is the canonical cross-collection result shape. Name, Summary
// and Tenant are always populated, degrading to documented fallbacks when the
// native payload lacks the source field. Details preserves the raw payload
// untouched for detail views.
type SearchResult struct {
	ID         string
	Score      float32
	Collection Collection
	Name       string
	Summary    string
	Tenant     string
	Permission string
	Details    map[string]any
}

// RoleResult is one role's merged, truncated result set plus the narrative
// produced for it. Narrative starts empty and is filled exactly once by the
// per-role analyzer; Err records an analysis failure for that role.
type RoleResult struct {
	Role      Role
	Results   []SearchResult
	Narrative string
	Err       error
}

// MergeTopN combines result lists from multiple collections, sorts by
// descending score and truncates to n entries. The inputs are not modified.
func MergeTopN(n int, lists ...[]SearchResult) []SearchResult {
	var merged []SearchResult
	for _, list := range lists {
		merged = append(merged, list...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})
	if n >= 0 && len(merged) > n {
		merged = merged[:n]
	}
	return merged
}
