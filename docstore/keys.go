package docstore

import (
	"fmt"

	"github.com/poiesic/scopegate/core"
)

// Key prefix for stored documents
const documentPrefix = "docrec"

// makeDocumentKey generates a key for a document by collection and ID.
func makeDocumentKey(collection core.Collection, id string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", documentPrefix, collection, id))
}

// makeCollectionPrefix generates the key prefix shared by every document
// in a collection.
func makeCollectionPrefix(collection core.Collection) []byte {
	return []byte(fmt.Sprintf("%s:%s:", documentPrefix, collection))
}

// idField returns the identifier field name used by a collection's source
// documents.
func idField(collection core.Collection) string {
	if collection == core.CollectionTickets {
		return "ticketId"
	}
	return "contractId"
}

// DocumentID extracts a document's identifier for its collection.
// Returns false if the field is absent, empty, or not a string.
func DocumentID(collection core.Collection, doc map[string]any) (string, bool) {
	raw, ok := doc[idField(collection)]
	if !ok {
		return "", false
	}
	id, ok := raw.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
