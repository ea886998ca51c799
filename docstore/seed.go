package docstore

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile reads a JSON array of documents from disk. Seed data ships as
// one file per collection (contracts.txt, tickets.txt), each a JSON array
// of objects.
func LoadFile(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return docs, nil
}
