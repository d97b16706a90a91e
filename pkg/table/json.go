package table

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
)

// ReadJSON reads a JSON array of flat string records into a table.
// The column set is the union of keys across all records, in first-seen
// order; records missing a key leave that column empty.
//
// Example input:
//
//	[{"from": "a", "to": "x"}, {"from": "b", "to": "y"}]
func ReadJSON(r io.Reader) (*Table, error) {
	var records []map[string]string
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("decode: no records")
	}

	var cols []string
	seen := make(map[string]bool)
	for _, rec := range records {
		// Key order within a record is not observable from a map, so keys
		// are sorted per record; ordering across records stays first-seen.
		for _, k := range slices.Sorted(maps.Keys(rec)) {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}

	t, err := New(cols...)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		t.Append(Row(rec))
	}
	return t, nil
}

// ReadJSONFile reads a JSON record file into a table.
func ReadJSONFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
