package repository

import "encoding/json"

// encodeList marshals a string slice for storage in a JSON column. A nil
// slice is stored as an empty array so reads never produce SQL NULL handling
// surprises downstream.
func encodeList(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	return json.Marshal(items)
}

// decodeList unmarshals a JSON column into a string slice. NULL and malformed
// values decode to an empty slice; listings should not fail because one row
// carries bad JSON.
func decodeList(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []string{}
	}
	return items
}
