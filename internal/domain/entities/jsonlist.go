package entities

import "encoding/json"

// EncodeStringList serializes a list for storage in a text column.
// A nil or empty list is stored as "[]".
func EncodeStringList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// DecodeStringList deserializes a text column back into a list.
// Empty or malformed stored values decode to an empty list rather
// than failing the read.
func DecodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}
	if items == nil {
		return []string{}
	}
	return items
}
