package models

import "encoding/json"

// MarshalList encodes a string slice as a JSON array for a json column.
// Nil and empty slices both encode as "[]".
func MarshalList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// UnmarshalList decodes a JSON array column back into a string slice.
// Empty or invalid values decode as nil.
func UnmarshalList(value string) []string {
	if value == "" || value == "[]" {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return nil
	}
	return items
}
