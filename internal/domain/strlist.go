package domain

import (
	"encoding/json"
	"strings"
)

// ParseStringList decodes a tag or sentence list sent either as a JSON array
// string or as repeated form values. Malformed input yields an empty list.
// Blank items are dropped and the rest trimmed.
func ParseStringList(values []string) []string {
	if len(values) == 0 {
		return []string{}
	}

	if len(values) == 1 {
		raw := strings.TrimSpace(values[0])
		if raw == "" {
			return []string{}
		}
		if strings.HasPrefix(raw, "[") {
			var items []string
			if err := json.Unmarshal([]byte(raw), &items); err != nil {
				return []string{}
			}
			return compactStrings(items)
		}
	}

	return compactStrings(values)
}

// EncodeStringList renders a list as a JSON array string.
func EncodeStringList(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func compactStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
