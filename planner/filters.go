package planner

import "strings"

// filterKeyMarkers are the substrings that make an attribute name count as a
// filter-like field.
var filterKeyMarkers = []string{"Filter", "Cond", "Sort", "Key"}

func isFilterKey(key string) bool {
	for _, marker := range filterKeyMarkers {
		if strings.Contains(key, marker) {
			return true
		}
	}
	return false
}

// textValue returns the value of a textual attribute: a string, or a list made
// only of strings joined with ", ".
func textValue(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			s, ok := e.(string)
			if !ok {
				return "", false
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ", "), true
	}
	return "", false
}

// extractFilters summarizes the filter-like attribute of a raw node as
// "<key>: <value>". Keys are examined in document order and the last
// qualifying one wins; earlier matches are discarded, not accumulated.
func extractFilters(raw *RawPlanNode) string {
	filters := ""
	for _, key := range raw.Keys() {
		if !isFilterKey(key) {
			continue
		}
		v, _ := raw.Get(key)
		if text, ok := textValue(v); ok {
			filters = key + ": " + text
		}
	}
	return filters
}
