package planner

import (
	"fmt"
	"strings"
)

// firstList returns the first of the given list attributes that is present.
// PostgreSQL reports "Sort Key" and "Group Key"; the plural spellings are
// accepted as well.
func firstList(n *RawPlanNode, keys ...string) []string {
	for _, key := range keys {
		if _, ok := n.Get(key); ok {
			return n.Strings(key)
		}
	}
	return nil
}

var sortRules = map[string]explainRule{
	"Sort": func(n *RawPlanNode) string {
		return fmt.Sprintf("Sort the result set by %s.", strings.Join(firstList(n, "Sort Key", "Sort Keys"), ", "))
	},
	// The clauses are joined without a space so the sentence stays a single
	// ". "-delimited segment for the diff engine.
	"Incremental Sort": func(n *RawPlanNode) string {
		return fmt.Sprintf("Perform an Incremental Sort.Presorted Key: %s, Sort Key: %s.",
			n.String("Presorted Key", "None"), n.String("Sort Key", "None"))
	},
	"Group": func(n *RawPlanNode) string {
		if keys := firstList(n, "Group Key", "Group Keys"); len(keys) != 0 {
			return fmt.Sprintf("Group the result set by %s.", strings.Join(keys, ", "))
		}
		return "Group the result set"
	},
	"Unique": func(n *RawPlanNode) string {
		if keys := n.Strings("Unique Keys"); len(keys) != 0 {
			return fmt.Sprintf("Remove duplicate rows from the result set based on %s.", strings.Join(keys, ", "))
		}
		return "Remove duplicate rows from the result set"
	},
}
