package planner

import "fmt"

var aggregationRules = map[string]explainRule{
	"Aggregate": func(n *RawPlanNode) string {
		keys := joinList(n, "Group Key")
		if cond := n.String("Filter", ""); cond != "" {
			return fmt.Sprintf("Aggregate the rows by grouping them based on %s, with filter condition: %s", keys, cond)
		}
		return fmt.Sprintf("Aggregate the rows by grouping them based on %s.", keys)
	},
	"WindowAgg": func(n *RawPlanNode) string {
		return fmt.Sprintf("Perform a Window Aggregate operation using %s.", n.String("Window Function", "a window function"))
	},
}
