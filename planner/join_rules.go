package planner

import "fmt"

// joinRule explains a join strategy, mentioning the join filter when the
// planner reported one.
func joinRule(strategy string) explainRule {
	return func(n *RawPlanNode) string {
		if cond := n.String("Join Filter", ""); cond != "" {
			return fmt.Sprintf("Perform a %s using %s as the join condition.", strategy, cond)
		}
		return "Perform a " + strategy
	}
}

var joinRules = map[string]explainRule{
	"Hash Join":   joinRule("Hash Join"),
	"Merge Join":  joinRule("Merge Join"),
	"Nested Loop": joinRule("Nested Loop Join"),
	"Hash": func(*RawPlanNode) string {
		return "Build a hash table from the input data for use in a Hash Join."
	},
}
