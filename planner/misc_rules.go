package planner

import "fmt"

var miscRules = map[string]explainRule{
	"Limit": func(n *RawPlanNode) string {
		return fmt.Sprintf("Limit the result set to %s rows.", n.String("Limit Count", "a certain number of"))
	},
	"LockRows": func(n *RawPlanNode) string {
		return fmt.Sprintf("Lock the rows in the result set using %s.", n.String("Lock Mode", "a specific lock mode"))
	},
	"Materialize": func(*RawPlanNode) string {
		return "Materialize the result set into a temporary storage."
	},
	"Result": func(n *RawPlanNode) string {
		if cond := n.String("Filter", ""); cond != "" {
			return fmt.Sprintf("Perform a Result operation using %s as the filter condition.", cond)
		}
		return "Perform a Result operation using a filter condition"
	},
	"Project Set": func(n *RawPlanNode) string {
		return fmt.Sprintf("Perform a ProjectSet operation on the result of %s returning a set of rows.", n.String("Function Name", "the function"))
	},
	"Modify Table": func(n *RawPlanNode) string {
		return fmt.Sprintf("Perform %s on %s.", n.String("Operation", "an operation"), n.String("Relation Name", "the table"))
	},
	"Custom": func(n *RawPlanNode) string {
		return fmt.Sprintf("Perform %s, which is not natively supported by PostgreSQL.", n.String("Custom Name", "a custom operation"))
	},
}
