package planner

import "fmt"

var scanRules = map[string]explainRule{
	"Seq Scan": func(n *RawPlanNode) string {
		return fmt.Sprintf("Perform a Sequential Scan on %s using %s as the filter condition.",
			n.String("Relation Name", "the table"), n.String("Filter", "a filter condition"))
	},
	"Index Scan": func(n *RawPlanNode) string {
		return fmt.Sprintf("Perform an Index Scan on %s to find the relevant rows.", n.String("Index Name", "the index"))
	},
	"Index Only Scan": func(n *RawPlanNode) string {
		return fmt.Sprintf("Perform an Index-Only Scan on %s to find the relevant rows.", n.String("Index Name", "the index"))
	},
	"Bitmap Heap Scan": func(n *RawPlanNode) string {
		return fmt.Sprintf("Perform a Bitmap Heap Scan to efficiently access %s using a bitmap index.", n.String("Relation Name", "the table"))
	},
	"Bitmap Index Scan": func(n *RawPlanNode) string {
		return fmt.Sprintf("Scan %s using a bitmap to find the relevant rows.", n.String("Index Name", "the index"))
	},
	"Tid Scan": func(n *RawPlanNode) string {
		return fmt.Sprintf("Perform a TID (tuple ID) Scan on %s to retrieve specific rows.", n.String("Relation Name", "the table"))
	},
	"Subquery Scan": func(n *RawPlanNode) string {
		return fmt.Sprintf("Perform a Subquery Scan on %s.", n.String("Alias", "a subquery"))
	},
	"Function Scan": func(n *RawPlanNode) string {
		return fmt.Sprintf("Scan %s that returns a set of rows.", n.String("Function Name", "the function"))
	},
	"Values Scan": func(n *RawPlanNode) string {
		if values := joinList(n, "Values List"); values != "" {
			return fmt.Sprintf("Scan a set of constant values: %s.", values)
		}
		return "Scan a set of constant values"
	},
	"CTE Scan": func(n *RawPlanNode) string {
		if name := n.String("CTE Name", ""); name != "" {
			return fmt.Sprintf("Perform a CTE (Common Table Expression) Scan on %s.", name)
		}
		return "Perform a CTE (Common Table Expression) Scan"
	},
	"WorkTable Scan": func(n *RawPlanNode) string {
		return fmt.Sprintf("Perform a WorkTable Scan on %s.", n.String("Relation Name", "the work table"))
	},
	"Foreign Scan": func(n *RawPlanNode) string {
		return fmt.Sprintf("Scan %s.", n.String("Relation Name", "the foreign table"))
	},
	"Sample Scan": func(n *RawPlanNode) string {
		return fmt.Sprintf("Perform a Sample Scan on %s using %s and %s.",
			n.String("Relation Name", "the table"),
			n.String("Sample Method", "a sample method"),
			n.String("Sample Percentage", "a certain percentage"))
	},
}
