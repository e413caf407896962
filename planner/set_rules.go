package planner

import "fmt"

var setRules = map[string]explainRule{
	"Append": func(*RawPlanNode) string {
		return "Append the results of all subplans into a single result set."
	},
	"SetOp": func(n *RawPlanNode) string {
		if op := n.String("Set Operation", ""); op != "" {
			return fmt.Sprintf("Perform a Set Operation (%s) on the input result sets.", op)
		}
		return "Perform an unknown Set Operation on the input result sets"
	},
	"Recursive Union": func(*RawPlanNode) string {
		return "Perform a Recursive Union operation to process recursive queries."
	},
	"BitmapAnd": func(*RawPlanNode) string {
		return "Perform a BitmapAnd operation on the given Bitmap Index Scan results."
	},
	"BitmapOr": func(*RawPlanNode) string {
		return "Perform a BitmapOr operation on the given Bitmap Index Scan results."
	},
}
