package planner

// LinearNode is the per-node summary produced by Linearize.
type LinearNode struct {
	Description string
	Filters     string
	Explanation string
}

// Linearize flattens the tree into one LinearNode per PlanNode: the left
// subtree, then the right subtree, then the node itself. Diff results are only
// meaningful between sequences produced with this order.
func Linearize(root *PlanNode) []LinearNode {
	var out []LinearNode
	return appendLinear(out, root)
}

func appendLinear(out []LinearNode, n *PlanNode) []LinearNode {
	if n == nil {
		return out
	}
	out = appendLinear(out, n.Left())
	out = appendLinear(out, n.Right())
	return append(out, LinearNode{
		Description: n.Description,
		Filters:     n.Filters,
		Explanation: n.Explanation,
	})
}
