package planner

// withWorkers appends the planned worker count when the planner reported a
// positive one. There is no space after the first period, which keeps the
// explanation a single diff segment.
func withWorkers(sentence string) explainRule {
	return func(n *RawPlanNode) string {
		if workers, ok := n.Number("Workers Planned"); ok && workers > 0 {
			return sentence + "Planned on " + n.String("Workers Planned", "") + " worker(s)."
		}
		return sentence
	}
}

var parallelRules = map[string]explainRule{
	"Gather":       withWorkers("Gather the results of worker nodes into a single result set."),
	"Gather Merge": withWorkers("Gather the results of worker nodes and merge them into a single result set."),
	"Parallel Append": func(*RawPlanNode) string {
		return "Append the results of all subplans in parallel into a single result set."
	},
}
