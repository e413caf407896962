package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"mit.edu/dsg/qep/compare"
	"mit.edu/dsg/qep/planner"
)

var (
	nodeColor    = color.New(color.FgCyan, color.Bold)
	costColor    = color.New(color.FgHiBlack)
	filterColor  = color.New(color.FgYellow)
	replaceColor = color.New(color.FgYellow)
	deleteColor  = color.New(color.FgRed)
	insertColor  = color.New(color.FgGreen)
	successColor = color.New(color.FgGreen, color.Bold)
)

// printTree writes the annotated plan as an indented tree, children below
// their parent.
func printTree(w io.Writer, root *planner.PlanNode) {
	printNode(w, root, 0)
}

func printNode(w io.Writer, n *planner.PlanNode, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)

	header := nodeColor.Sprint(n.Description)
	if n.Cost != nil {
		header += " " + costColor.Sprintf("(cost=%s)", strconv.FormatFloat(*n.Cost, 'f', -1, 64))
	}
	fmt.Fprintf(w, "%s-> %s\n", indent, header)
	fmt.Fprintf(w, "%s   %s\n", indent, n.Explanation)
	if n.Filters != "" {
		fmt.Fprintf(w, "%s   %s %s\n", indent, filterColor.Sprint("filter:"), n.Filters)
	}

	for _, c := range n.Children() {
		printNode(w, c, depth+1)
	}
}

func kindColor(k compare.ChangeKind) *color.Color {
	switch k {
	case compare.Delete:
		return deleteColor
	case compare.Insert:
		return insertColor
	default:
		return replaceColor
	}
}

// printChanges writes one line per change record.
func printChanges(w io.Writer, changes []compare.ChangeRecord) {
	if len(changes) == 0 {
		successColor.Fprintln(w, "The two plans are identical.")
		return
	}
	for _, c := range changes {
		kc := kindColor(c.Kind)
		fmt.Fprintf(w, "%s %s %s\n",
			costColor.Sprintf("#%d", c.Position),
			kc.Sprintf("%-7s", string(c.Kind)),
			c.Message)
	}
}
