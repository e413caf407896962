package planner

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tidwall/btree"
)

// explainRule renders the sentence for one operator family. Rules only read
// the node they are given.
type explainRule func(n *RawPlanNode) string

// Explainer maps operator-type tags to explanation rules. The table is filled
// once by NewExplainer and only read afterwards, so an Explainer may be shared
// between goroutines.
type Explainer struct {
	rules btree.Map[string, explainRule]
}

// ruleFamilies lists the dispatch entries of every supported operator family.
var ruleFamilies = []map[string]explainRule{
	scanRules,
	joinRules,
	aggregationRules,
	sortRules,
	setRules,
	parallelRules,
	miscRules,
}

func NewExplainer() *Explainer {
	e := &Explainer{}
	for _, family := range ruleFamilies {
		for tag, rule := range family {
			_, replaced := e.rules.Set(tag, rule)
			if replaced {
				panic(fmt.Sprintf("operator %q registered twice", tag))
			}
		}
	}
	return e
}

var (
	defaultExplainer     *Explainer
	defaultExplainerOnce sync.Once
)

// DefaultExplainer returns the process-wide explainer holding every built-in rule.
func DefaultExplainer() *Explainer {
	defaultExplainerOnce.Do(func() {
		defaultExplainer = NewExplainer()
	})
	return defaultExplainer
}

// Explain returns a one-sentence description of what the node does. Unknown
// operator types fall back to "Perform <type> operation".
func (e *Explainer) Explain(n *RawPlanNode) string {
	nodeType := n.NodeType()
	if rule, ok := e.rules.Get(nodeType); ok {
		return rule(n)
	}
	return fmt.Sprintf("Perform %s operation", nodeType)
}

// Supports reports whether tag has a dedicated rule.
func (e *Explainer) Supports(tag string) bool {
	_, ok := e.rules.Get(tag)
	return ok
}

// Operators returns the supported operator tags in sorted order.
func (e *Explainer) Operators() []string {
	tags := make([]string, 0, e.rules.Len())
	e.rules.Scan(func(tag string, _ explainRule) bool {
		tags = append(tags, tag)
		return true
	})
	return tags
}

// joinList renders a list attribute comma-separated. Absent lists render empty.
func joinList(n *RawPlanNode, key string) string {
	return strings.Join(n.Strings(key), ", ")
}
