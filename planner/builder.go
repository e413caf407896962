package planner

import (
	"fmt"

	"mit.edu/dsg/qep/common"
)

// Builder turns raw operator records into annotated PlanNode trees.
type Builder struct {
	explainer *Explainer
}

func NewBuilder(explainer *Explainer) *Builder {
	if explainer == nil {
		explainer = DefaultExplainer()
	}
	return &Builder{explainer: explainer}
}

// Explainer returns the explainer used for node explanations.
func (b *Builder) Explainer() *Explainer {
	return b.explainer
}

// Build annotates the raw plan rooted at raw. Children are built before their
// parent, in document order, and only the first two are kept. A node without an
// operator-type tag fails the whole build with a MalformedPlanInputError that
// names the node's path.
func (b *Builder) Build(raw *RawPlanNode) (*PlanNode, error) {
	return b.build(raw, "Plan")
}

func (b *Builder) build(raw *RawPlanNode, path string) (*PlanNode, error) {
	if raw == nil {
		return nil, common.NewError(common.MalformedPlanInputError, common.StageBuild, "%s: plan node is missing", path)
	}

	var children [maxChildren]*PlanNode
	for i, rawChild := range raw.Children {
		child, err := b.build(rawChild, fmt.Sprintf("%s.%s[%d]", path, childrenKey, i))
		if err != nil {
			return nil, err
		}
		if i < maxChildren {
			children[i] = child
		}
	}

	nodeType := raw.NodeType()
	if nodeType == "" {
		return nil, common.NewError(common.MalformedPlanInputError, common.StageBuild, "%s: missing %q", path, nodeTypeKey)
	}

	node := &PlanNode{
		Description: nodeType,
		Filters:     extractFilters(raw),
		Explanation: b.explainer.Explain(raw),
		children:    children,
	}
	if cost, ok := raw.Number(totalCostKey); ok {
		node.Cost = &cost
	}
	return node, nil
}

// Build annotates raw with the default explainer.
func Build(raw *RawPlanNode) (*PlanNode, error) {
	return NewBuilder(nil).Build(raw)
}
