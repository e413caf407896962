package planner

import (
	"encoding/json"
)

// maxChildren caps the fan-out of an annotated plan node. Operators with more
// inputs (Append over many subplans, for instance) keep only their first two.
const maxChildren = 2

const (
	leftChild = iota
	rightChild
)

// PlanNode is one node of an annotated query plan. It is built once, bottom-up,
// by a Builder and is immutable afterwards.
type PlanNode struct {
	Description string
	Cost        *float64
	Filters     string
	Explanation string
	children    [maxChildren]*PlanNode
}

// Left returns the first child, or nil for a leaf.
func (n *PlanNode) Left() *PlanNode {
	return n.children[leftChild]
}

// Right returns the second child, or nil.
func (n *PlanNode) Right() *PlanNode {
	return n.children[rightChild]
}

// IsLeaf reports whether the node has no children.
func (n *PlanNode) IsLeaf() bool {
	return n.Left() == nil && n.Right() == nil
}

// Children returns the non-nil children in order.
func (n *PlanNode) Children() []*PlanNode {
	out := make([]*PlanNode, 0, maxChildren)
	for _, c := range n.children {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (n *PlanNode) String() string {
	return n.Description
}

type planNodeJSON struct {
	Description string    `json:"description"`
	Cost        *float64  `json:"cost"`
	Filters     string    `json:"filters"`
	LeftChild   *PlanNode `json:"left_child"`
	RightChild  *PlanNode `json:"right_child"`
	Explanation string    `json:"explanation"`
}

// MarshalJSON writes the node with the fields description, cost, filters,
// left_child, right_child, explanation, in that order.
func (n *PlanNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(planNodeJSON{
		Description: n.Description,
		Cost:        n.Cost,
		Filters:     n.Filters,
		LeftChild:   n.Left(),
		RightChild:  n.Right(),
		Explanation: n.Explanation,
	})
}

// UnmarshalJSON reads a node previously written by MarshalJSON.
func (n *PlanNode) UnmarshalJSON(data []byte) error {
	var w planNodeJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	n.Description = w.Description
	n.Cost = w.Cost
	n.Filters = w.Filters
	n.Explanation = w.Explanation
	n.children = [maxChildren]*PlanNode{w.LeftChild, w.RightChild}
	return nil
}
