package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanNodeKeepsFirstTwoChildren(t *testing.T) {
	root, err := Build(mustRaw(t, `{"Node Type": "Append", "Plans": [
		{"Node Type": "Seq Scan", "Relation Name": "a"},
		{"Node Type": "Seq Scan", "Relation Name": "b"},
		{"Node Type": "Seq Scan", "Relation Name": "c"}
	]}`))
	require.NoError(t, err)

	require.NotNil(t, root.Left())
	require.NotNil(t, root.Right())
	assert.Contains(t, root.Left().Explanation, " a ")
	assert.Contains(t, root.Right().Explanation, " b ")
	assert.Len(t, root.Children(), maxChildren)
	assert.False(t, root.IsLeaf())
	assert.Equal(t, "Append", root.String())
}

func TestPlanNodeSingleChild(t *testing.T) {
	child := &PlanNode{Description: "Seq Scan"}
	n := &PlanNode{Description: "Hash", children: [maxChildren]*PlanNode{child}}

	assert.Same(t, child, n.Left())
	assert.Nil(t, n.Right())
	assert.Equal(t, []*PlanNode{child}, n.Children())
	assert.False(t, n.IsLeaf())
	assert.True(t, child.IsLeaf())
	assert.Empty(t, child.Children())
}

func TestPlanNodeJSONFieldOrder(t *testing.T) {
	cost := 1.25
	n := &PlanNode{Description: "Seq Scan", Cost: &cost, Filters: "Filter: (x > 1)", Explanation: "Scan."}

	data, err := json.Marshal(n)
	require.NoError(t, err)
	assert.Equal(t, `{"description":"Seq Scan","cost":1.25,"filters":"Filter: (x > 1)",`+
		`"left_child":null,"right_child":null,"explanation":"Scan."}`, string(data))

	var decoded PlanNode
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *n, decoded)
}
