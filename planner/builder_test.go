package planner

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mit.edu/dsg/qep/common"
)

func TestBuildFixture(t *testing.T) {
	root, err := Build(loadFixture(t, "customer_nation.json"))
	require.NoError(t, err)

	assert.Equal(t, "Aggregate", root.Description)
	require.NotNil(t, root.Cost)
	assert.Equal(t, 62.09, *root.Cost)
	assert.Equal(t, "Group Key: customer.c_address", root.Filters)
	assert.Equal(t, "Aggregate the rows by grouping them based on customer.c_address.", root.Explanation)
	assert.Nil(t, root.Right())

	join := root.Left()
	require.NotNil(t, join)
	assert.Equal(t, "Hash Join", join.Description)
	assert.Equal(t, "Hash Cond: (customer.c_nationkey = nation.n_nationkey)", join.Filters)
	assert.Equal(t, "Perform a Hash Join", join.Explanation)

	customer := join.Left()
	assert.Equal(t, "Seq Scan", customer.Description)
	assert.Equal(t, "", customer.Filters)
	assert.True(t, customer.IsLeaf())
	assert.Equal(t, "Perform a Sequential Scan on customer using a filter condition as the filter condition.", customer.Explanation)

	hash := join.Right()
	assert.Equal(t, "Hash", hash.Description)
	nation := hash.Left()
	assert.Equal(t, "Filter: (n_regionkey = 1)", nation.Filters)
	assert.Equal(t, "Perform a Sequential Scan on nation using (n_regionkey = 1) as the filter condition.", nation.Explanation)
}

func TestBuildLeaf(t *testing.T) {
	root, err := Build(mustRaw(t, `{"Node Type": "Seq Scan", "Relation Name": "customer"}`))
	require.NoError(t, err)
	assert.True(t, root.IsLeaf())
	assert.Nil(t, root.Left())
	assert.Nil(t, root.Right())
	assert.Nil(t, root.Cost)
	assert.Empty(t, root.Filters)
	assert.Empty(t, root.Children())
}

func TestBuildCapsChildrenAtTwo(t *testing.T) {
	raw := mustRaw(t, `{"Node Type": "Append", "Plans": [
		{"Node Type": "Seq Scan", "Relation Name": "a"},
		{"Node Type": "Seq Scan", "Relation Name": "b"},
		{"Node Type": "Seq Scan", "Relation Name": "c"},
		{"Node Type": "Seq Scan", "Relation Name": "d"}
	]}`)
	require.Len(t, raw.Children, 4)

	root, err := Build(raw)
	require.NoError(t, err)
	require.Len(t, root.Children(), 2)
	assert.Contains(t, root.Left().Explanation, " a ")
	assert.Contains(t, root.Right().Explanation, " b ")
}

func TestBuildFilterLastMatchWins(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected string
	}{
		{"single filter", `{"Node Type": "Seq Scan", "Filter": "(x > 1)"}`, "Filter: (x > 1)"},
		{"later key overwrites", `{"Node Type": "Index Scan", "Index Cond": "(id = 1)", "Filter": "(x > 1)"}`, "Filter: (x > 1)"},
		{"order decides", `{"Node Type": "Index Scan", "Filter": "(x > 1)", "Index Cond": "(id = 1)"}`, "Index Cond: (id = 1)"},
		{"list value", `{"Node Type": "Sort", "Sort Key": ["a", "b DESC"]}`, "Sort Key: a, b DESC"},
		{"numeric values skipped", `{"Node Type": "Sort", "Sort Key": ["a"], "Sort Space Used": 25}`, "Sort Key: a"},
		{"mixed list skipped", `{"Node Type": "Sort", "Sort Key": ["a", 1]}`, ""},
		{"no qualifying key", `{"Node Type": "Hash", "Relation Name": "t"}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Build(mustRaw(t, tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, root.Filters)
		})
	}
}

func TestBuildMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
	}{
		{"root without type", `{"Total Cost": 1}`, "Plan:"},
		{"type not a string", `{"Node Type": 7}`, "Plan:"},
		{"empty type", `{"Node Type": ""}`, "Plan:"},
		{"nested child", `{"Node Type": "Hash Join", "Plans": [{"Node Type": "Seq Scan"}, {"Plans": []}]}`, "Plan.Plans[1]:"},
		{"truncated child is still checked", `{"Node Type": "Append", "Plans": [{"Node Type": "Result"}, {"Node Type": "Result"}, {"Alias": "x"}]}`, "Plan.Plans[2]:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Build(mustRaw(t, tt.doc))
			require.Error(t, err)
			assert.Nil(t, root)
			qe, ok := common.AsError(err)
			require.True(t, ok)
			assert.Equal(t, common.MalformedPlanInputError, qe.Code)
			assert.Equal(t, common.StageBuild, qe.Stage)
			assert.Contains(t, qe.ErrString, tt.path)
		})
	}

	_, err := Build(nil)
	assert.True(t, common.IsCode(err, common.MalformedPlanInputError))
}

func TestBuildIsDeterministic(t *testing.T) {
	raw := loadFixture(t, "customer_nation.json")
	first, err := Build(raw)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := Build(raw)
		require.NoError(t, err)

		a, err := json.Marshal(first)
		require.NoError(t, err)
		b, err := json.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, string(a), string(b))

		if diff := cmp.Diff(Linearize(first), Linearize(again)); diff != "" {
			t.Fatalf("linearization changed between builds (-first +again):\n%s", diff)
		}
	}
}

func TestPlanNodeJSON(t *testing.T) {
	root, err := Build(mustRaw(t, `{"Node Type": "Limit", "Total Cost": 3.5, "Plans": [{"Node Type": "Seq Scan", "Relation Name": "t"}]}`))
	require.NoError(t, err)

	data, err := json.Marshal(root)
	require.NoError(t, err)
	expected := `{"description":"Limit","cost":3.5,"filters":"","left_child":` +
		`{"description":"Seq Scan","cost":null,"filters":"","left_child":null,"right_child":null,` +
		`"explanation":"Perform a Sequential Scan on t using a filter condition as the filter condition."},` +
		`"right_child":null,"explanation":"Limit the result set to a certain number of rows."}`
	assert.Equal(t, expected, string(data))

	var decoded PlanNode
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, root.Description, decoded.Description)
	assert.Equal(t, root.Left().Explanation, decoded.Left().Explanation)
	assert.Nil(t, decoded.Right())
}
