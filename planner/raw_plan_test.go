package planner

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mit.edu/dsg/qep/common"
)

func mustRaw(t *testing.T, doc string) *RawPlanNode {
	t.Helper()
	var raw RawPlanNode
	require.NoError(t, json.Unmarshal([]byte(doc), &raw))
	return &raw
}

func loadFixture(t *testing.T, name string) *RawPlanNode {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	raw, err := ParseExplainDocument(data)
	require.NoError(t, err)
	return raw
}

func TestRawPlanNodeKeepsKeyOrder(t *testing.T) {
	raw := mustRaw(t, `{"Node Type": "Seq Scan", "Filter": "(a = 1)", "Plans": [], "Alias": "c", "Index Cond": "(b = 2)"}`)
	assert.Equal(t, []string{"Node Type", "Filter", "Alias", "Index Cond"}, raw.Keys())
	assert.Empty(t, raw.Children)
}

func TestRawPlanNodeAccessors(t *testing.T) {
	raw := mustRaw(t, `{"Node Type": "Gather", "Workers Planned": 2, "Total Cost": 1034.5, "Group Key": ["a", "b"], "Parallel Aware": true, "Alias": null}`)

	assert.Equal(t, "Gather", raw.NodeType())
	assert.Equal(t, "2", raw.String("Workers Planned", "x"))
	assert.Equal(t, "1034.5", raw.String("Total Cost", "x"))
	assert.Equal(t, "a, b", raw.String("Group Key", "x"))
	assert.Equal(t, "true", raw.String("Parallel Aware", "x"))
	assert.Equal(t, "x", raw.String("Alias", "x"), "null renders as the default")
	assert.Equal(t, "x", raw.String("Missing", "x"))

	assert.Equal(t, []string{"a", "b"}, raw.Strings("Group Key"))
	assert.Equal(t, []string{"Gather"}, raw.Strings("Node Type"))
	assert.Nil(t, raw.Strings("Missing"))

	cost, ok := raw.Number("Total Cost")
	assert.True(t, ok)
	assert.Equal(t, 1034.5, cost)
	_, ok = raw.Number("Node Type")
	assert.False(t, ok)
}

func TestRawPlanNodeRejectsBadChildren(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"children not a list", `{"Node Type": "Sort", "Plans": {"Node Type": "Seq Scan"}}`},
		{"child not an object", `{"Node Type": "Sort", "Plans": [42]}`},
		{"null child", `{"Node Type": "Sort", "Plans": [null]}`},
		{"node not an object", `["Sort"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw RawPlanNode
			assert.Error(t, json.Unmarshal([]byte(tt.doc), &raw))
		})
	}
}

func TestParseExplainDocument(t *testing.T) {
	raw := loadFixture(t, "customer_nation.json")
	assert.Equal(t, "Aggregate", raw.NodeType())
	require.Len(t, raw.Children, 1)
	assert.Equal(t, "Hash Join", raw.Children[0].NodeType())

	wrapped, err := ParseExplainDocument([]byte(`{"Plan": {"Node Type": "Result"}, "Planning Time": 0.1}`))
	require.NoError(t, err)
	assert.Equal(t, "Result", wrapped.NodeType())
}

func TestParseExplainDocumentErrors(t *testing.T) {
	docs := map[string]string{
		"empty":        ``,
		"empty array":  `[]`,
		"no plan":      `[{"Planning Time": 1}]`,
		"null plan":    `{"Plan": null}`,
		"scalar":       `"Invalid Query"`,
		"broken json":  `[{"Plan": {"Node Type": "Result"`,
		"bad children": `{"Plan": {"Node Type": "Result", "Plans": "none"}}`,
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			_, err := ParseExplainDocument([]byte(doc))
			require.Error(t, err)
			assert.True(t, common.IsCode(err, common.MalformedPlanInputError))
			qe, _ := common.AsError(err)
			assert.Equal(t, common.StageParse, qe.Stage)
		})
	}
}
