package planner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"mit.edu/dsg/qep/common"
)

const (
	nodeTypeKey  = "Node Type"
	totalCostKey = "Total Cost"
	childrenKey  = "Plans"
)

// RawPlanNode is one operator record of a PostgreSQL EXPLAIN (FORMAT JSON)
// document.
//
// Attribute keys are kept in document order. Values keep their JSON shape:
// string, json.Number, bool, nil, []any or map[string]any. Numbers stay
// json.Number so they render exactly as the planner printed them.
type RawPlanNode struct {
	keys     []string
	attrs    map[string]any
	Children []*RawPlanNode
}

// Keys returns the attribute keys of the node in document order, excluding "Plans".
func (n *RawPlanNode) Keys() []string {
	return n.keys
}

// Get returns the raw value of an attribute.
func (n *RawPlanNode) Get(key string) (any, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// NodeType returns the operator-type tag, or "" when it is missing or not a string.
func (n *RawPlanNode) NodeType() string {
	s, _ := n.attrs[nodeTypeKey].(string)
	return s
}

// String returns a textual attribute, or def when it is absent or null.
// Non-string values are rendered with renderValue.
func (n *RawPlanNode) String(key, def string) string {
	v, ok := n.attrs[key]
	if !ok || v == nil {
		return def
	}
	return renderValue(v)
}

// Strings returns a list attribute. A scalar is treated as a one-element list
// and an absent attribute as an empty one.
func (n *RawPlanNode) Strings(key string) []string {
	v, ok := n.attrs[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			out = append(out, renderValue(e))
		}
		return out
	default:
		return []string{renderValue(t)}
	}
}

// Number returns a numeric attribute as float64.
func (n *RawPlanNode) Number(key string) (float64, bool) {
	num, ok := n.attrs[key].(json.Number)
	if !ok {
		return 0, false
	}
	f, err := num.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

func renderValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, renderValue(e))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}

// UnmarshalJSON decodes a node while preserving attribute order. The
// children under "Plans" are decoded recursively.
func (n *RawPlanNode) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("plan node must be an object, got %v", tok)
	}

	n.keys = n.keys[:0]
	n.attrs = make(map[string]any)
	n.Children = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)

		if key == childrenKey {
			var children []*RawPlanNode
			if err := dec.Decode(&children); err != nil {
				return fmt.Errorf("%q: %w", childrenKey, err)
			}
			for i, child := range children {
				if child == nil {
					return fmt.Errorf("%q[%d] is null", childrenKey, i)
				}
			}
			n.Children = children
			continue
		}

		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("%q: %w", key, err)
		}
		if _, dup := n.attrs[key]; !dup {
			n.keys = append(n.keys, key)
		}
		n.attrs[key] = v
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

type explainWrapper struct {
	Plan *RawPlanNode `json:"Plan"`
}

// ParseExplainDocument decodes the output of EXPLAIN (FORMAT JSON). It accepts
// the array PostgreSQL returns (the first entry is used) as well as a bare
// {"Plan": ...} wrapper, and returns the root operator record.
func ParseExplainDocument(doc []byte) (*RawPlanNode, error) {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 {
		return nil, common.NewError(common.MalformedPlanInputError, common.StageParse, "empty explain document")
	}

	var wrapper explainWrapper
	switch trimmed[0] {
	case '[':
		var wrappers []explainWrapper
		if err := json.Unmarshal(trimmed, &wrappers); err != nil {
			return nil, common.WrapError(common.MalformedPlanInputError, common.StageParse, err, "invalid explain document")
		}
		if len(wrappers) == 0 {
			return nil, common.NewError(common.MalformedPlanInputError, common.StageParse, "explain document holds no plan")
		}
		wrapper = wrappers[0]
	case '{':
		if err := json.Unmarshal(trimmed, &wrapper); err != nil {
			return nil, common.WrapError(common.MalformedPlanInputError, common.StageParse, err, "invalid explain document")
		}
	default:
		return nil, common.NewError(common.MalformedPlanInputError, common.StageParse, "explain document must be an array or an object")
	}

	if wrapper.Plan == nil {
		return nil, common.NewError(common.MalformedPlanInputError, common.StageParse, "explain document has no %q field", "Plan")
	}
	return wrapper.Plan, nil
}
