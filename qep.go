package qep

import (
	"context"
	"encoding/json"
	"fmt"

	"mit.edu/dsg/qep/common"
	"mit.edu/dsg/qep/compare"
	"mit.edu/dsg/qep/planner"
	"mit.edu/dsg/qep/source"
)

// QEP is the top-level container wiring a plan source to the explain and
// compare pipelines. It holds no per-request state.
type QEP struct {
	Source  source.PlanSource
	Builder *planner.Builder
}

// New returns a QEP using src for queries and the default explainer. src may
// be nil when only the *Document methods are used.
func New(src source.PlanSource) *QEP {
	return &QEP{
		Source:  src,
		Builder: planner.NewBuilder(planner.DefaultExplainer()),
	}
}

// Comparison is the result of comparing two plans. It serializes as the
// three-element array [left, right, changes].
type Comparison struct {
	Left    *planner.PlanNode
	Right   *planner.PlanNode
	Changes []compare.ChangeRecord
}

func (c *Comparison) MarshalJSON() ([]byte, error) {
	changes := c.Changes
	if changes == nil {
		changes = []compare.ChangeRecord{}
	}
	return json.Marshal([]any{c.Left, c.Right, changes})
}

// Single explains one query.
func (q *QEP) Single(ctx context.Context, query string) (*planner.PlanNode, error) {
	doc, err := q.explain(ctx, query)
	if err != nil {
		return nil, err
	}
	return q.SingleDocument(doc)
}

// SingleDocument annotates an EXPLAIN (FORMAT JSON) document.
func (q *QEP) SingleDocument(doc []byte) (*planner.PlanNode, error) {
	raw, err := planner.ParseExplainDocument(doc)
	if err != nil {
		return nil, err
	}
	return q.Builder.Build(raw)
}

// Compare explains two queries and reports how the second plan differs from the first.
func (q *QEP) Compare(ctx context.Context, query1, query2 string) (*Comparison, error) {
	doc1, err := q.explain(ctx, query1)
	if err != nil {
		return nil, fmt.Errorf("first query: %w", err)
	}
	doc2, err := q.explain(ctx, query2)
	if err != nil {
		return nil, fmt.Errorf("second query: %w", err)
	}
	return q.CompareDocuments(doc1, doc2)
}

// CompareDocuments compares two EXPLAIN (FORMAT JSON) documents.
func (q *QEP) CompareDocuments(doc1, doc2 []byte) (*Comparison, error) {
	left, err := q.SingleDocument(doc1)
	if err != nil {
		return nil, fmt.Errorf("first plan: %w", err)
	}
	right, err := q.SingleDocument(doc2)
	if err != nil {
		return nil, fmt.Errorf("second plan: %w", err)
	}

	changes, err := compare.Diff(planner.Linearize(left), planner.Linearize(right))
	if err != nil {
		return nil, err
	}
	return &Comparison{Left: left, Right: right, Changes: changes}, nil
}

func (q *QEP) explain(ctx context.Context, query string) ([]byte, error) {
	if q.Source == nil {
		return nil, common.NewError(common.PlanSourceError, common.StagePlanSource, "no plan source configured")
	}
	return q.Source.Explain(ctx, query)
}
