package qep

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mit.edu/dsg/qep/common"
)

// mapSource serves canned EXPLAIN documents keyed by query text.
type mapSource struct {
	docs map[string]string
	err  error
}

func (s *mapSource) Explain(_ context.Context, query string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	doc, ok := s.docs[query]
	if !ok {
		return nil, common.NewError(common.InvalidQueryError, common.StagePlanSource, "unknown query %q", query)
	}
	return []byte(doc), nil
}

func (s *mapSource) Close() {}

const (
	seqScanDoc   = `[{"Plan": {"Node Type": "Seq Scan", "Relation Name": "customer", "Total Cost": 42.5}}]`
	indexScanDoc = `[{"Plan": {"Node Type": "Index Scan", "Relation Name": "customer", "Index Name": "customer_pkey", "Total Cost": 8.3}}]`
)

func newTestQEP() *QEP {
	return New(&mapSource{docs: map[string]string{
		"select * from customer":            seqScanDoc,
		"select * from customer where id=1": indexScanDoc,
		"broken":                            `[{"Plan": {"Total Cost": 1}}]`,
	}})
}

func TestSingle(t *testing.T) {
	root, err := newTestQEP().Single(context.Background(), "select * from customer")
	require.NoError(t, err)
	assert.Equal(t, "Seq Scan", root.Description)
	assert.Equal(t, 42.5, *root.Cost)
}

func TestSingleErrorsCarryStage(t *testing.T) {
	q := newTestQEP()

	_, err := q.Single(context.Background(), "broken")
	qe, ok := common.AsError(err)
	require.True(t, ok)
	assert.Equal(t, common.StageBuild, qe.Stage)

	_, err = q.Single(context.Background(), "nope")
	assert.True(t, common.IsCode(err, common.InvalidQueryError))

	_, err = New(nil).Single(context.Background(), "select 1")
	assert.True(t, common.IsCode(err, common.PlanSourceError))
}

func TestCompare(t *testing.T) {
	cmp, err := newTestQEP().Compare(context.Background(), "select * from customer", "select * from customer where id=1")
	require.NoError(t, err)

	data, err := json.Marshal(cmp)
	require.NoError(t, err)

	var parts []json.RawMessage
	require.NoError(t, json.Unmarshal(data, &parts))
	require.Len(t, parts, 3)
	assert.Contains(t, string(parts[0]), `"description":"Seq Scan"`)
	assert.Contains(t, string(parts[1]), `"description":"Index Scan"`)
	assert.JSONEq(t, `["1|replace|Seq-Scan has been replaced by Index-Scan"]`, string(parts[2]))
}

func TestCompareSamePlanHasNoChanges(t *testing.T) {
	cmp, err := newTestQEP().CompareDocuments([]byte(seqScanDoc), []byte(seqScanDoc))
	require.NoError(t, err)
	assert.Empty(t, cmp.Changes)

	data, err := json.Marshal(cmp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `,[]]`)
}

func TestCompareFailsWhole(t *testing.T) {
	q := newTestQEP()
	cmp, err := q.Compare(context.Background(), "select * from customer", "broken")
	assert.Nil(t, cmp)
	assert.True(t, common.IsCode(err, common.MalformedPlanInputError))
	assert.Contains(t, err.Error(), "second plan")

	down := New(&mapSource{err: common.WrapError(common.PlanSourceError, common.StagePlanSource, errors.New("dial tcp: refused"), "explain failed")})
	_, err = down.Compare(context.Background(), "a", "b")
	assert.True(t, common.IsCode(err, common.PlanSourceError))
	assert.Contains(t, err.Error(), "first query")
}
