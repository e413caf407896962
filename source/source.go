// Package source obtains raw EXPLAIN documents for SQL queries.
package source

import (
	"context"
	"strings"

	"mit.edu/dsg/qep/common"
)

// PlanSource produces the EXPLAIN (FORMAT JSON) document of a query.
// Implementations must be safe for concurrent use.
type PlanSource interface {
	Explain(ctx context.Context, query string) ([]byte, error)
	Close()
}

// normalizeQuery trims the query and rejects one with no statement text.
func normalizeQuery(query string) (string, error) {
	q := strings.TrimSpace(query)
	q = strings.TrimSpace(strings.TrimSuffix(q, ";"))
	if q == "" {
		return "", common.NewError(common.InvalidQueryError, common.StagePlanSource, "query is empty")
	}
	return q, nil
}
