// File: internal/results/pipeline.go
package results

import (
	"github.com/xkilldash9x/scanlens/api/schemas"
)

// Query is the results-table contract: a date range and predicates narrow the
// collection, then the survivors are ordered by Sort.
type Query struct {
	Range      *schemas.DateRange
	Predicates []Predicate
	Sort       schemas.SortSpec
}

// NewQuery returns a query with no filters and the default ordering.
func NewQuery() Query {
	return Query{Sort: schemas.DefaultSortSpec()}
}

// Run filters then sorts results. It holds no state between calls.
func (q Query) Run(results []schemas.ScanResult) []schemas.ScanResult {
	return Sort(Filter(results, q.Range, q.Predicates...), q.Sort)
}

// RankedResult pairs a result with its derived risk tier, the shape the
// presentation layer renders as a badge.
type RankedResult struct {
	schemas.ScanResult `yaml:",inline"`
	RiskTier           schemas.RiskTier `json:"risk_tier" yaml:"risk_tier"`
}

// Rank attaches the risk tier to every result, preserving order.
func Rank(results []schemas.ScanResult) []RankedResult {
	out := make([]RankedResult, len(results))
	for i, r := range results {
		out[i] = RankedResult{ScanResult: r, RiskTier: ClassifyRisk(r.RiskScore)}
	}
	return out
}
