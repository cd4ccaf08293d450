package results

import (
	"cmp"
	"slices"
	"strings"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

// Sort returns a copy of results ordered by spec. The sort is stable: elements
// with equal keys keep their input order in both directions, which also makes
// Sort idempotent. A zero SortSpec means DefaultSortSpec.
func Sort(results []schemas.ScanResult, spec schemas.SortSpec) []schemas.ScanResult {
	if spec.IsZero() {
		spec = schemas.DefaultSortSpec()
	}
	out := slices.Clone(results)
	if out == nil {
		out = []schemas.ScanResult{}
	}

	compare := comparatorFor(spec.Key)
	if spec.Direction == schemas.SortDesc {
		// Reverse the comparison rather than the output so ties stay in input order.
		asc := compare
		compare = func(a, b schemas.ScanResult) int { return asc(b, a) }
	}
	slices.SortStableFunc(out, compare)
	return out
}

func comparatorFor(key schemas.SortKey) func(a, b schemas.ScanResult) int {
	switch key {
	case schemas.SortByTarget:
		return func(a, b schemas.ScanResult) int { return strings.Compare(a.Target, b.Target) }
	case schemas.SortByRiskScore:
		return func(a, b schemas.ScanResult) int { return cmp.Compare(a.RiskScore, b.RiskScore) }
	default:
		return func(a, b schemas.ScanResult) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
}
