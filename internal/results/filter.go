package results

import (
	"github.com/xkilldash9x/scanlens/api/schemas"
)

// Filter returns the results created strictly inside rng that satisfy every
// predicate. A nil range leaves the creation time unconstrained. A result whose
// CreatedAt equals a bound is excluded; callers wanting inclusive bounds must
// widen the bound themselves.
//
// The input is never modified and survivors keep their relative order.
func Filter(results []schemas.ScanResult, rng *schemas.DateRange, preds ...Predicate) []schemas.ScanResult {
	out := make([]schemas.ScanResult, 0, len(results))
	for _, r := range results {
		if inRange(r, rng) && matchesAll(r, preds) {
			out = append(out, r)
		}
	}
	return out
}

func inRange(r schemas.ScanResult, rng *schemas.DateRange) bool {
	if rng == nil {
		return true
	}
	if rng.From != nil && !r.CreatedAt.After(*rng.From) {
		return false
	}
	if rng.To != nil && !r.CreatedAt.Before(*rng.To) {
		return false
	}
	return true
}

func matchesAll(r schemas.ScanResult, preds []Predicate) bool {
	for _, p := range preds {
		if p != nil && !p(r) {
			return false
		}
	}
	return true
}
