package results

import (
	"strings"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

// Predicate narrows a result collection beyond the date range. Predicates are
// applied conjunctively.
type Predicate func(schemas.ScanResult) bool

// WithStatus keeps results whose status is any of the given states.
func WithStatus(statuses ...schemas.ScanStatus) Predicate {
	set := make(map[schemas.ScanStatus]struct{}, len(statuses))
	for _, s := range statuses {
		set[s] = struct{}{}
	}
	return func(r schemas.ScanResult) bool {
		_, ok := set[r.Status]
		return ok
	}
}

// WithScanType keeps results launched with any of the given profiles.
func WithScanType(types ...schemas.ScanType) Predicate {
	set := make(map[schemas.ScanType]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return func(r schemas.ScanResult) bool {
		_, ok := set[r.ScanType]
		return ok
	}
}

// WithMinTier keeps results classified at or above the given tier.
func WithMinTier(tier schemas.RiskTier) Predicate {
	minRank := tier.Rank()
	return func(r schemas.ScanResult) bool {
		return ClassifyRisk(r.RiskScore).Rank() >= minRank
	}
}

// WithTargetContains keeps results whose target contains substr, ignoring case.
func WithTargetContains(substr string) Predicate {
	needle := strings.ToLower(substr)
	return func(r schemas.ScanResult) bool {
		return strings.Contains(strings.ToLower(r.Target), needle)
	}
}
