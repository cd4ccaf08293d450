package schemas

import (
	"fmt"
	"strings"
	"time"
)

// -- Query Schemas --

// DateRange bounds a result query by creation time. Either end may be nil,
// leaving the range open on that side. Bounds are exclusive.
type DateRange struct {
	From *time.Time `json:"from,omitempty" yaml:"from,omitempty"`
	To   *time.Time `json:"to,omitempty" yaml:"to,omitempty"`
}

// IsZero reports whether neither bound is set.
func (r *DateRange) IsZero() bool {
	return r == nil || (r.From == nil && r.To == nil)
}

// SortKey names the ScanResult field a result list is ordered by.
type SortKey string

const (
	SortByTarget    SortKey = "target"
	SortByRiskScore SortKey = "riskScore"
	SortByCreatedAt SortKey = "createdAt"
)

// SortDirection is ascending or descending order.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SortSpec selects the ordering of a result list.
type SortSpec struct {
	Key       SortKey       `json:"key" yaml:"key"`
	Direction SortDirection `json:"direction" yaml:"direction"`
}

// DefaultSortSpec is most-recent-first, the ordering the results table opens with.
func DefaultSortSpec() SortSpec {
	return SortSpec{Key: SortByCreatedAt, Direction: SortDesc}
}

// IsZero reports whether the ordering was left unset by the caller.
func (s SortSpec) IsZero() bool {
	return s.Key == "" && s.Direction == ""
}

// ParseSortKey accepts the canonical key names, case-insensitively, plus the
// snake_case spellings used on the wire.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "target":
		return SortByTarget, nil
	case "riskscore", "risk_score", "risk":
		return SortByRiskScore, nil
	case "createdat", "created_at", "created":
		return SortByCreatedAt, nil
	}
	return "", fmt.Errorf("%w: unknown sort key %q (want target, riskScore or createdAt)", ErrInvalidArgument, s)
}

// ParseSortDirection accepts "asc" or "desc", case-insensitively.
func ParseSortDirection(s string) (SortDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asc":
		return SortAsc, nil
	case "desc":
		return SortDesc, nil
	}
	return "", fmt.Errorf("%w: unknown sort direction %q (want asc or desc)", ErrInvalidArgument, s)
}

// ParseSortSpec builds a SortSpec from user supplied strings. Empty inputs fall
// back to the matching half of DefaultSortSpec.
func ParseSortSpec(key, direction string) (SortSpec, error) {
	spec := DefaultSortSpec()
	if key != "" {
		k, err := ParseSortKey(key)
		if err != nil {
			return SortSpec{}, err
		}
		spec.Key = k
	}
	if direction != "" {
		d, err := ParseSortDirection(direction)
		if err != nil {
			return SortSpec{}, err
		}
		spec.Direction = d
	}
	return spec, nil
}

// RiskTier is the discrete severity bucket derived from a numeric risk score.
type RiskTier string

const (
	TierInfo     RiskTier = "Info"
	TierLow      RiskTier = "Low"
	TierMedium   RiskTier = "Medium"
	TierHigh     RiskTier = "High"
	TierCritical RiskTier = "Critical"
)

// Rank orders tiers from Info (0) to Critical (4). Unknown tiers rank -1.
func (t RiskTier) Rank() int {
	switch t {
	case TierInfo:
		return 0
	case TierLow:
		return 1
	case TierMedium:
		return 2
	case TierHigh:
		return 3
	case TierCritical:
		return 4
	}
	return -1
}

// ParseRiskTier accepts a tier name case-insensitively.
func ParseRiskTier(s string) (RiskTier, error) {
	for _, t := range []RiskTier{TierInfo, TierLow, TierMedium, TierHigh, TierCritical} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown risk tier %q", ErrInvalidArgument, s)
}

// -- Dashboard Schemas --

// Titles of the dashboard statistics, in the order they are emitted.
const (
	StatHighRiskAssets = "High-Risk Assets"
	StatTotalTargets   = "Total Targets"
	StatScansThisWeek  = "Scans This Week"
	StatActiveScans    = "Active Scans"
)

// DashboardStat is a single derived headline number.
type DashboardStat struct {
	Title string `json:"title" yaml:"title"`
	Value int    `json:"value" yaml:"value"`
	// Change is the signed change from the prior period (e.g. "+50%"), when one
	// can be computed.
	Change *string `json:"change,omitempty" yaml:"change,omitempty"`
}

// WeeklyBucket is one day-of-week slot of the trailing seven day activity series.
type WeeklyBucket struct {
	Day               string `json:"day" yaml:"day"` // Three letter weekday, e.g. "Mon".
	ScanCount         int    `json:"scan_count" yaml:"scan_count"`
	ElevatedRiskCount int    `json:"elevated_risk_count" yaml:"elevated_risk_count"`
}

// Dashboard is the full aggregate view over a result collection.
type Dashboard struct {
	GeneratedAt  time.Time       `json:"generated_at" yaml:"generated_at"`
	Stats        []DashboardStat `json:"stats" yaml:"stats"`
	WeeklySeries []WeeklyBucket  `json:"weekly_series" yaml:"weekly_series"`
}

// Stat returns the statistic with the given title.
func (d Dashboard) Stat(title string) (DashboardStat, bool) {
	for _, s := range d.Stats {
		if s.Title == title {
			return s, true
		}
	}
	return DashboardStat{}, false
}
