package results

import "github.com/xkilldash9x/scanlens/api/schemas"

// Tier thresholds. Each is the exclusive lower bound of the tier above it.
const (
	criticalThreshold = 75
	highThreshold     = 50
	mediumThreshold   = 25
	lowThreshold      = 0
)

// ElevatedRiskThreshold is the score above which a result counts as a new risk
// in the weekly activity series.
const ElevatedRiskThreshold = highThreshold

// ClassifyRisk maps a risk score to its severity tier. Every integer maps to
// exactly one tier; scores at or below zero are Info.
func ClassifyRisk(score int) schemas.RiskTier {
	switch {
	case score > criticalThreshold:
		return schemas.TierCritical
	case score > highThreshold:
		return schemas.TierHigh
	case score > mediumThreshold:
		return schemas.TierMedium
	case score > lowThreshold:
		return schemas.TierLow
	default:
		return schemas.TierInfo
	}
}
