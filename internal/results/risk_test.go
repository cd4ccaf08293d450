package results

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

func TestClassifyRisk_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  schemas.RiskTier
	}{
		{0, schemas.TierInfo},
		{1, schemas.TierLow},
		{25, schemas.TierLow},
		{26, schemas.TierMedium},
		{50, schemas.TierMedium},
		{51, schemas.TierHigh},
		{75, schemas.TierHigh},
		{76, schemas.TierCritical},
		{100, schemas.TierCritical},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("score_%d", tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRisk(tt.score))
		})
	}
}

// Every score in [0,100] lands in exactly the tier its range predicts.
func TestClassifyRisk_TotalOverScale(t *testing.T) {
	for s := 0; s <= 100; s++ {
		var want schemas.RiskTier
		switch {
		case s == 0:
			want = schemas.TierInfo
		case s <= 25:
			want = schemas.TierLow
		case s <= 50:
			want = schemas.TierMedium
		case s <= 75:
			want = schemas.TierHigh
		default:
			want = schemas.TierCritical
		}
		assert.Equal(t, want, ClassifyRisk(s), "score %d", s)
	}
}

func TestClassifyRisk_OutOfScale(t *testing.T) {
	assert.Equal(t, schemas.TierInfo, ClassifyRisk(-10))
	assert.Equal(t, schemas.TierCritical, ClassifyRisk(250))
}
