package schemas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validResult() ScanResult {
	return ScanResult{
		ID:        "scan-01",
		Target:    "192.168.1.1",
		ScanType:  ScanTypeFull,
		Agent:     "Agent-007",
		Status:    ScanStatusCompleted,
		RiskScore: 85,
		CreatedAt: time.Date(2024, 5, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestScanResultValidate(t *testing.T) {
	require.NoError(t, validResult().Validate())

	tests := []struct {
		name   string
		mutate func(*ScanResult)
		msg    string
	}{
		{"empty id", func(r *ScanResult) { r.ID = "" }, "id is empty"},
		{"negative score", func(r *ScanResult) { r.RiskScore = -1 }, "outside [0,100]"},
		{"score above scale", func(r *ScanResult) { r.RiskScore = 101 }, "outside [0,100]"},
		{"unknown type", func(r *ScanResult) { r.ScanType = "Aggressive" }, "unknown scan type"},
		{"unknown status", func(r *ScanResult) { r.Status = "Paused" }, "unknown status"},
		{"zero time", func(r *ScanResult) { r.CreatedAt = time.Time{} }, "no creation time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validResult()
			tt.mutate(&r)
			err := r.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestValidateCollection_RejectsDuplicateIDs(t *testing.T) {
	err := ValidateCollection([]ScanResult{validResult(), validResult()})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "duplicate")
	assert.NoError(t, ValidateCollection(nil))
}

func TestHasRawFindings(t *testing.T) {
	r := validResult()
	assert.False(t, r.HasRawFindings())
	r.Findings.Raw = "   \n"
	assert.False(t, r.HasRawFindings())
	r.Findings.Raw = "22/tcp open ssh"
	assert.True(t, r.HasRawFindings())
}

func TestScanStatusActive(t *testing.T) {
	assert.True(t, ScanStatusPending.Active())
	assert.True(t, ScanStatusRunning.Active())
	assert.False(t, ScanStatusCompleted.Active())
	assert.False(t, ScanStatusError.Active())
}

func TestParseSortSpec(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		spec, err := ParseSortSpec("", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultSortSpec(), spec)
		assert.Equal(t, SortSpec{Key: SortByCreatedAt, Direction: SortDesc}, spec)
	})

	t.Run("aliases", func(t *testing.T) {
		spec, err := ParseSortSpec("risk_score", "ASC")
		require.NoError(t, err)
		assert.Equal(t, SortSpec{Key: SortByRiskScore, Direction: SortAsc}, spec)

		spec, err = ParseSortSpec("Target", "")
		require.NoError(t, err)
		assert.Equal(t, SortSpec{Key: SortByTarget, Direction: SortDesc}, spec)
	})

	t.Run("unknown key is an invalid argument", func(t *testing.T) {
		_, err := ParseSortSpec("agent", "asc")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("unknown direction is an invalid argument", func(t *testing.T) {
		_, err := ParseSortSpec("target", "sideways")
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestRiskTierRankAndParse(t *testing.T) {
	assert.Less(t, TierInfo.Rank(), TierLow.Rank())
	assert.Less(t, TierHigh.Rank(), TierCritical.Rank())
	assert.Equal(t, -1, RiskTier("Severe").Rank())

	tier, err := ParseRiskTier("high")
	require.NoError(t, err)
	assert.Equal(t, TierHigh, tier)

	_, err = ParseRiskTier("severe")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDateRangeIsZero(t *testing.T) {
	var nilRange *DateRange
	assert.True(t, nilRange.IsZero())
	assert.True(t, (&DateRange{}).IsZero())
	now := time.Now()
	assert.False(t, (&DateRange{From: &now}).IsZero())
}

func TestCollaboratorSchemas(t *testing.T) {
	assert.ErrorIs(t, SummarizeScanInput{ScanFindings: " "}.Validate(), ErrSchemaValidationFailed)
	assert.NoError(t, SummarizeScanInput{ScanFindings: "80/tcp open http"}.Validate())

	assert.ErrorIs(t, SummarizeScanOutput{RiskScore: 101, KeyFindings: "x"}.Validate(), ErrSchemaValidationFailed)
	assert.ErrorIs(t, SummarizeScanOutput{RiskScore: 40}.Validate(), ErrSchemaValidationFailed)
	out := SummarizeScanOutput{RiskScore: 72.6, KeyFindings: "SMBv1 exposed"}
	assert.NoError(t, out.Validate())
	assert.Equal(t, 73, out.Score())

	assert.ErrorIs(t, SuggestRemediationInput{ScanFindings: "x"}.Validate(), ErrSchemaValidationFailed)
	assert.ErrorIs(t, SuggestRemediationInput{Target: "x"}.Validate(), ErrSchemaValidationFailed)
	assert.NoError(t, SuggestRemediationInput{ScanFindings: "x", Target: "10.0.0.1"}.Validate())

	assert.ErrorIs(t, SuggestRemediationOutput{}.Validate(), ErrSchemaValidationFailed)
}
