package results

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

func TestFilter_NoRangeIsIdentity(t *testing.T) {
	in := mockScenario()

	out := Filter(in, nil)

	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("Filter(R, nil) changed the collection (-want +got):\n%s", diff)
	}
	// An empty range behaves the same as no range.
	assert.Equal(t, ids(in), ids(Filter(in, &schemas.DateRange{})))
}

func TestFilter_FromBoundIsStrict(t *testing.T) {
	in := mockScenario()
	from := pinnedNow.AddDate(0, 0, -2).Add(-4 * time.Hour) // scan-02's exact creation time.

	out := Filter(in, &schemas.DateRange{From: &from})

	assert.Equal(t, []string{"scan-01", "scan-03", "scan-04"}, ids(out))
	kept := make(map[string]bool)
	for _, r := range out {
		assert.True(t, r.CreatedAt.After(from), "%s should be after the bound", r.ID)
		kept[r.ID] = true
	}
	for _, r := range in {
		if !kept[r.ID] {
			assert.False(t, r.CreatedAt.After(from), "%s was excluded but is after the bound", r.ID)
		}
	}
}

func TestFilter_ResultOnFromBoundIsExcluded(t *testing.T) {
	onBound := newResult("edge", "10.1.1.1", 10, schemas.ScanStatusCompleted, pinnedNow)

	out := Filter([]schemas.ScanResult{onBound}, &schemas.DateRange{From: timePtr(pinnedNow)})

	assert.Empty(t, out)
}

func TestFilter_ToBoundIsStrict(t *testing.T) {
	in := mockScenario()

	out := Filter(in, &schemas.DateRange{To: timePtr(pinnedNow)})

	// scan-03 was created exactly at the bound.
	assert.Equal(t, []string{"scan-01", "scan-02", "scan-04", "scan-05"}, ids(out))
}

func TestFilter_BothBoundsConjunctive(t *testing.T) {
	in := mockScenario()
	rng := &schemas.DateRange{
		From: timePtr(pinnedNow.AddDate(0, 0, -2)),
		To:   timePtr(pinnedNow.Add(-time.Minute)),
	}

	out := Filter(in, rng)

	assert.Equal(t, []string{"scan-01", "scan-04"}, ids(out))
}

func TestFilter_Predicates(t *testing.T) {
	in := mockScenario()

	t.Run("status", func(t *testing.T) {
		out := Filter(in, nil, WithStatus(schemas.ScanStatusRunning, schemas.ScanStatusPending))
		assert.Equal(t, []string{"scan-03", "scan-04"}, ids(out))
	})

	t.Run("min tier", func(t *testing.T) {
		out := Filter(in, nil, WithMinTier(schemas.TierMedium))
		assert.Equal(t, []string{"scan-01", "scan-02"}, ids(out))
	})

	t.Run("target substring ignores case", func(t *testing.T) {
		out := Filter(in, nil, WithTargetContains("EXAMPLE"))
		assert.Equal(t, []string{"scan-02"}, ids(out))
	})

	t.Run("scan type", func(t *testing.T) {
		mixed := mockScenario()
		mixed[1].ScanType = schemas.ScanTypeFull
		out := Filter(mixed, nil, WithScanType(schemas.ScanTypeFull))
		assert.Equal(t, []string{"scan-02"}, ids(out))
	})

	t.Run("range and predicates combine", func(t *testing.T) {
		out := Filter(in, &schemas.DateRange{From: timePtr(pinnedNow.Add(-time.Hour))}, WithStatus(schemas.ScanStatusPending))
		assert.Equal(t, []string{"scan-04"}, ids(out))
	})

	t.Run("nil predicate is ignored", func(t *testing.T) {
		assert.Len(t, Filter(in, nil, nil), len(in))
	})
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := mockScenario()
	snapshot := mockScenario()

	out := Filter(in, &schemas.DateRange{From: timePtr(pinnedNow.AddDate(0, 0, -1))})
	require.NotEmpty(t, out)
	out[0].Target = "changed"

	if diff := cmp.Diff(snapshot, in); diff != "" {
		t.Errorf("input was mutated (-want +got):\n%s", diff)
	}
}
