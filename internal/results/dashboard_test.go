package results

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

func statValue(t *testing.T, d schemas.Dashboard, title string) int {
	t.Helper()
	s, ok := d.Stat(title)
	require.True(t, ok, "missing stat %q", title)
	return s.Value
}

func TestAggregate_Empty(t *testing.T) {
	d := Aggregate(nil, pinnedNow)

	require.Len(t, d.Stats, 4)
	for _, s := range d.Stats {
		assert.Zero(t, s.Value, s.Title)
		assert.Nil(t, s.Change, s.Title)
	}
	require.Len(t, d.WeeklySeries, 7)
	for _, b := range d.WeeklySeries {
		assert.Zero(t, b.ScanCount, b.Day)
		assert.Zero(t, b.ElevatedRiskCount, b.Day)
	}
	assert.Equal(t, pinnedNow, d.GeneratedAt)
}

func TestAggregate_MockScenario(t *testing.T) {
	d := Aggregate(mockScenario(), pinnedNow)

	assert.Equal(t, []string{
		schemas.StatHighRiskAssets, schemas.StatTotalTargets, schemas.StatScansThisWeek, schemas.StatActiveScans,
	}, []string{d.Stats[0].Title, d.Stats[1].Title, d.Stats[2].Title, d.Stats[3].Title})
	assert.Equal(t, 1, statValue(t, d, schemas.StatHighRiskAssets))
	assert.Equal(t, 5, statValue(t, d, schemas.StatTotalTargets))
	assert.Equal(t, 5, statValue(t, d, schemas.StatScansThisWeek))
	assert.Equal(t, 2, statValue(t, d, schemas.StatActiveScans))
}

func TestAggregate_TotalTargetsIsDistinct(t *testing.T) {
	in := []schemas.ScanResult{
		newResult("a", "10.0.0.1", 0, schemas.ScanStatusCompleted, pinnedNow),
		newResult("b", "10.0.0.1", 0, schemas.ScanStatusCompleted, pinnedNow),
		newResult("c", "10.0.0.2", 0, schemas.ScanStatusCompleted, pinnedNow),
	}

	assert.Equal(t, 2, statValue(t, Aggregate(in, pinnedNow), schemas.StatTotalTargets))
}

func TestAggregate_WeeklySeries(t *testing.T) {
	d := Aggregate(mockScenario(), pinnedNow)

	// scan-05 ran Sunday, scan-02 Monday, scan-01 Tuesday, scan-03 and scan-04 today.
	want := []schemas.WeeklyBucket{
		{Day: "Thu"},
		{Day: "Fri"},
		{Day: "Sat"},
		{Day: "Sun", ScanCount: 1},
		{Day: "Mon", ScanCount: 1},
		{Day: "Tue", ScanCount: 1, ElevatedRiskCount: 1},
		{Day: "Wed", ScanCount: 2},
	}
	assert.Equal(t, want, d.WeeklySeries)
}

func TestAggregate_WeekWindowIsInclusive(t *testing.T) {
	in := []schemas.ScanResult{
		newResult("start", "a", 60, schemas.ScanStatusCompleted, pinnedNow.AddDate(0, 0, -7)),
		newResult("end", "b", 10, schemas.ScanStatusCompleted, pinnedNow),
		newResult("before", "c", 90, schemas.ScanStatusCompleted, pinnedNow.AddDate(0, 0, -7).Add(-time.Nanosecond)),
		newResult("future", "d", 90, schemas.ScanStatusCompleted, pinnedNow.Add(time.Nanosecond)),
	}

	d := Aggregate(in, pinnedNow)

	assert.Equal(t, 2, statValue(t, d, schemas.StatScansThisWeek))
	// The window start shares today's weekday, so it lands in today's bucket.
	today := d.WeeklySeries[6]
	assert.Equal(t, "Wed", today.Day)
	assert.Equal(t, 2, today.ScanCount)
	assert.Equal(t, 1, today.ElevatedRiskCount)
}

func TestAggregate_ElevatedRiskIsAboveFifty(t *testing.T) {
	in := []schemas.ScanResult{
		newResult("fifty", "a", 50, schemas.ScanStatusCompleted, pinnedNow),
		newResult("fifty-one", "b", 51, schemas.ScanStatusCompleted, pinnedNow),
	}

	today := Aggregate(in, pinnedNow).WeeklySeries[6]

	assert.Equal(t, 2, today.ScanCount)
	assert.Equal(t, 1, today.ElevatedRiskCount)
}

func TestAggregate_ScansThisWeekChange(t *testing.T) {
	in := mockScenario()[:3]
	in = append(in,
		newResult("prior-1", "p1", 10, schemas.ScanStatusCompleted, pinnedNow.AddDate(0, 0, -10)),
		newResult("prior-2", "p2", 10, schemas.ScanStatusCompleted, pinnedNow.AddDate(0, 0, -13)),
		newResult("ancient", "p3", 10, schemas.ScanStatusCompleted, pinnedNow.AddDate(0, 0, -30)),
	)

	s, ok := Aggregate(in, pinnedNow).Stat(schemas.StatScansThisWeek)

	require.True(t, ok)
	assert.Equal(t, 3, s.Value)
	require.NotNil(t, s.Change)
	assert.Equal(t, "+50%", *s.Change)
}

func TestAggregate_WeekdaysUseNowLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	now := time.Date(2024, time.May, 15, 3, 0, 0, 0, tokyo) // Wed in Tokyo, still Tue in UTC.
	in := []schemas.ScanResult{
		newResult("late-utc", "a", 0, schemas.ScanStatusCompleted, time.Date(2024, time.May, 14, 17, 0, 0, 0, time.UTC)),
	}

	d := Aggregate(in, now)

	assert.Equal(t, "Wed", d.WeeklySeries[6].Day)
	assert.Equal(t, 1, d.WeeklySeries[6].ScanCount)
}

func TestAggregate_IsDeterministic(t *testing.T) {
	in := mockScenario()
	assert.Equal(t, Aggregate(in, pinnedNow), Aggregate(in, pinnedNow))
}
