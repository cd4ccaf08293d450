package results

import (
	"fmt"
	"math"
	"time"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

// seriesDays is the length of the trailing activity window, in calendar days.
const seriesDays = 7

// Aggregate derives the dashboard statistics and the trailing seven day activity
// series from results. It is a pure function of its arguments: now is never read
// from a clock, so callers can pin it and get reproducible buckets.
//
// The "this week" window is [now-7d, now] with both ends inclusive, unlike
// Filter, whose bounds are strict.
func Aggregate(results []schemas.ScanResult, now time.Time) schemas.Dashboard {
	weekStart := now.AddDate(0, 0, -seriesDays)
	priorStart := now.AddDate(0, 0, -2*seriesDays)

	var highRisk, thisWeek, priorWeek, active int
	targets := make(map[string]struct{}, len(results))

	for _, r := range results {
		if r.RiskScore > criticalThreshold {
			highRisk++
		}
		targets[r.Target] = struct{}{}
		switch {
		case withinInclusive(r.CreatedAt, weekStart, now):
			thisWeek++
		case !r.CreatedAt.Before(priorStart) && r.CreatedAt.Before(weekStart):
			priorWeek++
		}
		if r.Status.Active() {
			active++
		}
	}

	return schemas.Dashboard{
		GeneratedAt: now,
		Stats: []schemas.DashboardStat{
			{Title: schemas.StatHighRiskAssets, Value: highRisk},
			{Title: schemas.StatTotalTargets, Value: len(targets)},
			{Title: schemas.StatScansThisWeek, Value: thisWeek, Change: percentChange(priorWeek, thisWeek)},
			{Title: schemas.StatActiveScans, Value: active},
		},
		WeeklySeries: weeklySeries(results, now, weekStart),
	}
}

// weeklySeries buckets the results of the trailing window by weekday, oldest
// day first and ending on now's weekday. Weekdays are taken in now's location.
func weeklySeries(results []schemas.ScanResult, now, weekStart time.Time) []schemas.WeeklyBucket {
	buckets := make([]schemas.WeeklyBucket, seriesDays)
	index := make(map[time.Weekday]int, seriesDays)
	for i := range buckets {
		day := now.AddDate(0, 0, -(seriesDays - 1 - i))
		buckets[i].Day = weekdayLabel(day.Weekday())
		index[day.Weekday()] = i
	}

	for _, r := range results {
		if !withinInclusive(r.CreatedAt, weekStart, now) {
			continue
		}
		i, ok := index[r.CreatedAt.In(now.Location()).Weekday()]
		if !ok {
			continue
		}
		buckets[i].ScanCount++
		if r.RiskScore > ElevatedRiskThreshold {
			buckets[i].ElevatedRiskCount++
		}
	}
	return buckets
}

func withinInclusive(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func weekdayLabel(d time.Weekday) string {
	return d.String()[:3]
}

// percentChange formats the signed change from prior to current, e.g. "+50%".
// There is no meaningful change from an empty prior period.
func percentChange(prior, current int) *string {
	if prior == 0 {
		return nil
	}
	pct := math.Round(float64(current-prior) * 100 / float64(prior))
	s := fmt.Sprintf("%+d%%", int(pct))
	return &s
}
