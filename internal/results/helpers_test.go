package results

import (
	"time"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

// pinnedNow is a Wednesday, so the trailing series runs Thu..Wed.
var pinnedNow = time.Date(2024, time.May, 15, 12, 0, 0, 0, time.UTC)

func newResult(id, target string, score int, status schemas.ScanStatus, createdAt time.Time) schemas.ScanResult {
	return schemas.ScanResult{
		ID:        id,
		Target:    target,
		ScanType:  schemas.ScanTypeQuick,
		Agent:     "Agent-001",
		Status:    status,
		RiskScore: score,
		CreatedAt: createdAt,
	}
}

// mockScenario mirrors the dashboard's built-in dataset relative to pinnedNow.
func mockScenario() []schemas.ScanResult {
	return []schemas.ScanResult{
		newResult("scan-01", "192.168.1.1", 85, schemas.ScanStatusCompleted, pinnedNow.AddDate(0, 0, -1)),
		newResult("scan-02", "example.com", 45, schemas.ScanStatusCompleted, pinnedNow.AddDate(0, 0, -2).Add(-4*time.Hour)),
		newResult("scan-03", "10.0.0.5", 0, schemas.ScanStatusRunning, pinnedNow),
		newResult("scan-04", "test-server.local", 0, schemas.ScanStatusPending, pinnedNow.Add(-15*time.Minute)),
		newResult("scan-05", "172.16.0.10", 0, schemas.ScanStatusError, pinnedNow.AddDate(0, 0, -3)),
	}
}

func ids(results []schemas.ScanResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.ID
	}
	return out
}

func timePtr(t time.Time) *time.Time { return &t }
