// File: cmd/dashboard_test.go
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

func TestRunDashboard(t *testing.T) {
	var buf bytes.Buffer
	err := runDashboard(context.Background(), zap.NewNop(), testConfig(), &fakeFactory{}, jsonOut(), &buf)
	require.NoError(t, err)

	var d schemas.Dashboard
	require.NoError(t, json.Unmarshal(buf.Bytes(), &d))
	assert.True(t, d.GeneratedAt.Equal(pinnedNow))

	stat := func(title string) int {
		s, ok := d.Stat(title)
		require.True(t, ok, title)
		return s.Value
	}
	assert.Equal(t, 1, stat(schemas.StatHighRiskAssets))
	assert.Equal(t, 5, stat(schemas.StatTotalTargets))
	assert.Equal(t, 5, stat(schemas.StatScansThisWeek))
	assert.Equal(t, 2, stat(schemas.StatActiveScans))

	require.Len(t, d.WeeklySeries, 7)
	assert.Equal(t, "Thu", d.WeeklySeries[0].Day)
	assert.Equal(t, "Wed", d.WeeklySeries[6].Day)
	assert.Equal(t, 2, d.WeeklySeries[6].ScanCount)
}

func TestRunDashboard_Table(t *testing.T) {
	var buf bytes.Buffer
	out := outputOptions{Format: "table", Now: pinnedNowFlag}
	err := runDashboard(context.Background(), zap.NewNop(), testConfig(), &fakeFactory{}, out, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "High-Risk Assets")
	assert.Contains(t, buf.String(), "Scan activity (last 7 days)")
}
