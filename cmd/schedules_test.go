// File: cmd/schedules_test.go
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

func TestRunSchedules(t *testing.T) {
	var buf bytes.Buffer
	err := runSchedules(context.Background(), zap.NewNop(), testConfig(), &fakeFactory{}, jsonOut(), &buf)
	require.NoError(t, err)

	var got []schemas.ScheduledScan
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "sched-01", got[0].ID)
	assert.True(t, got[0].NextRun.Equal(pinnedNow.AddDate(0, 0, 5)))
	assert.False(t, got[2].Enabled)
}

func TestRunSchedules_YAML(t *testing.T) {
	var buf bytes.Buffer
	out := outputOptions{Format: "yaml", Now: pinnedNowFlag}
	err := runSchedules(context.Background(), zap.NewNop(), testConfig(), &fakeFactory{}, out, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "- id: sched-01")
	assert.Contains(t, buf.String(), "frequency: Weekly")
}
