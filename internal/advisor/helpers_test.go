package advisor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

// MockLLMClient records generation requests and replays scripted answers.
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Generate(ctx context.Context, req schemas.GenerationRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockLLMClient) Close() error {
	return m.Called().Error(0)
}

func setupObservedLogger(t *testing.T) (*zap.Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func rawResult() schemas.ScanResult {
	return schemas.ScanResult{
		ID:        "scan-01",
		Target:    "192.168.1.1",
		ScanType:  schemas.ScanTypeFull,
		Agent:     "Agent-007",
		Status:    schemas.ScanStatusCompleted,
		RiskScore: 85,
		Summary:   "Critical vulnerability found in SSH service.",
		CreatedAt: time.Date(2024, 5, 14, 12, 0, 0, 0, time.UTC),
		Findings: schemas.Findings{
			Raw: "PORT   STATE SERVICE\n22/tcp open  ssh\n80/tcp open  http",
		},
	}
}
