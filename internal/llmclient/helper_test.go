package llmclient

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/config"
)

// MockLLMClient is a testify mock of schemas.LLMClient.
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

// observedLogger returns a debug-level logger and the entries it records.
func observedLogger(t *testing.T) (*zap.Logger, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

// getValidLLMConfig is a Gemini model config that passes NewGoogleClient's checks.
func getValidLLMConfig() config.LLMModelConfig {
	return config.LLMModelConfig{
		Provider:    config.ProviderGemini,
		APIKey:      "test-api-key",
		Model:       "gemini-test",
		APITimeout:  5 * time.Second,
		Temperature: 0.4,
		TopP:        0.9,
		TopK:        40,
	}
}

// agentConfig names fast and powerful as the tier defaults over models.
func agentConfig(fast, powerful string, models map[string]config.LLMModelConfig) config.AgentConfig {
	return config.AgentConfig{LLM: config.LLMRouterConfig{
		DefaultFastModel:     fast,
		DefaultPowerfulModel: powerful,
		Models:               models,
	}}
}
