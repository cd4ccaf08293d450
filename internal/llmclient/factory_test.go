package llmclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/config"
)

func TestNewClient(t *testing.T) {
	logger, _ := observedLogger(t)

	t.Run("Distinct Models Per Tier", func(t *testing.T) {
		flash := getValidLLMConfig()
		flash.Model = "gemini-2.5-flash"
		pro := getValidLLMConfig()
		pro.Model = "gemini-2.5-pro"
		pro.APIKey = "key-pro"

		client, err := NewClient(context.Background(), agentConfig("flash", "pro", map[string]config.LLMModelConfig{
			"flash": flash,
			"pro":   pro,
		}), logger)
		require.NoError(t, err)
		t.Cleanup(func() { _ = client.Close() })

		router, ok := client.(*LLMRouter)
		require.True(t, ok)

		fast, ok := router.clients[schemas.TierFast].(*GoogleClient)
		require.True(t, ok)
		assert.Equal(t, "gemini-2.5-flash", fast.config.Model)

		powerful, ok := router.clients[schemas.TierPowerful].(*GoogleClient)
		require.True(t, ok)
		assert.Equal(t, "gemini-2.5-pro", powerful.config.Model)
		assert.Equal(t, "key-pro", powerful.config.APIKey)
		assert.NotSame(t, fast, powerful)
	})

	t.Run("Shared Model", func(t *testing.T) {
		client, err := NewClient(context.Background(), agentConfig("only", "only", map[string]config.LLMModelConfig{
			"only": getValidLLMConfig(),
		}), logger)
		require.NoError(t, err)

		router := client.(*LLMRouter)
		assert.Same(t, router.clients[schemas.TierFast], router.clients[schemas.TierPowerful])
		assert.NoError(t, client.Close())
	})
}

func TestNewClient_ConfigurationErrors(t *testing.T) {
	logger, _ := observedLogger(t)

	noKey := getValidLLMConfig()
	noKey.APIKey = ""
	noProvider := getValidLLMConfig()
	noProvider.Provider = ""
	otherProvider := getValidLLMConfig()
	otherProvider.Provider = "openai"

	tests := []struct {
		name    string
		cfg     config.AgentConfig
		wantErr []string
	}{
		{
			name:    "No Fast Default",
			cfg:     agentConfig("", "valid", map[string]config.LLMModelConfig{"valid": getValidLLMConfig()}),
			wantErr: []string{"no default model is configured for the fast tier"},
		},
		{
			name:    "No Powerful Default",
			cfg:     agentConfig("valid", "", map[string]config.LLMModelConfig{"valid": getValidLLMConfig()}),
			wantErr: []string{"no default model is configured for the powerful tier"},
		},
		{
			name:    "Undefined Model",
			cfg:     agentConfig("valid", "missing", map[string]config.LLMModelConfig{"valid": getValidLLMConfig()}),
			wantErr: []string{`the powerful tier model "missing" is not defined under agent.llm.models`},
		},
		{
			name: "Missing API Key",
			cfg:  agentConfig("nokey", "valid", map[string]config.LLMModelConfig{"nokey": noKey, "valid": getValidLLMConfig()}),
			wantErr: []string{
				`failed to initialize the fast tier client (model "nokey")`,
				"API Key is required",
			},
		},
		{
			name:    "Missing Provider",
			cfg:     agentConfig("valid", "bare", map[string]config.LLMModelConfig{"bare": noProvider, "valid": getValidLLMConfig()}),
			wantErr: []string{"provider is not set"},
		},
		{
			name:    "Unsupported Provider",
			cfg:     agentConfig("valid", "other", map[string]config.LLMModelConfig{"other": otherProvider, "valid": getValidLLMConfig()}),
			wantErr: []string{`unsupported provider "openai" (supported: gemini)`},
		},
		{
			name:    "Empty Config",
			cfg:     config.AgentConfig{},
			wantErr: []string{"fast tier"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(context.Background(), tt.cfg, logger)
			require.Error(t, err)
			assert.Nil(t, client)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
