package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/config"
)

func TestCreate_SourceOnly(t *testing.T) {
	factory := NewComponentFactoryWithLLM(func(context.Context, config.AgentConfig, *zap.Logger) (schemas.LLMClient, error) {
		t.Fatal("LLM must not be initialized when not requested")
		return nil, nil
	})

	c, err := factory.Create(context.Background(), config.NewDefaultConfig(), zap.NewNop(), Options{Now: pinnedNow})
	require.NoError(t, err)
	defer c.Shutdown()

	assert.False(t, c.HasCollaborators())
	assert.Nil(t, c.Summarizer)
	assert.Nil(t, c.Advisor)

	results, err := c.Source.ListScanResults(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 5)
	assert.Equal(t, pinnedNow, results[2].CreatedAt, "mock data is anchored at Options.Now")
}

func TestCreate_LLMModes(t *testing.T) {
	initErr := errors.New("Google/Gemini API Key is required")

	t.Run("required and available", func(t *testing.T) {
		llm := new(MockLLMClient)
		llm.On("Close").Return(nil).Once()
		factory := NewComponentFactoryWithLLM(llmInitializer(llm, nil))

		c, err := factory.Create(context.Background(), config.NewDefaultConfig(), zap.NewNop(), Options{Now: pinnedNow, LLM: LLMRequired})
		require.NoError(t, err)
		assert.True(t, c.HasCollaborators())
		assert.NotNil(t, c.Summarizer)
		assert.NotNil(t, c.Advisor)

		require.NoError(t, c.Shutdown())
		llm.AssertExpectations(t)
	})

	t.Run("required and unavailable", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		factory := NewComponentFactoryWithLLM(llmInitializer(nil, initErr))

		c, err := factory.Create(context.Background(), config.NewDefaultConfig(), zap.New(core), Options{LLM: LLMRequired})
		assert.Nil(t, c)
		assert.ErrorIs(t, err, initErr)
		assert.Equal(t, 1, logs.FilterMessage("Initialization failed, shutting down partially created components.").Len())
	})

	t.Run("optional and unavailable", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		factory := NewComponentFactoryWithLLM(llmInitializer(nil, initErr))

		c, err := factory.Create(context.Background(), config.NewDefaultConfig(), zap.New(core), Options{LLM: LLMOptional})
		require.NoError(t, err)
		defer c.Shutdown()
		assert.False(t, c.HasCollaborators())
		assert.NotNil(t, c.Source)
		assert.Equal(t, 1, logs.FilterMessage("LLM collaborators unavailable; analysis endpoints are disabled.").Len())
	})
}

func TestCreate_SourceFailure(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.SetDataSource(config.DataSourceFile)
	cfg.DataCfg.FilePath = t.TempDir() + "/missing.json"

	c, err := NewComponentFactory().Create(context.Background(), cfg, zap.NewNop(), Options{LLM: LLMRequired})
	assert.Nil(t, c)
	assert.ErrorContains(t, err, "failed to load scan data file")
}

func TestLLMModeString(t *testing.T) {
	assert.Equal(t, "none", LLMNone.String())
	assert.Equal(t, "optional", LLMOptional.String())
	assert.Equal(t, "required", LLMRequired.String())
	assert.Equal(t, "LLMMode(7)", LLMMode(7).String())
}
