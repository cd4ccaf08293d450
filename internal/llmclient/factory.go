// internal/llmclient/factory.go
package llmclient

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/config"
)

// NewClient builds an LLMRouter over the models named by the fast and powerful
// defaults in cfg.LLM. When both tiers name the same model they share a client.
func NewClient(ctx context.Context, cfg config.AgentConfig, logger *zap.Logger) (schemas.LLMClient, error) {
	tiers := []struct {
		tier schemas.ModelTier
		name string
	}{
		{schemas.TierFast, cfg.LLM.DefaultFastModel},
		{schemas.TierPowerful, cfg.LLM.DefaultPowerfulModel},
	}

	built := make(map[string]schemas.LLMClient, len(tiers))
	byTier := make(map[schemas.ModelTier]schemas.LLMClient, len(tiers))
	closeBuilt := func() {
		for _, c := range built {
			_ = c.Close()
		}
	}

	for _, t := range tiers {
		if client, ok := built[t.name]; ok {
			byTier[t.tier] = client
			continue
		}
		client, err := newTierClient(ctx, cfg.LLM, t.tier, t.name, logger)
		if err != nil {
			closeBuilt()
			return nil, err
		}
		built[t.name] = client
		byTier[t.tier] = client
	}

	return NewLLMRouter(logger, byTier[schemas.TierFast], byTier[schemas.TierPowerful])
}

// newTierClient resolves a model name against agent.llm.models and builds the
// provider client for it.
func newTierClient(ctx context.Context, cfg config.LLMRouterConfig, tier schemas.ModelTier, name string, logger *zap.Logger) (schemas.LLMClient, error) {
	if name == "" {
		return nil, fmt.Errorf("no default model is configured for the %s tier", tier)
	}
	modelCfg, ok := cfg.Models[name]
	if !ok {
		return nil, fmt.Errorf("the %s tier model %q is not defined under agent.llm.models", tier, name)
	}

	client, err := newProviderClient(ctx, modelCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize the %s tier client (model %q): %w", tier, name, err)
	}
	return client, nil
}

func newProviderClient(ctx context.Context, cfg config.LLMModelConfig, logger *zap.Logger) (schemas.LLMClient, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGoogleClient(ctx, cfg, logger)
	case "":
		return nil, fmt.Errorf("provider is not set")
	default:
		return nil, fmt.Errorf("unsupported provider %q (supported: %s)", cfg.Provider, config.ProviderGemini)
	}
}
