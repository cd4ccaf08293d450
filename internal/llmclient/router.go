package llmclient

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/api/schemas"
)

// LLMRouter is an LLMClient that dispatches each request to the client for its
// tier. Requests without a tier go to the powerful tier.
type LLMRouter struct {
	logger  *zap.Logger
	clients map[schemas.ModelTier]schemas.LLMClient
}

// NewLLMRouter requires a client for each tier; the two may be the same value.
func NewLLMRouter(logger *zap.Logger, fastClient, powerfulClient schemas.LLMClient) (*LLMRouter, error) {
	if fastClient == nil || powerfulClient == nil {
		return nil, errors.New("a client is required for both the fast and the powerful tier")
	}
	return &LLMRouter{
		logger: logger.Named("llm_router"),
		clients: map[schemas.ModelTier]schemas.LLMClient{
			schemas.TierFast:     fastClient,
			schemas.TierPowerful: powerfulClient,
		},
	}, nil
}

func (r *LLMRouter) Generate(ctx context.Context, req schemas.GenerationRequest) (string, error) {
	tier := req.Tier
	if tier == "" {
		tier = schemas.TierPowerful
	}
	client, ok := r.clients[tier]
	if !ok {
		return "", fmt.Errorf("unknown model tier %q", tier)
	}

	r.logger.Debug("Dispatching generation request.", zap.String("tier", string(tier)))
	return client.Generate(ctx, req)
}

// Close closes each distinct client once.
func (r *LLMRouter) Close() error {
	closed := make(map[schemas.LLMClient]bool, len(r.clients))
	var errs []error
	for _, c := range r.clients {
		if closed[c] {
			continue
		}
		closed[c] = true
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
