// internal/llmclient/google_client.go
package llmclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/config"
)

// GoogleClient implements schemas.LLMClient on top of the Gemini API SDK.
// A call is attempted once; failures are surfaced to the caller, who decides
// whether to try again.
type GoogleClient struct {
	client *genai.Client
	config config.LLMModelConfig
	logger *zap.Logger
}

// NewGoogleClient initializes the SDK client for a single model.
func NewGoogleClient(ctx context.Context, cfg config.LLMModelConfig, logger *zap.Logger) (*GoogleClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Google/Gemini API Key is required (set SCANLENS_GEMINI_API_KEY)")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model name is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GoogleClient{
		client: client,
		config: cfg,
		logger: logger.Named("llm_client.google").With(zap.String("model", cfg.Model)),
	}, nil
}

// Generate sends the prompts to the model and returns the generated text.
// Every failure wraps schemas.ErrRemoteCallFailed.
func (c *GoogleClient) Generate(ctx context.Context, req schemas.GenerationRequest) (string, error) {
	if c.config.APITimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.APITimeout)
		defer cancel()
	}

	startTime := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(req.UserPrompt), c.buildGenerateConfig(req))
	duration := time.Since(startTime)
	if err != nil {
		c.logger.Warn("LLM request failed", zap.Error(err), zap.Duration("duration", duration))
		return "", fmt.Errorf("%w: gemini generate: %v", schemas.ErrRemoteCallFailed, err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: gemini API blocked the prompt (Reason: %s)", schemas.ErrRemoteCallFailed, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: gemini API returned no candidates", schemas.ErrRemoteCallFailed)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: gemini API returned empty content (Reason: %s)", schemas.ErrRemoteCallFailed, resp.Candidates[0].FinishReason)
	}

	fields := []zap.Field{zap.Duration("duration", duration)}
	if usage := resp.UsageMetadata; usage != nil {
		fields = append(fields,
			zap.Int32("prompt_tokens", usage.PromptTokenCount),
			zap.Int32("completion_tokens", usage.CandidatesTokenCount),
			zap.Int32("total_tokens", usage.TotalTokenCount),
		)
	}
	c.logger.Info("LLM generation complete (Gemini)", fields...)
	return text, nil
}

// buildGenerateConfig maps a request and the model's configured sampling
// parameters onto the SDK config.
func (c *GoogleClient) buildGenerateConfig(req schemas.GenerationRequest) *genai.GenerateContentConfig {
	temperature := float32(req.Options.Temperature)
	if temperature == 0 {
		temperature = c.config.Temperature
	}

	gc := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
	if req.SystemPrompt != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.Options.ForceJSONFormat {
		gc.ResponseMIMEType = "application/json"
	}
	if c.config.TopP > 0 {
		gc.TopP = genai.Ptr(c.config.TopP)
	}
	if c.config.TopK > 0 {
		gc.TopK = genai.Ptr(float32(c.config.TopK))
	}
	if c.config.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(c.config.MaxTokens)
	}
	return gc
}

// Close is a no-op; the SDK client holds no resources beyond its HTTP client.
func (c *GoogleClient) Close() error {
	return nil
}
