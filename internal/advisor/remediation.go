package advisor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/llmutil"
)

// Advisor proposes remediation steps for a scan's findings.
type Advisor struct {
	logger    *zap.Logger
	llmClient schemas.LLMClient
}

// NewAdvisor initializes the remediation advisory service.
func NewAdvisor(logger *zap.Logger, llmClient schemas.LLMClient) *Advisor {
	return &Advisor{
		logger:    logger.Named("remediation"),
		llmClient: llmClient,
	}
}

// Suggest requests remediation suggestions for the given findings and target.
// It makes one remote call and never retries; callers re-trigger on failure.
func (a *Advisor) Suggest(ctx context.Context, in schemas.SuggestRemediationInput) (*schemas.SuggestRemediationOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, &InputError{Err: err}
	}

	logger := a.logger.With(zap.String("request_id", uuid.NewString()), zap.String("target", in.Target))
	logger.Info("Requesting remediation suggestions.")

	req := schemas.GenerationRequest{
		SystemPrompt: remediationSystemPrompt,
		UserPrompt:   remediationPrompt(in),
		Tier:         schemas.TierPowerful,
		Options: schemas.GenerationOptions{
			ForceJSONFormat: true,
			Temperature:     0.3,
		},
	}

	response, err := a.llmClient.Generate(ctx, req)
	if err != nil {
		logger.Error("Error getting remediation suggestions.", zap.Error(err))
		return nil, fmt.Errorf("remediation generation failed: %w", err)
	}

	out, err := llmutil.ParseAndValidate[schemas.SuggestRemediationOutput](response)
	if err != nil {
		logger.Error("Failed to parse LLM response.", zap.Error(err), zap.String("raw_response", response))
		return nil, err
	}
	out.RemediationSuggestions = llmutil.CleanTextOutput(out.RemediationSuggestions)

	logger.Info("Remediation suggestions generated.", zap.Int("length", len(out.RemediationSuggestions)))
	return out, nil
}

// SuggestFor is Suggest over a stored result's raw findings and target.
func (a *Advisor) SuggestFor(ctx context.Context, result schemas.ScanResult) (*schemas.SuggestRemediationOutput, error) {
	return a.Suggest(ctx, schemas.SuggestRemediationInput{
		ScanFindings: result.Findings.Raw,
		Target:       result.Target,
	})
}
