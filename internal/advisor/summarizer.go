package advisor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/llmutil"
	"github.com/xkilldash9x/scanlens/internal/results"
)

// Summarizer turns raw scanner output into a risk score and a short summary
// using an LLM. Each call makes exactly one remote request.
type Summarizer struct {
	logger    *zap.Logger
	llmClient schemas.LLMClient
}

// NewSummarizer initializes the scan summarization service.
func NewSummarizer(logger *zap.Logger, llmClient schemas.LLMClient) *Summarizer {
	return &Summarizer{
		logger:    logger.Named("summarizer"),
		llmClient: llmClient,
	}
}

// Summarize asks the model for a risk score and key findings. Blank input is
// rejected before any call; a malformed or out-of-range answer wraps
// schemas.ErrSchemaValidationFailed and a transport failure wraps
// schemas.ErrRemoteCallFailed.
func (s *Summarizer) Summarize(ctx context.Context, in schemas.SummarizeScanInput) (*schemas.SummarizeScanOutput, error) {
	if err := in.Validate(); err != nil {
		return nil, &InputError{Err: err}
	}

	logger := s.logger.With(zap.String("request_id", uuid.NewString()))
	logger.Debug("Requesting scan summary.", zap.Int("findings_bytes", len(in.ScanFindings)))

	req := schemas.GenerationRequest{
		SystemPrompt: summarizerSystemPrompt,
		UserPrompt:   summarizePrompt(in),
		Tier:         schemas.TierFast,
		Options: schemas.GenerationOptions{
			ForceJSONFormat: true,
			Temperature:     0.2,
		},
	}

	response, err := s.llmClient.Generate(ctx, req)
	if err != nil {
		logger.Warn("Summary generation failed.", zap.Error(err))
		return nil, fmt.Errorf("scan summary generation failed: %w", err)
	}

	out, err := llmutil.ParseAndValidate[schemas.SummarizeScanOutput](response)
	if err != nil {
		logger.Error("Failed to parse LLM response.", zap.Error(err), zap.String("raw_response", response))
		return nil, err
	}

	logger.Info("Scan summary generated.", zap.Float64("risk_score", out.RiskScore))
	return out, nil
}

// ReportFor builds the detail view of a result's risk. Results without raw
// findings show their stored score and summary. Otherwise the summarizer is
// consulted; if it fails, the stored summary is shown with AnalysisFailed set.
func (s *Summarizer) ReportFor(ctx context.Context, result schemas.ScanResult) schemas.ScanSummary {
	stored := StoredSummary(result)
	if !result.HasRawFindings() {
		return stored
	}

	out, err := s.Summarize(ctx, schemas.SummarizeScanInput{ScanFindings: result.Findings.Raw})
	if err != nil {
		s.logger.Warn("Falling back to stored summary.", zap.String("result_id", result.ID), zap.Error(err))
		stored.AnalysisFailed = true
		stored.Message = MsgSummaryFailed
		return stored
	}

	score := out.Score()
	return schemas.ScanSummary{
		ResultID:    result.ID,
		RiskScore:   score,
		RiskTier:    results.ClassifyRisk(score),
		KeyFindings: out.KeyFindings,
		Source:      schemas.SummaryGenerated,
	}
}

// StoredSummary is the view of a result's own score and summary, used when no
// analysis is requested or possible.
func StoredSummary(result schemas.ScanResult) schemas.ScanSummary {
	return schemas.ScanSummary{
		ResultID:    result.ID,
		RiskScore:   result.RiskScore,
		RiskTier:    results.ClassifyRisk(result.RiskScore),
		KeyFindings: result.Summary,
		Source:      schemas.SummaryStored,
	}
}
