package schemas

import (
	"fmt"
	"math"
	"strings"
)

// -- Collaborator Schemas --

// SummarizeScanInput is the request to the Scan Summarizer.
type SummarizeScanInput struct {
	ScanFindings string `json:"scan_findings" jsonschema:"description=The full scan findings including open ports and services and OS guess and vulnerabilities."`
}

// Validate rejects blank findings before any remote call is made.
func (in SummarizeScanInput) Validate() error {
	if strings.TrimSpace(in.ScanFindings) == "" {
		return fmt.Errorf("%w: scan_findings is required", ErrSchemaValidationFailed)
	}
	return nil
}

// SummarizeScanOutput is the Scan Summarizer's structured answer.
type SummarizeScanOutput struct {
	RiskScore   float64 `json:"risk_score" jsonschema:"minimum=0,maximum=100,description=Numerical risk score from 0 to 100. Higher means greater risk."`
	KeyFindings string  `json:"key_findings" jsonschema:"description=A summary of the most important scan findings."`
}

// Validate checks the model's answer against the declared shape.
func (out SummarizeScanOutput) Validate() error {
	if math.IsNaN(out.RiskScore) || out.RiskScore < 0 || out.RiskScore > 100 {
		return fmt.Errorf("%w: risk_score %v outside [0,100]", ErrSchemaValidationFailed, out.RiskScore)
	}
	if strings.TrimSpace(out.KeyFindings) == "" {
		return fmt.Errorf("%w: key_findings is empty", ErrSchemaValidationFailed)
	}
	return nil
}

// Score rounds the model's risk score to the integer scale used by ScanResult.
func (out SummarizeScanOutput) Score() int {
	return int(math.Round(out.RiskScore))
}

// SuggestRemediationInput is the request to the Remediation Advisor.
type SuggestRemediationInput struct {
	ScanFindings string `json:"scan_findings" jsonschema:"description=The findings from the security scan including vulnerabilities and open ports."`
	Target       string `json:"target" jsonschema:"description=The target IP or domain or CIDR range of the scan."`
}

// Validate rejects blank findings or target before any remote call is made.
func (in SuggestRemediationInput) Validate() error {
	if strings.TrimSpace(in.ScanFindings) == "" {
		return fmt.Errorf("%w: scan_findings is required", ErrSchemaValidationFailed)
	}
	if strings.TrimSpace(in.Target) == "" {
		return fmt.Errorf("%w: target is required", ErrSchemaValidationFailed)
	}
	return nil
}

// SuggestRemediationOutput is the Remediation Advisor's structured answer.
type SuggestRemediationOutput struct {
	RemediationSuggestions string `json:"remediation_suggestions" jsonschema:"description=A list of suggested remediation actions to mitigate the identified vulnerabilities."`
}

// Validate checks the model's answer against the declared shape.
func (out SuggestRemediationOutput) Validate() error {
	if strings.TrimSpace(out.RemediationSuggestions) == "" {
		return fmt.Errorf("%w: remediation_suggestions is empty", ErrSchemaValidationFailed)
	}
	return nil
}

// SummarySource records where a ScanSummary's content came from.
type SummarySource string

const (
	SummaryStored    SummarySource = "stored"    // The result's own RiskScore and Summary.
	SummaryGenerated SummarySource = "generated" // Produced by the summarizer.
)

// ScanSummary is the detail-page view of a result's risk, with the fallback
// already applied.
type ScanSummary struct {
	ResultID    string        `json:"result_id" yaml:"result_id"`
	RiskScore   int           `json:"risk_score" yaml:"risk_score"`
	RiskTier    RiskTier      `json:"risk_tier" yaml:"risk_tier"`
	KeyFindings string        `json:"key_findings" yaml:"key_findings"`
	Source      SummarySource `json:"source" yaml:"source"`
	// AnalysisFailed is set when the summarizer was attempted and failed; the
	// stored summary is then shown with Message explaining why.
	AnalysisFailed bool   `json:"analysis_failed" yaml:"analysis_failed"`
	Message        string `json:"message,omitempty" yaml:"message,omitempty"`
}
