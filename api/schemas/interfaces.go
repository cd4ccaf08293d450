package schemas

import (
	"context"
)

// -- Result Source Interface --

// ResultSource supplies scan results wholesale. Implementations validate records
// at the boundary so the query engine can assume the ScanResult invariants hold.
type ResultSource interface {
	// ListScanResults returns every known result, in source order.
	ListScanResults(ctx context.Context) ([]ScanResult, error)
	// GetScanResult returns a single result, or an error wrapping ErrNotFound.
	GetScanResult(ctx context.Context, id string) (*ScanResult, error)
	// ListScheduledScans returns the configured recurring scans.
	ListScheduledScans(ctx context.Context) ([]ScheduledScan, error)
	// Close releases any resources held by the source.
	Close() error
}

// -- LLM Client Schemas & Interface --

// ModelTier allows for selecting a large language model based on a preference
// for speed versus advanced capabilities.
type ModelTier string

const (
	TierFast     ModelTier = "fast"     // Prefers a faster, potentially less capable model.
	TierPowerful ModelTier = "powerful" // Prefers a more capable, potentially slower model.
)

// GenerationOptions provides detailed parameters to control the text generation
// process of the LLM, such as creativity (temperature) and output format.
type GenerationOptions struct {
	Temperature     float64 `json:"temperature"`       // Controls randomness. Lower is more deterministic.
	ForceJSONFormat bool    `json:"force_json_format"` // If true, forces the model to output valid JSON.
}

// GenerationRequest encapsulates a complete request to the LLM, including the
// system and user prompts, the desired model tier, and generation options.
type GenerationRequest struct {
	SystemPrompt string            `json:"system_prompt"`
	UserPrompt   string            `json:"user_prompt"`
	Tier         ModelTier         `json:"tier"`
	Options      GenerationOptions `json:"options"`
}

// LLMClient defines a standard interface for interacting with a Large Language
// Model, abstracting the specifics of the underlying provider.
type LLMClient interface {
	// Generate produces a text completion based on the provided request.
	Generate(ctx context.Context, req GenerationRequest) (string, error)
	// Close cleans up any resources held by the client.
	Close() error
}
