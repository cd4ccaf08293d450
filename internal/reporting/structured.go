package reporting

import (
	"errors"
	"io"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/results"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// resultView pairs a result with its summary for the structured formats.
type resultView struct {
	Result  schemas.ScanResult   `json:"result" yaml:"result"`
	Summary *schemas.ScanSummary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

type remediationView struct {
	ResultID               string `json:"result_id" yaml:"result_id"`
	RemediationSuggestions string `json:"remediation_suggestions" yaml:"remediation_suggestions"`
}

// encoder is the part of the JSON and YAML encoders the structured reporter needs.
type encoder interface {
	Encode(v any) error
}

// structuredReporter writes each value as one document through an encoder.
type structuredReporter struct {
	writer  io.WriteCloser
	enc     encoder
	closeFn func() error
}

func newJSONReporter(w io.WriteCloser) *structuredReporter {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &structuredReporter{writer: w, enc: enc}
}

func newYAMLReporter(w io.WriteCloser) *structuredReporter {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	return &structuredReporter{writer: w, enc: enc, closeFn: enc.Close}
}

func (r *structuredReporter) WriteResults(rs []results.RankedResult) error {
	if rs == nil {
		rs = []results.RankedResult{}
	}
	return r.enc.Encode(rs)
}

func (r *structuredReporter) WriteResult(res schemas.ScanResult, summary *schemas.ScanSummary) error {
	return r.enc.Encode(resultView{Result: res, Summary: summary})
}

func (r *structuredReporter) WriteDashboard(d schemas.Dashboard) error {
	return r.enc.Encode(d)
}

func (r *structuredReporter) WriteSchedules(s []schemas.ScheduledScan) error {
	if s == nil {
		s = []schemas.ScheduledScan{}
	}
	return r.enc.Encode(s)
}

func (r *structuredReporter) WriteRemediation(resultID string, out schemas.SuggestRemediationOutput) error {
	return r.enc.Encode(remediationView{ResultID: resultID, RemediationSuggestions: out.RemediationSuggestions})
}

func (r *structuredReporter) Close() error {
	var errs []error
	if r.closeFn != nil {
		errs = append(errs, r.closeFn())
	}
	errs = append(errs, r.writer.Close())
	return errors.Join(errs...)
}
