// internal/reporting/reporter.go
package reporting

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/results"
)

// Supported output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Reporter renders query engine output.
type Reporter interface {
	// WriteResults renders a ranked result list in the order given.
	WriteResults(rs []results.RankedResult) error
	// WriteResult renders a single result, with its summary when one is available.
	WriteResult(r schemas.ScanResult, summary *schemas.ScanSummary) error
	WriteDashboard(d schemas.Dashboard) error
	WriteSchedules(s []schemas.ScheduledScan) error
	WriteRemediation(resultID string, out schemas.SuggestRemediationOutput) error
	// Close flushes the report and closes any underlying file.
	Close() error
}

// Option tunes a Reporter.
type Option func(*options)

type options struct {
	now   time.Time
	color *bool
}

// WithClock fixes the reference time used for relative ages.
func WithClock(now time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithColor forces terminal colors on or off. By default they are used only
// when writing to a terminal on stdout.
func WithColor(enabled bool) Option {
	return func(o *options) { o.color = &enabled }
}

// nopWriteCloser wraps an io.Writer and provides a no-op Close method.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error {
	return nil
}

// New creates a new reporter based on the specified format and output path.
// An empty path or "stdout" writes to standard output.
func New(format, outputPath string, opts ...Option) (Reporter, error) {
	if !validFormat(format) {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	var writer io.WriteCloser
	isStdOut := outputPath == "" || outputPath == "stdout"
	if isStdOut {
		// Wrap Stdout so Close() is a no-op.
		writer = &nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		writer = f
	}

	if isStdOut {
		opts = append([]Option{WithColor(!color.NoColor)}, opts...)
	}
	return NewWithWriter(format, writer, opts...)
}

// NewWithWriter creates a reporter over an existing writer. The reporter takes
// ownership of w and closes it on Close.
func NewWithWriter(format string, w io.WriteCloser, opts ...Option) (Reporter, error) {
	o := options{now: time.Now()}
	for _, opt := range opts {
		opt(&o)
	}

	switch format {
	case FormatTable:
		return newTableReporter(w, o.now, o.color != nil && *o.color), nil
	case FormatJSON:
		return newJSONReporter(w), nil
	case FormatYAML:
		return newYAMLReporter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func validFormat(format string) bool {
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return true
	}
	return false
}
