// -- cmd/output.go --
package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/scanlens/internal/reporting"
	"github.com/xkilldash9x/scanlens/internal/results"
)

// outputOptions are the rendering flags shared by every read command.
type outputOptions struct {
	Format  string
	File    string
	NoColor bool
	// Now overrides the reference time for relative ages, the dashboard window
	// and the built-in mock data. RFC 3339 or YYYY-MM-DD.
	Now string
}

func (o *outputOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Format, "output", "o", reporting.FormatTable, "Output format: table, json or yaml")
	cmd.Flags().StringVar(&o.File, "file", "", "Write the report to this file instead of stdout")
	cmd.Flags().BoolVar(&o.NoColor, "no-color", false, "Disable colored table output")
	cmd.Flags().StringVar(&o.Now, "now", "", "Reference time (RFC 3339 or YYYY-MM-DD); defaults to the current time")
}

// referenceTime resolves --now, falling back to the wall clock.
func (o outputOptions) referenceTime() (time.Time, error) {
	if o.Now == "" {
		return time.Now(), nil
	}
	t, err := results.ParseTime(o.Now)
	if err != nil {
		return time.Time{}, fmt.Errorf("--now: %w", err)
	}
	return t, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// newReporter renders to --file when set and to w otherwise. Colors are used
// only on a real stdout that supports them.
func newReporter(o outputOptions, w io.Writer, now time.Time) (reporting.Reporter, error) {
	if o.File != "" {
		return reporting.New(o.Format, o.File, reporting.WithClock(now), reporting.WithColor(false))
	}
	colorize := w == os.Stdout && !color.NoColor && !o.NoColor
	return reporting.NewWithWriter(o.Format, nopCloser{w}, reporting.WithClock(now), reporting.WithColor(colorize))
}

// render opens a reporter, runs write against it and closes it, keeping the
// first error.
func render(o outputOptions, w io.Writer, now time.Time, write func(reporting.Reporter) error) (err error) {
	reporter, err := newReporter(o, w, now)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := reporter.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to finalize report: %w", cerr)
		}
	}()
	return write(reporter)
}

// validateFormat rejects an unknown --output before any component is built.
func validateFormat(format string) error {
	switch format {
	case reporting.FormatTable, reporting.FormatJSON, reporting.FormatYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format: %s", format)
}
