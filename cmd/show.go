// -- cmd/show.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/advisor"
	"github.com/xkilldash9x/scanlens/internal/config"
	"github.com/xkilldash9x/scanlens/internal/observability"
	"github.com/xkilldash9x/scanlens/internal/reporting"
	"github.com/xkilldash9x/scanlens/internal/service"
)

func newShowCmd(factory service.ComponentFactory) *cobra.Command {
	var out outputOptions
	var summarize bool

	showCmd := &cobra.Command{
		Use:   "show <result-id>",
		Short: "Show a single scan result and its risk summary",
		Long: `Shows a scan result in full. With --summarize the raw findings are sent to the
Scan Summarizer; if it fails, the stored summary is shown instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runShow(ctx, observability.GetLogger(), cfg, factory, args[0], summarize, out, cmd.OutOrStdout())
		},
	}
	showCmd.Flags().BoolVar(&summarize, "summarize", false, "Generate a fresh risk summary with the LLM")
	out.register(showCmd)
	return showCmd
}

func runShow(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.Interface,
	factory service.ComponentFactory,
	id string,
	summarize bool,
	out outputOptions,
	w io.Writer,
) error {
	if err := validateFormat(out.Format); err != nil {
		return err
	}
	now, err := out.referenceTime()
	if err != nil {
		return err
	}

	mode := service.LLMNone
	if summarize {
		mode = service.LLMRequired
	}
	components, err := factory.Create(ctx, cfg, logger, service.Options{Now: now, LLM: mode})
	if err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}
	defer components.Shutdown()

	result, err := lookupResult(ctx, components.Source, id)
	if err != nil {
		return err
	}

	var summary schemas.ScanSummary
	if summarize {
		summary = components.Summarizer.ReportFor(ctx, *result)
	} else {
		summary = advisor.StoredSummary(*result)
	}

	return render(out, w, now, func(r reporting.Reporter) error {
		return r.WriteResult(*result, &summary)
	})
}

// lookupResult fetches one result, turning a missing id into a plain message.
func lookupResult(ctx context.Context, source schemas.ResultSource, id string) (*schemas.ScanResult, error) {
	result, err := source.GetScanResult(ctx, id)
	if err != nil {
		if errors.Is(err, schemas.ErrNotFound) {
			return nil, fmt.Errorf("scan result %q not found: %w", id, err)
		}
		return nil, fmt.Errorf("failed to load scan result %q: %w", id, err)
	}
	return result, nil
}
