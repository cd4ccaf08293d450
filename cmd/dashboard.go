// -- cmd/dashboard.go --
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/internal/config"
	"github.com/xkilldash9x/scanlens/internal/observability"
	"github.com/xkilldash9x/scanlens/internal/reporting"
	"github.com/xkilldash9x/scanlens/internal/results"
	"github.com/xkilldash9x/scanlens/internal/service"
)

func newDashboardCmd(factory service.ComponentFactory) *cobra.Command {
	var out outputOptions

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the headline statistics and the weekly activity series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runDashboard(ctx, observability.GetLogger(), cfg, factory, out, cmd.OutOrStdout())
		},
	}
	out.register(dashboardCmd)
	return dashboardCmd
}

// runDashboard aggregates every result relative to the reference time.
func runDashboard(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.Interface,
	factory service.ComponentFactory,
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

	components, err := factory.Create(ctx, cfg, logger, service.Options{Now: now, LLM: service.LLMNone})
	if err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}
	defer components.Shutdown()

	all, err := components.Source.ListScanResults(ctx)
	if err != nil {
		return fmt.Errorf("failed to load scan results: %w", err)
	}
	dashboard := results.Aggregate(all, now)

	return render(out, w, now, func(r reporting.Reporter) error {
		return r.WriteDashboard(dashboard)
	})
}
