// -- cmd/results.go --
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

func newResultsCmd(factory service.ComponentFactory) *cobra.Command {
	var params results.QueryParams
	var out outputOptions

	resultsCmd := &cobra.Command{
		Use:   "results",
		Short: "List scan results, filtered and sorted",
		Long: `Lists scan results with their risk tier. Date bounds are exclusive and may be
given as RFC 3339 timestamps or YYYY-MM-DD dates. Results are most recent first
unless --sort and --dir say otherwise.`,
		Example: `  scanlens results --from 2024-05-01 --sort riskScore --dir desc
  scanlens results --status Running,Pending -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runResults(ctx, observability.GetLogger(), cfg, factory, params, out, cmd.OutOrStdout())
		},
	}

	f := resultsCmd.Flags()
	f.StringVar(&params.From, "from", "", "Only results created after this time (exclusive)")
	f.StringVar(&params.To, "to", "", "Only results created before this time (exclusive)")
	f.StringVar(&params.SortKey, "sort", "", "Sort key: target, riskScore or createdAt (default createdAt)")
	f.StringVar(&params.SortDir, "dir", "", "Sort direction: asc or desc (default desc)")
	f.StringSliceVar(&params.Statuses, "status", nil, "Only results with these statuses")
	f.StringSliceVar(&params.ScanTypes, "type", nil, "Only results of these scan types")
	f.StringVar(&params.MinTier, "min-tier", "", "Only results at or above this risk tier")
	f.StringVar(&params.Target, "target", "", "Only results whose target contains this text")
	out.register(resultsCmd)

	return resultsCmd
}

// runResults validates the query, loads every result and renders the ranked list.
func runResults(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.Interface,
	factory service.ComponentFactory,
	params results.QueryParams,
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
	query, err := params.Build()
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
	ranked := results.Rank(query.Run(all))
	logger.Debug("Query complete.", zap.Int("total", len(all)), zap.Int("matched", len(ranked)))

	return render(out, w, now, func(r reporting.Reporter) error {
		return r.WriteResults(ranked)
	})
}
