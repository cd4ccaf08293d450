// -- cmd/remediate.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/internal/advisor"
	"github.com/xkilldash9x/scanlens/internal/config"
	"github.com/xkilldash9x/scanlens/internal/observability"
	"github.com/xkilldash9x/scanlens/internal/reporting"
	"github.com/xkilldash9x/scanlens/internal/service"
)

func newRemediateCmd(factory service.ComponentFactory) *cobra.Command {
	var out outputOptions

	remediateCmd := &cobra.Command{
		Use:   "remediate <result-id>",
		Short: "Ask the Remediation Advisor how to fix a scan result's findings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			return runRemediate(ctx, observability.GetLogger(), cfg, factory, args[0], out, cmd.OutOrStdout())
		},
	}
	out.register(remediateCmd)
	return remediateCmd
}

func runRemediate(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.Interface,
	factory service.ComponentFactory,
	id string,
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

	components, err := factory.Create(ctx, cfg, logger, service.Options{Now: now, LLM: service.LLMRequired})
	if err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}
	defer components.Shutdown()

	result, err := lookupResult(ctx, components.Source, id)
	if err != nil {
		return err
	}

	suggestion, err := components.Advisor.SuggestFor(ctx, *result)
	if err != nil {
		logger.Debug("Remediation failed.", zap.String("result_id", id), zap.Error(err))
		if errors.Is(err, context.Canceled) {
			return err
		}
		return fmt.Errorf("%s: %w", advisor.UserMessage(err), err)
	}

	return render(out, w, now, func(r reporting.Reporter) error {
		return r.WriteRemediation(id, *suggestion)
	})
}
