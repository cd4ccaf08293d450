// -- cmd/serve.go --
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/internal/config"
	"github.com/xkilldash9x/scanlens/internal/observability"
	"github.com/xkilldash9x/scanlens/internal/server"
	"github.com/xkilldash9x/scanlens/internal/service"
)

func newServeCmd(factory service.ComponentFactory) *cobra.Command {
	var addr string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API and its live WebSocket feed",
		Long: `Serves the results, dashboard and schedules over HTTP. The summary and
remediation endpoints are enabled when an LLM is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.SetServerListenAddr(addr)
			}
			return runServe(ctx, observability.GetLogger(), cfg, factory)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides server.listen_addr)")
	return serveCmd
}

// runServe blocks until ctx is cancelled, then shuts the API down gracefully.
func runServe(ctx context.Context, logger *zap.Logger, cfg config.Interface, factory service.ComponentFactory) error {
	components, err := factory.Create(ctx, cfg, logger, service.Options{LLM: service.LLMOptional})
	if err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}
	defer components.Shutdown()

	deps := server.Deps{Source: components.Source}
	if components.HasCollaborators() {
		deps.Summarizer = components.Summarizer
		deps.Remediator = components.Advisor
	}

	srv, err := server.New(cfg.Server(), logger, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Run(ctx)
}
