// File: internal/service/initializers.go
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/scanlens/api/schemas"
	"github.com/xkilldash9x/scanlens/internal/config"
	"github.com/xkilldash9x/scanlens/internal/llmclient"
	"github.com/xkilldash9x/scanlens/internal/mockdata"
	"github.com/xkilldash9x/scanlens/internal/store"
)

// InitializeSource opens the result source selected by data.source. The mock
// data set is anchored at now.
func InitializeSource(ctx context.Context, cfg config.Interface, now time.Time, logger *zap.Logger) (schemas.ResultSource, error) {
	data := cfg.Data()
	switch data.Source {
	case config.DataSourceMock, "":
		logger.Info("Serving the built-in demonstration data set.")
		src, err := store.NewMemoryStore(mockdata.ScanResults(now), mockdata.ScheduledScans(now))
		if err != nil {
			return nil, fmt.Errorf("failed to load mock data: %w", err)
		}
		return src, nil

	case config.DataSourceFile:
		src, err := store.LoadFile(data.FilePath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to load scan data file: %w", err)
		}
		return src, nil

	case config.DataSourcePostgres:
		db := cfg.Database()
		if db.URL == "" {
			return nil, fmt.Errorf("database URL is not configured (hint: check SCANLENS_DATABASE_URL)")
		}
		src, err := store.Connect(ctx, db.URL, db.ConnectTimeout, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database store: %w", err)
		}
		logger.Info("Database connection established.")
		return src, nil
	}
	return nil, fmt.Errorf("unsupported data source: %s", data.Source)
}

// InitializeLLMClient creates the tiered LLM client from the configuration.
func InitializeLLMClient(ctx context.Context, cfg config.AgentConfig, logger *zap.Logger) (schemas.LLMClient, error) {
	llmClient, err := llmclient.NewClient(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize LLM client. Features requiring analysis will fail.", zap.Error(err))
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	return llmClient, nil
}
