package main

import (
	"fmt"

	"github.com/deppfellow/url-summarizer/internal/config"
	"github.com/deppfellow/url-summarizer/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarizer",
		Short: "URL summary service.",
		Long: `summarizer stores URLs together with a summary record and serves
them over a small JSON API backed by PostgreSQL.

Configuration is read from SUMMARIZER_* environment variables and an
optional .env file.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newEmailPreviewCmd(),
	)

	return cmd
}

// bootstrap loads the configuration and builds the application logger.
func bootstrap() (*config.Config, *logger.LoggerService, *zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, nil, nil, err
	}

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, &log, nil
}
