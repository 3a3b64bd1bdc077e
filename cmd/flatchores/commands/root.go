// Package commands is the flatchores command line: serve the API or run
// the database migrations.
package commands

import (
	"fmt"
	"os"

	"github.com/deppfellow/flatchores/internal/config"
	"github.com/deppfellow/flatchores/internal/logger"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "flatchores",
	Short: "Flat chores API",
	Long: `flatchores serves the REST API for flats, chores and badges.

Configuration is read from FLATCHORES_* environment variables (and a .env
file when present), e.g. FLATCHORES_STORE__DRIVER=memory.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// bootstrap loads the configuration and builds the process logger.
func bootstrap() (*config.Config, *logger.LoggerService, *zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return cfg, loggerService, &log, nil
}
