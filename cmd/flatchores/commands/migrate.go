package commands

import (
	"errors"
	"fmt"

	"github.com/deppfellow/flatchores/internal/database"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		if cfg.UsesMemoryStore() {
			return errors.New("the memory store driver has no schema to migrate")
		}

		if err := database.Migrate(cmd.Context(), log, cfg); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}

		return nil
	},
}
