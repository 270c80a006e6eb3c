package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"ledger/internal/storage"
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate up|down",
	Short: "Apply or roll back schema migrations",
	Long: `Apply (up) or roll back (down) the versioned schema migrations.

The up migration creates the same table as "ledger init", so either can be
used on a fresh database.

Example:
  ledger migrate up
  ledger migrate down`,
	ValidArgs: []string{string(storage.MigrateUp), string(storage.MigrateDown)},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run:       runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	direction := storage.Direction(args[0])

	logger.Info("Running migrations", "direction", direction, "driver", cfg.DBDriver)
	exitOnError(storage.RunMigrations(cfg.StoreConfig(), direction), "migration failed")

	fmt.Fprintf(cmd.OutOrStdout(), "Migrations applied (%s)\n", direction)
}
