package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the transactions table if it does not exist",
	Long: `Create the transactions table if it does not exist.

Running it again on an initialized database is a no-op.

Example:
  ledger init`,
	Args: cobra.NoArgs,
	Run:  runInit,
}

func runInit(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	res := openBackend(cmd.Context(), cfg, true)
	defer res.Cleanup()

	fmt.Fprintln(cmd.OutOrStdout(), "Transactions table is ready")
	logger.Info("Schema ensured", "driver", cfg.DBDriver)
}
