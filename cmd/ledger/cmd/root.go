// Package cmd provides CLI commands for ledger.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ledger/internal/backend"
	"ledger/internal/cli"
	"ledger/internal/config"
	"ledger/internal/log"
)

var (
	cfgFile string
	debug   bool

	logger *log.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Record and report revenue and expense transactions",
	Long: `ledger stores financial transactions in a single database table
and reports on them.

It supports:
- Creating the transactions table (init) or migrating it (migrate)
- Recording revenue and expenses with a generated ID
- Listing transactions filtered by type and sorted by any column
- Summarizing totals and net income
- Publishing and watching "transaction recorded" events over AMQP

Database settings come from DB_HOST, DB_NAME, DB_USER, DB_PASSWORD and
DB_PORT (or DB_DRIVER=sqlite with SQLITE_DB_PATH).

Example:
  ledger init
  ledger add --type Revenue --amount 1200.00 --description "Invoice 42"
  ledger list --type Expense --sort-by amount --order DESC
  ledger summary`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := cli.LoadEnvFile(getConfigFile()...); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		level := config.Load().LogLevel
		if debug {
			level = "debug"
		}

		l, err := cli.SetupLogger(os.Stderr, level)
		if err != nil {
			// Validation reports the bad level; keep logging at info meanwhile.
			l, _ = cli.SetupLogger(os.Stderr, "info")
		}
		logger = l
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "env file to load (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(watchCmd)
}

// Helper function to get the env files to load.
func getConfigFile() []string {
	if cfgFile != "" {
		return []string{cfgFile}
	}
	return nil // Will use default .env loading
}

// loadConfig loads and validates configuration, exiting on failure.
func loadConfig() *config.Config {
	cfg, err := cli.LoadAndValidateConfig(logger)
	exitOnError(err, "invalid configuration")
	return cfg
}

// openBackend connects the ledger service described by cfg.
func openBackend(ctx context.Context, cfg *config.Config, ensureSchema bool) *backend.BackendResult {
	bcfg, err := backend.FromAppConfig(cfg)
	exitOnError(err, "invalid backend configuration")
	bcfg.EnsureSchema = ensureSchema

	res, err := backend.NewFactory(logger).CreateBackend(ctx, bcfg)
	exitOnError(err, "failed to connect to the database")
	return res
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		if logger != nil {
			logger.Error(msg, log.FieldError, err)
		}
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
