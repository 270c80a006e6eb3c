package cmd

import (
	"github.com/spf13/cobra"
)

var summaryAsJSON bool

// summaryCmd represents the summary command.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Display totals and net income",
	Long: `Display aggregate figures over all transactions.

Shows:
- Total number of transactions
- Total revenue
- Total expenses
- Net income (revenue minus expenses)

Example:
  ledger summary
  ledger summary --json`,
	Args: cobra.NoArgs,
	Run:  runSummary,
}

func init() {
	summaryCmd.Flags().BoolVar(&summaryAsJSON, "json", false, "Print JSON instead of text")
}

func runSummary(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	res := openBackend(cmd.Context(), cfg, false)
	defer res.Cleanup()

	sum, err := res.Service.Summarize(cmd.Context())
	if err != nil {
		res.Cleanup()
		exitOnError(err, "failed to compute summary")
	}

	if summaryAsJSON {
		exitOnError(writeJSON(cmd.OutOrStdout(), sum.Map()), "failed to encode summary")
		return
	}
	writeSummary(cmd.OutOrStdout(), sum)
}
