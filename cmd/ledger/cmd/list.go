package cmd

import (
	"github.com/spf13/cobra"

	"ledger/internal/core"
)

var (
	listType   string
	listSortBy string
	listOrder  string
	listAsJSON bool
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions",
	Long: `List transactions, optionally filtered by type and sorted by a column.

Sortable columns: transaction_id, transaction_date, description, amount, type.

Example:
  ledger list
  ledger list --type Expense --sort-by amount --order DESC
  ledger list --json`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listType, "type", core.FilterAll, "Filter by type: All, Revenue or Expense")
	listCmd.Flags().StringVar(&listSortBy, "sort-by", "", "Column to sort by")
	listCmd.Flags().StringVar(&listOrder, "order", core.SortAsc, "Sort direction: ASC or DESC")
	listCmd.Flags().BoolVar(&listAsJSON, "json", false, "Print JSON instead of a table")
}

func runList(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	res := openBackend(cmd.Context(), cfg, false)
	defer res.Cleanup()

	rows, err := res.Service.ListTransactions(cmd.Context(), core.QueryOptions{
		FilterType: listType,
		SortBy:     listSortBy,
		SortOrder:  listOrder,
	})
	if err != nil {
		res.Cleanup()
		exitOnError(err, "failed to list transactions")
	}

	if listAsJSON {
		exitOnError(writeJSON(cmd.OutOrStdout(), rows), "failed to encode transactions")
		return
	}
	writeTransactions(cmd.OutOrStdout(), rows)
}
