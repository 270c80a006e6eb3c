package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ledger/internal/core"
)

var (
	addType        string
	addAmount      string
	addDescription string
	addDate        string
)

// addCmd represents the add command.
var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a revenue or expense transaction",
	Long: `Record a transaction. The ID is generated and the date defaults to today.

Amounts accept up to two decimal places and may use a comma as the decimal
separator.

Example:
  ledger add --type Revenue --amount 1200.00 --description "Invoice 42"
  ledger add --type Expense --amount 39,90 --date 2025-01-31`,
	Args: cobra.NoArgs,
	Run:  runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addType, "type", "", "Transaction type: Revenue or Expense (required)")
	addCmd.Flags().StringVar(&addAmount, "amount", "", "Amount with at most two decimals (required)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "Free-form description")
	addCmd.Flags().StringVar(&addDate, "date", "", "Transaction date (YYYY-MM-DD), default today")

	addCmd.MarkFlagRequired("type")
	addCmd.MarkFlagRequired("amount")
}

// parseNewTransaction turns the add flags into a transaction to insert.
func parseNewTransaction(txType, amount, description, date string) (core.NewTransaction, error) {
	t, err := core.ParseTransactionType(txType)
	if err != nil {
		return core.NewTransaction{}, err
	}

	amt, err := core.ParseAmount(amount)
	if err != nil {
		return core.NewTransaction{}, err
	}

	var d core.Date
	if strings.TrimSpace(date) != "" {
		if d, err = core.ParseDate(date); err != nil {
			return core.NewTransaction{}, err
		}
	}

	return core.NewTransaction{
		Date:        d,
		Description: strings.TrimSpace(description),
		Amount:      amt,
		Type:        t,
	}, nil
}

func runAdd(cmd *cobra.Command, args []string) {
	in, err := parseNewTransaction(addType, addAmount, addDescription, addDate)
	exitOnError(err, "invalid transaction")

	cfg := loadConfig()
	res := openBackend(cmd.Context(), cfg, false)
	defer res.Cleanup()

	result, err := res.Service.RecordTransaction(cmd.Context(), in)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), result.Message)
		res.Cleanup()
		exitOnError(err, "failed to record transaction")
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	writeTransactions(cmd.OutOrStdout(), []core.Transaction{result.Transaction})
}
