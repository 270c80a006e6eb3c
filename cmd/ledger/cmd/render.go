package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"ledger/internal/amqp"
	"ledger/internal/core"
)

func writeTransactions(w io.Writer, rows []core.Transaction) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No transactions found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tAMOUNT\tDESCRIPTION")
	for _, t := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Date, t.Type, core.FormatAmount(t.Amount), t.Description)
	}
	tw.Flush()
}

func writeSummary(w io.Writer, s core.Summary) {
	fmt.Fprintln(w, "\n=== Ledger Summary ===")
	fmt.Fprintf(w, "Total transactions: %d\n", s.TotalTransactions)
	fmt.Fprintf(w, "Total revenue:      %s\n", core.FormatAmount(s.TotalRevenue))
	fmt.Fprintf(w, "Total expenses:     %s\n", core.FormatAmount(s.TotalExpenses))
	fmt.Fprintf(w, "Net income:         %s\n", core.FormatAmount(s.NetIncome))
	fmt.Fprintln(w)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatEvent(m *amqp.TransactionRecordedMessage) string {
	return fmt.Sprintf("%s  %-7s  %10s  %s", m.Date, m.Type, m.Amount, m.ID)
}
