package core

import "github.com/shopspring/decimal"

// Summary aggregates every stored transaction.
type Summary struct {
	TotalTransactions int64
	TotalRevenue      decimal.Decimal
	TotalExpenses     decimal.Decimal
	NetIncome         decimal.Decimal
}

// NewSummary derives NetIncome from the two sums. Both sums are rounded to
// AmountScale first, since backends without a true decimal type (SQLite)
// return float sums.
func NewSummary(count int64, revenue, expenses decimal.Decimal) Summary {
	revenue = revenue.Round(AmountScale)
	expenses = expenses.Round(AmountScale)
	return Summary{
		TotalTransactions: count,
		TotalRevenue:      revenue,
		TotalExpenses:     expenses,
		NetIncome:         revenue.Sub(expenses),
	}
}

// Map renders the summary with plain float values for callers that render
// key/value reports.
func (s Summary) Map() map[string]float64 {
	return map[string]float64{
		"total_transactions": float64(s.TotalTransactions),
		"total_revenue":      s.TotalRevenue.InexactFloat64(),
		"total_expenses":     s.TotalExpenses.InexactFloat64(),
		"net_income":         s.NetIncome.InexactFloat64(),
	}
}
