package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestQueryOptionsNormalize(t *testing.T) {
	tests := []struct {
		name    string
		in      QueryOptions
		want    QueryOptions
		wantErr error
	}{
		{
			name: "defaults",
			in:   QueryOptions{},
			want: QueryOptions{SortOrder: SortAsc},
		},
		{
			name: "All means no filter",
			in:   QueryOptions{FilterType: " All "},
			want: QueryOptions{SortOrder: SortAsc},
		},
		{
			name: "lowercase all is a literal filter",
			in:   QueryOptions{FilterType: "all"},
			want: QueryOptions{FilterType: "all", SortOrder: SortAsc},
		},
		{
			name: "unknown filter passes through",
			in:   QueryOptions{FilterType: "Transfer"},
			want: QueryOptions{FilterType: "Transfer", SortOrder: SortAsc},
		},
		{
			name: "case folding",
			in:   QueryOptions{FilterType: "Expense", SortBy: "Amount", SortOrder: "desc"},
			want: QueryOptions{FilterType: "Expense", SortBy: "amount", SortOrder: SortDesc},
		},
		{
			name:    "unknown column",
			in:      QueryOptions{SortBy: "amount; DROP TABLE transactions"},
			wantErr: ErrInvalidSortColumn,
		},
		{
			name:    "unknown direction",
			in:      QueryOptions{SortBy: "amount", SortOrder: "ASC, type"},
			wantErr: ErrInvalidSortOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Normalize()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	s := NewSummary(3, decimal.RequireFromString("125.50"), decimal.RequireFromString("40.00"))
	if !s.NetIncome.Equal(decimal.RequireFromString("85.50")) {
		t.Fatalf("expected net income 85.50, got %s", s.NetIncome)
	}

	m := s.Map()
	want := map[string]float64{
		"total_transactions": 3,
		"total_revenue":      125.5,
		"total_expenses":     40,
		"net_income":         85.5,
	}
	for k, v := range want {
		if m[k] != v {
			t.Errorf("%s = %v, want %v", k, m[k], v)
		}
	}

	zero := NewSummary(0, decimal.Zero, decimal.Zero).Map()
	if len(zero) != 4 || zero["net_income"] != 0 {
		t.Fatalf("expected four zero keys, got %v", zero)
	}
}
