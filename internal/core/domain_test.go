package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseTransactionType(t *testing.T) {
	cases := []struct {
		in   string
		want TransactionType
		ok   bool
	}{
		{"Revenue", Revenue, true},
		{"expense", Expense, true},
		{" EXPENSE ", Expense, true},
		{"Transfer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseTransactionType(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.want, got, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidType) {
			t.Fatalf("%q expected ErrInvalidType, got %v", tc.in, err)
		}
	}
}

func TestDateScan(t *testing.T) {
	want := NewDate(2025, 3, 9)
	cases := []struct {
		name string
		src  any
	}{
		{"time", time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)},
		{"text", "2025-03-09"},
		{"bytes", []byte("2025-03-09")},
		{"sqlite timestamp", "2025-03-09 00:00:00+00:00"},
		{"rfc3339", "2025-03-09T00:00:00Z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d Date
			if err := d.Scan(tc.src); err != nil {
				t.Fatalf("scan: %v", err)
			}
			if !d.Equal(want) {
				t.Fatalf("expected %s, got %s", want, d)
			}
		})
	}

	var d Date
	if err := d.Scan(42); err == nil {
		t.Fatalf("expected error scanning int")
	}
	if err := d.Scan("yesterday"); err == nil {
		t.Fatalf("expected error scanning garbage")
	}
}

func TestDateValue(t *testing.T) {
	v, err := NewDate(2025, 12, 31).Value()
	if err != nil || v != "2025-12-31" {
		t.Fatalf("expected 2025-12-31, got %v (err=%v)", v, err)
	}
	v, err = Date{}.Value()
	if err != nil || v != nil {
		t.Fatalf("expected nil for zero date, got %v (err=%v)", v, err)
	}
}

func TestTransactionJSON(t *testing.T) {
	tx := Transaction{
		ID:     "abc",
		Date:   NewDate(2025, 1, 2),
		Amount: decimal.RequireFromString("10.50"),
		Type:   Revenue,
	}
	b, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["transaction_date"] != "2025-01-02" {
		t.Fatalf("expected plain date, got %v", m["transaction_date"])
	}
	if _, ok := m["description"]; ok {
		t.Fatalf("empty description should be omitted")
	}
}

func TestNewTransactionValidate(t *testing.T) {
	good := NewTransaction{Amount: decimal.RequireFromString("1.25"), Type: Expense}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bad := NewTransaction{Amount: decimal.RequireFromString("1.255"), Type: Expense}
	if err := bad.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}
