// Package core provides money parsing and handling utilities.
//
// Amounts are stored as DECIMAL(10,2), so every value must fit in eight
// integer digits and two fractional digits. The sign is kept as given; whether
// a row adds or subtracts is decided by its type.
package core

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const (
	// AmountScale is the number of fractional digits the amount column keeps.
	AmountScale = 2
	// AmountPrecision is the total number of digits the amount column keeps.
	AmountPrecision = 10
)

var maxAmount = decimal.New(1, AmountPrecision-AmountScale)

// ParseAmount converts user input into a decimal amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and an
// optional leading sign. Unlike the rounding used for display, input with more
// than two fractional digits is rejected rather than silently rounded.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34, nil
//	ParseAmount("12,3")   -> 12.3, nil
//	ParseAmount("-40")    -> -40, nil
//	ParseAmount("12.345") -> error
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 || digits == "" || digits == "." {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	dots := 0
	for _, r := range digits {
		if r == '.' {
			dots++
			continue
		}
		if !unicode.IsDigit(r) {
			return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
	}
	if dots > 1 {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ValidateAmount reports whether d is representable as DECIMAL(10,2).
func ValidateAmount(d decimal.Decimal) error {
	if !d.Equal(d.Round(AmountScale)) {
		return fmt.Errorf("%w: %s has more than %d fractional digits", ErrInvalidAmount, d, AmountScale)
	}
	if d.Abs().GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("%w: %s exceeds DECIMAL(%d,%d)", ErrInvalidAmount, d, AmountPrecision, AmountScale)
	}
	return nil
}

// FormatAmount renders d with exactly two fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountScale)
}
