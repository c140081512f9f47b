package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is the only currency in scope for current deployments.
const DefaultCurrency = "USD"

// ParseAmount parses a decimal string into an exact amount. Amounts must
// always enter the system through a string or another decimal, never
// through a binary float.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// RoundAmount quantizes an amount to 2 fractional digits, rounding a value
// exactly at the midpoint away from zero (10.005 -> 10.01). Idempotent.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// DisplayAmount converts a rounded amount to a float64 for response
// serialization. This is the single place a monetary value may become a
// binary float, and it must only ever receive the output of RoundAmount.
func DisplayAmount(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
