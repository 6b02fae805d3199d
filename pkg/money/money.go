// Package money provides the exact decimal arithmetic used for every balance,
// commission and loan figure in the ledger.
//
// Invariants:
//   - Currency amounts are decimal.Decimal values at Scale (2) places.
//   - Every scale reduction rounds half-up (half away from zero).
//   - Rates are plain multipliers (0.05); percentages are rates scaled by 100 (5.00).
//   - No binary floating point is used for balance math.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places kept for currency amounts.
const Scale int32 = 2

var (
	// ErrInvalidAmount is returned when a string cannot be parsed as a decimal amount.
	ErrInvalidAmount = fmt.Errorf("invalid amount")

	hundred = decimal.NewFromInt(100)
)

// Zero is the zero amount.
var Zero = decimal.Zero

// Round reduces d to currency scale, rounding half-up.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// ApplyRate multiplies amount by a plain rate (0.05 for 5%) and rounds the
// product to currency scale.
func ApplyRate(amount, rate decimal.Decimal) decimal.Decimal {
	return Round(amount.Mul(rate))
}

// RateToPercentage converts a plain rate (0.05) into its persisted
// percentage form (5.00).
func RateToPercentage(rate decimal.Decimal) decimal.Decimal {
	return Round(rate.Mul(hundred))
}

// PercentageToRate converts a persisted percentage (5.00) back into a plain
// rate (0.05).
func PercentageToRate(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// IsPositive reports whether d is strictly greater than zero.
func IsPositive(d decimal.Decimal) bool {
	return d.Sign() > 0
}

// HasCurrencyScale reports whether d carries no more than Scale decimal
// places of information ("10.50" yes, "10.505" no).
func HasCurrencyScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(Scale))
}

// Parse parses a decimal string such as "150.00". The result is not rounded;
// callers decide when to reduce scale.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// constants and tests.
func MustParse(s string) decimal.Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("money.MustParse(%q): %v", s, err))
	}
	return d
}

// Format renders d at currency scale ("10.50").
func Format(d decimal.Decimal) string {
	return d.StringFixed(Scale)
}
