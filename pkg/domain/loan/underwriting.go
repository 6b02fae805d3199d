// Package loan holds loan underwriting, the application state machine and
// the funded loan aggregate.
package loan

import (
	"fmt"
	"math"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/amirasaad/agribank/pkg/money"
	"github.com/shopspring/decimal"
)

var (
	// ErrAmountNotPositive is returned when the requested amount is not positive.
	ErrAmountNotPositive = fmt.Errorf("%w: requested amount must be positive", domain.ErrInvalidArgument)
	// ErrAmountExceedsMax is returned when the requested amount is above the salary tier cap.
	ErrAmountExceedsMax = fmt.Errorf("%w: requested amount exceeds the maximum for the salary tier", domain.ErrInvalidArgument)
	// ErrUnaffordable is returned when no term keeps the installment within the salary cap.
	ErrUnaffordable = fmt.Errorf("%w: no term makes this loan affordable", domain.ErrInvalidState)
)

var (
	// InstallmentCap is the share of the monthly salary an installment may take.
	InstallmentCap = decimal.RequireFromString("0.30")

	twelve = decimal.NewFromInt(12)
)

// monthlyRatePrecision is the number of decimal places kept for the monthly rate.
const monthlyRatePrecision int32 = 20

// Rule is the loan ceiling and annual rate for a salary tier.
type Rule struct {
	MaxAmount  decimal.Decimal
	AnnualRate decimal.Decimal
}

// tier matches salaries below bound, or equal to it when inclusive.
type tier struct {
	bound     decimal.Decimal
	inclusive bool
	rule      Rule
}

var (
	tiers = []tier{
		{bound: decimal.NewFromInt(365), rule: Rule{decimal.NewFromInt(10000), decimal.RequireFromString("0.03")}},
		{bound: decimal.NewFromInt(600), rule: Rule{decimal.NewFromInt(25000), decimal.RequireFromString("0.03")}},
		{bound: decimal.NewFromInt(1000), inclusive: true, rule: Rule{decimal.NewFromInt(35000), decimal.RequireFromString("0.04")}},
	}
	topRule = Rule{decimal.NewFromInt(50000), decimal.RequireFromString("0.05")}
)

// DetermineRule maps a monthly salary to its tier:
//
//	salary <  365         -> 10000 at 3%
//	365 <= salary <  600  -> 25000 at 3%
//	600 <= salary <= 1000 -> 35000 at 4%
//	salary >  1000        -> 50000 at 5%
func DetermineRule(salary decimal.Decimal) Rule {
	for _, t := range tiers {
		if salary.LessThan(t.bound) || (t.inclusive && salary.Equal(t.bound)) {
			return t.rule
		}
	}
	return topRule
}

// Quote is the outcome of underwriting a requested amount against a salary.
type Quote struct {
	Amount         decimal.Decimal
	AnnualRate     decimal.Decimal
	MonthlyRate    decimal.Decimal
	MaxAmount      decimal.Decimal
	MaxInstallment decimal.Decimal
	Months         int
	Installment    decimal.Decimal
}

// PreviewYears is the term in years rounded half-up to two places, as shown
// on an application (74 months -> 6.17).
func (q Quote) PreviewYears() decimal.Decimal {
	return decimal.NewFromInt(int64(q.Months)).DivRound(twelve, 2)
}

// TermYears is the term in whole years, rounded up, as fixed on a funded
// loan (74 months -> 7).
func (q Quote) TermYears() int {
	return (q.Months + 11) / 12
}

// Underwrite checks amount against the salary tier and finds the shortest
// term whose annuity installment fits within InstallmentCap of salary.
func Underwrite(salary, amount decimal.Decimal) (Quote, error) {
	if salary.Sign() <= 0 {
		return Quote{}, user.ErrInvalidSalary
	}
	if !money.IsPositive(amount) {
		return Quote{}, ErrAmountNotPositive
	}
	rule := DetermineRule(salary)
	if amount.GreaterThan(rule.MaxAmount) {
		return Quote{}, fmt.Errorf("%w: %s > %s", ErrAmountExceedsMax, amount.String(), rule.MaxAmount.String())
	}
	maxInstallment := money.ApplyRate(salary, InstallmentCap)
	monthly := rule.AnnualRate.DivRound(twelve, monthlyRatePrecision)

	months, installment, err := Amortize(amount, monthly, maxInstallment)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Amount:         amount,
		AnnualRate:     rule.AnnualRate,
		MonthlyRate:    monthly,
		MaxAmount:      rule.MaxAmount,
		MaxInstallment: maxInstallment,
		Months:         months,
		Installment:    installment,
	}, nil
}

// Amortize returns the minimal number of months n for which the annuity
// installment amount*r / (1 - (1+r)^-n) does not exceed maxInstallment,
// together with that installment rounded to currency scale. Floating point
// is confined to the logarithm and power terms.
func Amortize(amount, monthlyRate, maxInstallment decimal.Decimal) (int, decimal.Decimal, error) {
	if !money.IsPositive(maxInstallment) {
		return 0, decimal.Zero, ErrUnaffordable
	}
	if monthlyRate.IsZero() {
		n := amount.Div(maxInstallment).Ceil().IntPart()
		if n < 1 {
			n = 1
		}
		installment := amount.DivRound(decimal.NewFromInt(n), money.Scale)
		if installment.GreaterThan(maxInstallment) {
			return 0, decimal.Zero, ErrUnaffordable
		}
		return int(n), installment, nil
	}

	p := amount.InexactFloat64()
	r := monthlyRate.InexactFloat64()
	c := maxInstallment.InexactFloat64()
	term := 1 - p*r/c
	if term <= 0 {
		return 0, decimal.Zero, ErrUnaffordable
	}
	n := int(math.Ceil(-math.Log(term) / math.Log(1+r)))
	if n < 1 {
		n = 1
	}
	factor := 1 - math.Pow(1+r, -float64(n))
	installment := amount.Mul(monthlyRate).DivRound(decimal.NewFromFloat(factor), money.Scale)
	if installment.GreaterThan(maxInstallment) {
		return 0, decimal.Zero, fmt.Errorf("%w: installment %s above cap %s", ErrUnaffordable,
			money.Format(installment), money.Format(maxInstallment))
	}
	return n, installment, nil
}
