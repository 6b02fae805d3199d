package loan

import (
	"fmt"
	"time"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrLoanNotFound is returned when a loan id does not exist.
	ErrLoanNotFound = fmt.Errorf("%w: loan not found", domain.ErrNotFound)
	// ErrLoanClosed is returned when paying a loan that is already paid off.
	ErrLoanClosed = fmt.Errorf("%w: loan is paid off", domain.ErrInvalidState)
	// ErrAlreadyFunded is returned when an application already has a loan.
	ErrAlreadyFunded = fmt.Errorf("%w: application already funded", domain.ErrInvalidState)
	// ErrPaymentNotPositive is returned for a zero or negative payment.
	ErrPaymentNotPositive = fmt.Errorf("%w: payment must be positive", domain.ErrInvalidArgument)
	// ErrPaymentExceedsBalance is returned when a payment is larger than the remaining balance.
	ErrPaymentExceedsBalance = fmt.Errorf("%w: payment exceeds remaining balance", domain.ErrInvalidArgument)
	// ErrNotCustomerLoan is returned when funding an application whose holder is not a customer.
	ErrNotCustomerLoan = fmt.Errorf("%w: loans are only granted to customers", domain.ErrInvalidState)
	// ErrNotBorrower is returned when a customer pays a loan that is not theirs.
	ErrNotBorrower = fmt.Errorf("%w: only the borrower or a teller may pay this loan", domain.ErrForbidden)
)

// Status is the lifecycle state of a loan.
type Status string

const (
	StatusActive Status = "active"
	// StatusCancelled means paid off; there is no early termination.
	StatusCancelled Status = "cancelled"
)

// Loan is a funded loan. RemainingBalance starts at Amount and never grows;
// the loan becomes cancelled once it reaches zero.
type Loan struct {
	ID               uuid.UUID
	ApplicationID    uuid.UUID
	CustomerID       uuid.UUID
	DestAccountID    uuid.UUID
	ApprovedBy       uuid.UUID
	Amount           decimal.Decimal
	AnnualRate       decimal.Decimal
	RemainingBalance decimal.Decimal
	TermYears        int
	Installment      decimal.Decimal
	ApprovedAt       time.Time
	MaturityDate     time.Time
	NextPayment      time.Time
	Status           Status
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Fund creates the loan for an approved application from a fresh quote.
func Fund(app *Application, q Quote, approvedBy uuid.UUID, now time.Time) (*Loan, error) {
	if err := app.EnsureFundable(); err != nil {
		return nil, err
	}
	today := Date(now)
	amount := money.Round(app.Amount)
	return &Loan{
		ID:               uuid.New(),
		ApplicationID:    app.ID,
		CustomerID:       app.CustomerID,
		DestAccountID:    app.DestAccountID,
		ApprovedBy:       approvedBy,
		Amount:           amount,
		AnnualRate:       q.AnnualRate,
		RemainingBalance: amount,
		TermYears:        q.TermYears(),
		Installment:      q.Installment,
		ApprovedAt:       now,
		MaturityDate:     today.AddDate(q.TermYears(), 0, 0),
		NextPayment:      FirstOfNextMonth(today),
		Status:           StatusActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// IsPaidOff reports whether the loan has been cancelled by full payment.
func (l *Loan) IsPaidOff() bool {
	return l.Status == StatusCancelled
}

// CheckPayment validates amount against the loan without changing it.
func (l *Loan) CheckPayment(amount decimal.Decimal) error {
	if l.IsPaidOff() {
		return ErrLoanClosed
	}
	if !money.IsPositive(amount) {
		return ErrPaymentNotPositive
	}
	if amount.GreaterThan(l.RemainingBalance) {
		return fmt.Errorf("%w: %s > %s", ErrPaymentExceedsBalance,
			money.Format(amount), money.Format(l.RemainingBalance))
	}
	return nil
}

// ApplyPayment reduces the remaining balance, advances the next payment date
// and cancels the loan when nothing is left. It reports whether this payment
// paid the loan off.
func (l *Loan) ApplyPayment(amount decimal.Decimal, now time.Time) (bool, error) {
	if err := l.CheckPayment(amount); err != nil {
		return false, err
	}
	l.RemainingBalance = money.Round(l.RemainingBalance.Sub(amount))
	base := l.NextPayment
	if base.IsZero() {
		base = Date(now)
	}
	l.NextPayment = FirstOfNextMonth(base)
	l.UpdatedAt = now
	if l.RemainingBalance.Sign() <= 0 {
		l.Status = StatusCancelled
		return true, nil
	}
	return false, nil
}

// Date truncates t to midnight UTC of its calendar day.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FirstOfNextMonth returns the first day of the month after t.
func FirstOfNextMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+1, 1, 0, 0, 0, 0, t.Location())
}
