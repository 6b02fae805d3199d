// Package commission computes and records the fee a collaborator earns on
// deposits and withdrawals executed on behalf of a customer.
package commission

import (
	"fmt"
	"time"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rate is the collaborator commission multiplier (5%).
var Rate = decimal.RequireFromString("0.05")

// ErrCommissionNotFound is returned when a commission id does not exist.
var ErrCommissionNotFound = fmt.Errorf("%w: commission not found", domain.ErrNotFound)

// Status is the settlement state of a commission.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Compute returns the commission owed on amount, rounded to currency scale.
func Compute(amount decimal.Decimal) decimal.Decimal {
	return money.ApplyRate(amount, Rate)
}

// Commission is the payable record tied 1:1 to a commission-bearing
// transaction. Percentage is stored scaled (5.00 for 5%).
type Commission struct {
	ID             uuid.UUID
	CollaboratorID uuid.UUID
	TransactionID  uuid.UUID
	Amount         decimal.Decimal
	Percentage     decimal.Decimal
	Status         Status
	CreatedAt      time.Time
}

// New creates a pending commission for the given transaction.
func New(collaboratorID, transactionID uuid.UUID, amount decimal.Decimal, now time.Time) (*Commission, error) {
	if collaboratorID == uuid.Nil || transactionID == uuid.Nil {
		return nil, fmt.Errorf("%w: collaborator and transaction are required", domain.ErrInvalidArgument)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: commission cannot be negative", domain.ErrInvalidArgument)
	}
	return &Commission{
		ID:             uuid.New(),
		CollaboratorID: collaboratorID,
		TransactionID:  transactionID,
		Amount:         money.Round(amount),
		Percentage:     money.RateToPercentage(Rate),
		Status:         StatusPending,
		CreatedAt:      now,
	}, nil
}
