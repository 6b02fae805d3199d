package commands

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanApplication requests a loan paid into AccountID. Document is required
// when a teller files the request for a customer.
type LoanApplication struct {
	ActorID   uuid.UUID       `validate:"required"`
	Document  string          `validate:"omitempty,max=20"`
	AccountID uuid.UUID       `validate:"required"`
	Amount    decimal.Decimal `validate:"amount"`
	Notes     string          `validate:"max=500"`
}

// LoanPayment pays Amount of a loan from AccountID. An empty Reference
// defaults to "Loan payment #<loan id>".
type LoanPayment struct {
	ActorID   uuid.UUID       `validate:"required"`
	LoanID    uuid.UUID       `validate:"required"`
	AccountID uuid.UUID       `validate:"required"`
	Amount    decimal.Decimal `validate:"amount"`
	Reference string          `validate:"max=255"`
}
