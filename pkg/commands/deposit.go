package commands

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deposit credits an account. Document is the identity document of the
// account holder and is required when a collaborator or teller acts on
// their behalf; customers depositing into their own account leave it empty.
type Deposit struct {
	ActorID   uuid.UUID       `validate:"required"`
	AccountID uuid.UUID       `validate:"required"`
	Document  string          `validate:"omitempty,max=20"`
	Amount    decimal.Decimal `validate:"amount"`
	Reference string          `validate:"max=255"`
}
