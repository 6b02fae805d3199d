package commands

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Withdraw debits an account. Document has the same meaning as in Deposit.
type Withdraw struct {
	ActorID   uuid.UUID       `validate:"required"`
	AccountID uuid.UUID       `validate:"required"`
	Document  string          `validate:"omitempty,max=20"`
	Amount    decimal.Decimal `validate:"amount"`
	Reference string          `validate:"max=255"`
}
