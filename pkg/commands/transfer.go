package commands

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer moves money between two accounts. Document identifies the holder
// of the source account when a teller executes it.
type Transfer struct {
	ActorID       uuid.UUID       `validate:"required"`
	FromAccountID uuid.UUID       `validate:"required"`
	ToAccountID   uuid.UUID       `validate:"required"`
	Document      string          `validate:"omitempty,max=20"`
	Amount        decimal.Decimal `validate:"amount"`
	Reference     string          `validate:"max=255"`
}
