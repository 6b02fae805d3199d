package transaction

import (
	"time"

	"github.com/amirasaad/agribank/infra/repository/gormutil"
	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction represents a persisted, immutable ledger movement.
type Transaction struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Type            string            `gorm:"size:32;not null;index"`
	Amount          decimal.Decimal   `gorm:"type:numeric(14,2);not null"`
	Commission      decimal.Decimal   `gorm:"type:numeric(14,2);not null;default:0"`
	SourceAccountID *uuid.UUID        `gorm:"type:uuid;index"`
	DestAccountID   *uuid.UUID        `gorm:"type:uuid;index"`
	DirectAccountID *uuid.UUID        `gorm:"type:uuid;index"`
	ExecutorID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	Reference       string            `gorm:"size:255"`
	Metadata        map[string]string `gorm:"type:jsonb;serializer:json"`
	CreatedAt       time.Time         `gorm:"index"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

func fromDomain(t *account.Transaction) Transaction {
	return Transaction{
		ID:              t.ID,
		Type:            string(t.Type),
		Amount:          t.Amount,
		Commission:      t.Commission,
		SourceAccountID: gormutil.NullUUID(t.SourceAccountID),
		DestAccountID:   gormutil.NullUUID(t.DestAccountID),
		DirectAccountID: gormutil.NullUUID(t.DirectAccountID),
		ExecutorID:      t.ExecutorID,
		Reference:       t.Reference,
		Metadata:        t.Metadata,
		CreatedAt:       t.CreatedAt,
	}
}

func (m *Transaction) toDomain() *account.Transaction {
	meta := m.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	return &account.Transaction{
		ID:              m.ID,
		Type:            account.TransactionType(m.Type),
		Amount:          m.Amount,
		Commission:      m.Commission,
		SourceAccountID: gormutil.UUID(m.SourceAccountID),
		DestAccountID:   gormutil.UUID(m.DestAccountID),
		DirectAccountID: gormutil.UUID(m.DirectAccountID),
		ExecutorID:      m.ExecutorID,
		Reference:       m.Reference,
		Metadata:        meta,
		CreatedAt:       m.CreatedAt,
	}
}
