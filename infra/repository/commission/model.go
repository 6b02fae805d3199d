package commission

import (
	"time"

	"github.com/amirasaad/agribank/pkg/domain/commission"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Commission represents a collaborator commission record. There is exactly
// one per commission-bearing transaction.
type Commission struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CollaboratorID uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Percentage     decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	Status         string          `gorm:"size:16;not null;default:'pending'"`
	CreatedAt      time.Time
}

// TableName specifies the table name for the Commission model.
func (Commission) TableName() string {
	return "commissions"
}

func fromDomain(c *commission.Commission) Commission {
	return Commission{
		ID:             c.ID,
		CollaboratorID: c.CollaboratorID,
		TransactionID:  c.TransactionID,
		Amount:         c.Amount,
		Percentage:     c.Percentage,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
	}
}

func (m *Commission) toDomain() *commission.Commission {
	return &commission.Commission{
		ID:             m.ID,
		CollaboratorID: m.CollaboratorID,
		TransactionID:  m.TransactionID,
		Amount:         m.Amount,
		Percentage:     m.Percentage,
		Status:         commission.Status(m.Status),
		CreatedAt:      m.CreatedAt,
	}
}
