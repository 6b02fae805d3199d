package account

import (
	"time"

	"github.com/amirasaad/agribank/infra/repository/gormutil"
	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents an account record in the database.
type Account struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number           string          `gorm:"size:12;uniqueIndex;not null"`
	OwnerID          uuid.UUID       `gorm:"type:uuid;index;not null"`
	Type             string          `gorm:"size:16;not null;default:'savings'"`
	Balance          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	AvailableBalance decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Active           bool            `gorm:"not null;default:true"`
	CreatedBy        *uuid.UUID      `gorm:"type:uuid"`
	BranchID         *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for the Account model.
func (Account) TableName() string {
	return "accounts"
}

func fromDomain(a *account.Account) Account {
	return Account{
		ID:               a.ID,
		Number:           a.Number,
		OwnerID:          a.OwnerID,
		Type:             string(a.Type),
		Balance:          a.Balance,
		AvailableBalance: a.AvailableBalance,
		Active:           a.Active,
		CreatedBy:        gormutil.NullUUID(a.CreatedBy),
		BranchID:         gormutil.NullUUID(a.BranchID),
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func (m *Account) toDomain() *account.Account {
	return &account.Account{
		ID:               m.ID,
		Number:           m.Number,
		OwnerID:          m.OwnerID,
		Type:             account.Type(m.Type),
		Balance:          m.Balance,
		AvailableBalance: m.AvailableBalance,
		Active:           m.Active,
		CreatedBy:        gormutil.UUID(m.CreatedBy),
		BranchID:         gormutil.UUID(m.BranchID),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
