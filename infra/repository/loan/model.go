package loan

import (
	"time"

	"github.com/amirasaad/agribank/infra/repository/gormutil"
	"github.com/amirasaad/agribank/pkg/domain/loan"
	"github.com/amirasaad/agribank/pkg/domain/workflow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Application represents a loan application row.
type Application struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	DestAccountID uuid.UUID       `gorm:"type:uuid;not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	RequestedBy   uuid.UUID       `gorm:"type:uuid;not null"`
	Notes         string          `gorm:"type:text"`
	Status        string          `gorm:"size:16;not null;index;default:'pending'"`
	ResolvedBy    *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt     time.Time       `gorm:"index"`
	UpdatedAt     time.Time
}

// TableName specifies the table name for the Application model.
func (Application) TableName() string {
	return "loan_applications"
}

// Loan represents a funded loan row. A loan is funded from exactly one
// application.
type Loan struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ApplicationID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	CustomerID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	DestAccountID    uuid.UUID       `gorm:"type:uuid;not null"`
	ApprovedBy       uuid.UUID       `gorm:"type:uuid;not null"`
	Amount           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	AnnualRate       decimal.Decimal `gorm:"type:numeric(6,4);not null"`
	RemainingBalance decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TermYears        int             `gorm:"not null"`
	Installment      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ApprovedAt       time.Time       `gorm:"index"`
	MaturityDate     time.Time
	NextPayment      time.Time
	Status           string `gorm:"size:16;not null;default:'active'"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for the Loan model.
func (Loan) TableName() string {
	return "loans"
}

func applicationFromDomain(a *loan.Application) Application {
	return Application{
		ID:            a.ID,
		CustomerID:    a.CustomerID,
		DestAccountID: a.DestAccountID,
		Amount:        a.Amount,
		RequestedBy:   a.RequestedBy,
		Notes:         a.Notes,
		Status:        string(a.Status),
		ResolvedBy:    gormutil.NullUUID(a.ResolvedBy),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (m *Application) toDomain() *loan.Application {
	return &loan.Application{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		DestAccountID: m.DestAccountID,
		Amount:        m.Amount,
		RequestedBy:   m.RequestedBy,
		Notes:         m.Notes,
		Case: workflow.Case{
			Status:     workflow.Status(m.Status),
			ResolvedBy: gormutil.UUID(m.ResolvedBy),
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func loanFromDomain(l *loan.Loan) Loan {
	return Loan{
		ID:               l.ID,
		ApplicationID:    l.ApplicationID,
		CustomerID:       l.CustomerID,
		DestAccountID:    l.DestAccountID,
		ApprovedBy:       l.ApprovedBy,
		Amount:           l.Amount,
		AnnualRate:       l.AnnualRate,
		RemainingBalance: l.RemainingBalance,
		TermYears:        l.TermYears,
		Installment:      l.Installment,
		ApprovedAt:       l.ApprovedAt,
		MaturityDate:     l.MaturityDate,
		NextPayment:      l.NextPayment,
		Status:           string(l.Status),
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

func (m *Loan) toDomain() *loan.Loan {
	return &loan.Loan{
		ID:               m.ID,
		ApplicationID:    m.ApplicationID,
		CustomerID:       m.CustomerID,
		DestAccountID:    m.DestAccountID,
		ApprovedBy:       m.ApprovedBy,
		Amount:           m.Amount,
		AnnualRate:       m.AnnualRate,
		RemainingBalance: m.RemainingBalance,
		TermYears:        m.TermYears,
		Installment:      m.Installment,
		ApprovedAt:       m.ApprovedAt,
		MaturityDate:     m.MaturityDate,
		NextPayment:      m.NextPayment,
		Status:           loan.Status(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}
