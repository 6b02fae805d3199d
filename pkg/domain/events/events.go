// Package events defines the notifications emitted after a ledger, loan or
// personnel operation commits.
package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event is implemented by every domain event.
type Event interface {
	Type() string
}

// Event type names.
const (
	TypeTransactionRecorded     = "Transaction.Recorded"
	TypeCommissionAccrued       = "Commission.Accrued"
	TypeLoanApplicationResolved = "LoanApplication.Resolved"
	TypeLoanFunded              = "Loan.Funded"
	TypeLoanPaidOff             = "Loan.PaidOff"
	TypePersonnelActionResolved = "PersonnelAction.Resolved"
)

// TransactionRecorded is emitted for every committed transaction.
type TransactionRecorded struct {
	TransactionID   uuid.UUID
	Kind            string
	Amount          decimal.Decimal
	Commission      decimal.Decimal
	SourceAccountID uuid.UUID
	DestAccountID   uuid.UUID
	DirectAccountID uuid.UUID
	ExecutorID      uuid.UUID
	OccurredAt      time.Time
}

func (TransactionRecorded) Type() string { return TypeTransactionRecorded }

// CommissionAccrued is emitted when a collaborator earns a commission. The
// settlement process that pays it out listens for this.
type CommissionAccrued struct {
	CommissionID   uuid.UUID
	CollaboratorID uuid.UUID
	TransactionID  uuid.UUID
	Amount         decimal.Decimal
	OccurredAt     time.Time
}

func (CommissionAccrued) Type() string { return TypeCommissionAccrued }

// LoanApplicationResolved is emitted when a branch manager approves or
// rejects an application.
type LoanApplicationResolved struct {
	ApplicationID uuid.UUID
	CustomerID    uuid.UUID
	Status        string
	ResolvedBy    uuid.UUID
	OccurredAt    time.Time
}

func (LoanApplicationResolved) Type() string { return TypeLoanApplicationResolved }

// LoanFunded is emitted when an approved application is disbursed.
type LoanFunded struct {
	LoanID        uuid.UUID
	ApplicationID uuid.UUID
	CustomerID    uuid.UUID
	AccountID     uuid.UUID
	Amount        decimal.Decimal
	OccurredAt    time.Time
}

func (LoanFunded) Type() string { return TypeLoanFunded }

// LoanPaidOff is emitted once, by the payment that clears a loan.
type LoanPaidOff struct {
	LoanID     uuid.UUID
	CustomerID uuid.UUID
	OccurredAt time.Time
}

func (LoanPaidOff) Type() string { return TypeLoanPaidOff }

// PersonnelActionResolved is emitted when a personnel action is approved or
// rejected, including terminations that are approved on creation.
type PersonnelActionResolved struct {
	ActionID   uuid.UUID
	EmployeeID uuid.UUID
	Action     string
	Status     string
	ResolvedBy uuid.UUID
	OccurredAt time.Time
}

func (PersonnelActionResolved) Type() string { return TypePersonnelActionResolved }

// Factories returns a constructor per event type, used to decode events
// that crossed a process boundary.
func Factories() map[string]func() Event {
	return map[string]func() Event{
		TypeTransactionRecorded:     func() Event { return &TransactionRecorded{} },
		TypeCommissionAccrued:       func() Event { return &CommissionAccrued{} },
		TypeLoanApplicationResolved: func() Event { return &LoanApplicationResolved{} },
		TypeLoanFunded:              func() Event { return &LoanFunded{} },
		TypeLoanPaidOff:             func() Event { return &LoanPaidOff{} },
		TypePersonnelActionResolved: func() Event { return &PersonnelActionResolved{} },
	}
}
