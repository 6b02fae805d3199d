package account

import (
	"fmt"
	"time"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrTransactionNotFound is returned when a transaction id does not exist.
var ErrTransactionNotFound = fmt.Errorf("%w: transaction not found", domain.ErrNotFound)

// TransactionType classifies a monetary event.
type TransactionType string

const (
	TransactionDeposit          TransactionType = "deposit"
	TransactionWithdrawal       TransactionType = "withdrawal"
	TransactionTransfer         TransactionType = "transfer"
	TransactionCommission       TransactionType = "commission"
	TransactionLoanDisbursement TransactionType = "loan_disbursement"
	TransactionLoanPayment      TransactionType = "loan_payment"
)

// Origin is the channel a transaction was executed through; stored under
// the MetaOrigin metadata key.
type Origin string

const (
	OriginCustomer     Origin = "customer"
	OriginCollaborator Origin = "collaborator"
	OriginTeller       Origin = "teller"
)

// Metadata keys.
const (
	MetaOrigin         = "origin"
	MetaDocument       = "document"
	MetaSourceDocument = "source_document"
	MetaApplication    = "application"
	MetaLoan           = "loan"
)

// Transaction is an immutable record of one monetary event.
//
// For deposits and withdrawals DirectAccountID is set; SourceAccountID and
// DestAccountID carry directionality (source for money leaving, destination
// for money arriving). Transfers set source and destination and leave the
// direct account empty. Absent accounts are uuid.Nil.
type Transaction struct {
	ID              uuid.UUID
	Type            TransactionType
	Amount          decimal.Decimal
	Commission      decimal.Decimal
	SourceAccountID uuid.UUID
	DestAccountID   uuid.UUID
	DirectAccountID uuid.UUID
	ExecutorID      uuid.UUID
	Reference       string
	Metadata        map[string]string
	CreatedAt       time.Time
}

// TransactionParams carries the fields of a transaction about to be recorded.
type TransactionParams struct {
	Type            TransactionType
	Amount          decimal.Decimal
	Commission      decimal.Decimal
	SourceAccountID uuid.UUID
	DestAccountID   uuid.UUID
	DirectAccountID uuid.UUID
	ExecutorID      uuid.UUID
	Reference       string
	Metadata        map[string]string
}

// NewTransaction validates params and stamps a new immutable Transaction.
func NewTransaction(p TransactionParams, now time.Time) (*Transaction, error) {
	if !money.IsPositive(p.Amount) {
		return nil, ErrTransactionAmountMustBePositive
	}
	if p.Commission.IsNegative() {
		return nil, fmt.Errorf("%w: commission cannot be negative", domain.ErrInvalidArgument)
	}
	if p.ExecutorID == uuid.Nil {
		return nil, fmt.Errorf("%w: executor is required", domain.ErrInvalidArgument)
	}
	meta := make(map[string]string, len(p.Metadata))
	for k, v := range p.Metadata {
		meta[k] = v
	}
	return &Transaction{
		ID:              uuid.New(),
		Type:            p.Type,
		Amount:          money.Round(p.Amount),
		Commission:      money.Round(p.Commission),
		SourceAccountID: p.SourceAccountID,
		DestAccountID:   p.DestAccountID,
		DirectAccountID: p.DirectAccountID,
		ExecutorID:      p.ExecutorID,
		Reference:       p.Reference,
		Metadata:        meta,
		CreatedAt:       now,
	}, nil
}

// Touches reports whether the transaction moved money in or out of accountID.
func (t *Transaction) Touches(accountID uuid.UUID) bool {
	return t.DirectAccountID == accountID ||
		t.SourceAccountID == accountID ||
		t.DestAccountID == accountID
}
