package ledger

import (
	"context"
	"time"

	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/amirasaad/agribank/pkg/domain/events"
	"github.com/amirasaad/agribank/pkg/repository"
)

// Recorder appends transactions. It never touches balances: callers apply
// the balance change first and record it in the same unit of work.
type Recorder struct {
	now func() time.Time
}

// NewRecorder creates a Recorder stamping records with now.
func NewRecorder(now func() time.Time) *Recorder {
	return &Recorder{now: now}
}

// Record validates p, stamps it and appends it through uow.
func (r *Recorder) Record(ctx context.Context, uow repository.UnitOfWork, p account.TransactionParams) (*account.Transaction, error) {
	tx, err := account.NewTransaction(p, r.now())
	if err != nil {
		return nil, err
	}
	repo, err := uow.TransactionRepository()
	if err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Recorded is the event announcing a committed transaction.
func Recorded(tx *account.Transaction) events.TransactionRecorded {
	return events.TransactionRecorded{
		TransactionID:   tx.ID,
		Kind:            string(tx.Type),
		Amount:          tx.Amount,
		Commission:      tx.Commission,
		SourceAccountID: tx.SourceAccountID,
		DestAccountID:   tx.DestAccountID,
		DirectAccountID: tx.DirectAccountID,
		ExecutorID:      tx.ExecutorID,
		OccurredAt:      tx.CreatedAt,
	}
}
