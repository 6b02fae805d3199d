package ledger

import (
	"context"

	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/amirasaad/agribank/pkg/domain/policy"
	"github.com/amirasaad/agribank/pkg/repository"
	"github.com/google/uuid"
)

// ListTransactionsByAccount lists the movements of one account, newest first.
func (s *Service) ListTransactionsByAccount(ctx context.Context, accountID uuid.UUID) (out []*account.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := accounts.Get(ctx, accountID); err != nil {
			return err
		}
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListByAccount(ctx, accountID)
		return err
	})
	if err != nil {
		out = nil
	}
	return
}

// ListTransactionsByUser lists the movements of every account of userID,
// newest first.
func (s *Service) ListTransactionsByUser(ctx context.Context, userID uuid.UUID) (out []*account.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := LoadActor(ctx, uow, userID); err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		owned, err := accounts.ListByOwner(ctx, userID)
		if err != nil {
			return err
		}
		ids := make([]uuid.UUID, len(owned))
		for i, a := range owned {
			ids[i] = a.ID
		}
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListByAccounts(ctx, ids)
		return err
	})
	if err != nil {
		out = nil
	}
	return
}

// ListAllTransactions lists every movement of the bank, newest first.
// Only a general manager may do this.
func (s *Service) ListAllTransactions(ctx context.Context, actorID uuid.UUID) (out []*account.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		actor, err := LoadActor(ctx, uow, actorID)
		if err != nil {
			return err
		}
		if err := policy.Authorize(actor, policy.OpListAllTransactions); err != nil {
			s.logger.Error("ListAllTransactions failed: not allowed", "actorID", actorID, "error", err)
			return err
		}
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListAll(ctx)
		return err
	})
	if err != nil {
		out = nil
	}
	return
}

// GetTransaction retrieves a transaction by id.
func (s *Service) GetTransaction(ctx context.Context, id uuid.UUID) (tx *account.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		tx, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		tx = nil
	}
	return
}
