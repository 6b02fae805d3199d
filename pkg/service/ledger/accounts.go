package ledger

import (
	"context"
	"fmt"

	"github.com/amirasaad/agribank/pkg/commands"
	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/amirasaad/agribank/pkg/domain/policy"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/amirasaad/agribank/pkg/lock"
	"github.com/amirasaad/agribank/pkg/repository"
	accountrepo "github.com/amirasaad/agribank/pkg/repository/account"
	"github.com/google/uuid"
)

// OpenAccount opens a zero-balance account. Customers hold at most three
// accounts and may open them alone or through a teller; collaborators hold
// one, opened by a teller. The account limit is checked before any number
// is drawn.
func (s *Service) OpenAccount(ctx context.Context, cmd commands.OpenAccount) (a *account.Account, err error) {
	logger := s.logger.With("ownerID", cmd.OwnerID, "creatorID", cmd.CreatorID, "type", cmd.Type)
	logger.Info("OpenAccount started")
	if err = commands.Validate(cmd); err != nil {
		logger.Error("OpenAccount failed: invalid command", "error", err)
		return nil, err
	}
	typ := account.Type(cmd.Type)
	if typ == "" {
		typ = account.TypeSavings
	}

	unlock, err := s.locker.Lock(ctx, lock.OwnerKey(cmd.OwnerID))
	if err != nil {
		logger.Error("OpenAccount failed: lock error", "error", err)
		return nil, err
	}
	defer unlock()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		owner, err := LoadActor(ctx, uow, cmd.OwnerID)
		if err != nil {
			logger.Error("OpenAccount failed: owner lookup error", "error", err)
			return err
		}
		var creator *user.User
		if cmd.CreatorID != uuid.Nil {
			if creator, err = LoadActor(ctx, uow, cmd.CreatorID); err != nil {
				logger.Error("OpenAccount failed: creator lookup error", "error", err)
				return err
			}
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			logger.Error("OpenAccount failed: AccountRepository error", "error", err)
			return err
		}
		held, err := repo.CountByOwner(ctx, owner.ID)
		if err != nil {
			logger.Error("OpenAccount failed: count error", "error", err)
			return err
		}
		if err := policy.CanOpenAccount(owner, creator, held); err != nil {
			logger.Error("OpenAccount failed: not allowed", "error", err, "held", held)
			return err
		}
		number, err := s.drawNumber(ctx, repo)
		if err != nil {
			logger.Error("OpenAccount failed: number generation error", "error", err)
			return err
		}

		b := account.New().
			WithNumber(number).
			WithOwnerID(owner.ID).
			WithType(typ).
			WithBranchID(owner.BranchID).
			WithCreatedAt(s.now())
		if creator != nil {
			b = b.WithCreatedBy(creator.ID)
			if creator.HasBranch() {
				b = b.WithBranchID(creator.BranchID)
			}
		}
		if a, err = b.Build(); err != nil {
			logger.Error("OpenAccount failed: domain error", "error", err)
			return err
		}
		if err := repo.Create(ctx, a); err != nil {
			logger.Error("OpenAccount failed: repo create error", "error", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("OpenAccount successful", "accountID", a.ID, "number", a.Number)
	return a, nil
}

// drawNumber draws random 12-digit numbers until one is unused.
func (s *Service) drawNumber(ctx context.Context, repo accountrepo.Repository) (string, error) {
	for range s.maxDraws {
		n, err := account.GenerateNumber(s.entropy)
		if err != nil {
			return "", err
		}
		taken, err := repo.ExistsByNumber(ctx, n)
		if err != nil {
			return "", err
		}
		if !taken {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w after %d draws", account.ErrAccountNumberExhausted, s.maxDraws)
}

// Deactivate soft-closes an account. There is no way back.
func (s *Service) Deactivate(ctx context.Context, actorID, accountID uuid.UUID) (err error) {
	logger := s.logger.With("actorID", actorID, "accountID", accountID)
	logger.Info("Deactivate started")
	unlock, err := s.locker.Lock(ctx, lock.AccountKey(accountID))
	if err != nil {
		logger.Error("Deactivate failed: lock error", "error", err)
		return err
	}
	defer unlock()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		actor, err := LoadActor(ctx, uow, actorID)
		if err != nil {
			return err
		}
		if err := policy.Authorize(actor, policy.OpDeactivateAccount); err != nil {
			logger.Error("Deactivate failed: not allowed", "error", err)
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := repo.GetForUpdate(ctx, accountID)
		if err != nil {
			logger.Error("Deactivate failed: account lookup error", "error", err)
			return err
		}
		a.Deactivate(s.now())
		return repo.Update(ctx, a)
	})
	if err != nil {
		logger.Error("Deactivate failed", "error", err)
		return err
	}
	logger.Info("Deactivate successful")
	return nil
}

// GetAccount retrieves an account by id.
func (s *Service) GetAccount(ctx context.Context, accountID uuid.UUID) (a *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = repo.Get(ctx, accountID)
		return err
	})
	if err != nil {
		a = nil
	}
	return
}

// ListAccounts lists every account of ownerID, oldest first.
func (s *Service) ListAccounts(ctx context.Context, ownerID uuid.UUID) (out []*account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := LoadActor(ctx, uow, ownerID); err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListByOwner(ctx, ownerID)
		return err
	})
	if err != nil {
		out = nil
	}
	return
}
