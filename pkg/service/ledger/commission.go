package ledger

import (
	"context"

	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/amirasaad/agribank/pkg/domain/commission"
	"github.com/amirasaad/agribank/pkg/domain/events"
	"github.com/amirasaad/agribank/pkg/domain/policy"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/amirasaad/agribank/pkg/repository"
	"github.com/google/uuid"
)

// accrue creates the pending commission owed to collaboratorID for tx.
func (s *Service) accrue(ctx context.Context, uow repository.UnitOfWork, collaboratorID uuid.UUID, tx *account.Transaction) (*commission.Commission, error) {
	c, err := commission.New(collaboratorID, tx.ID, tx.Commission, s.now())
	if err != nil {
		return nil, err
	}
	repo, err := uow.CommissionRepository()
	if err != nil {
		return nil, err
	}
	if err := repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func accrued(c *commission.Commission) events.CommissionAccrued {
	return events.CommissionAccrued{
		CommissionID:   c.ID,
		CollaboratorID: c.CollaboratorID,
		TransactionID:  c.TransactionID,
		Amount:         c.Amount,
		OccurredAt:     c.CreatedAt,
	}
}

// ListCommissions lists a collaborator's commissions, newest first. A
// collaborator may only list their own; a general manager may list anyone's.
func (s *Service) ListCommissions(ctx context.Context, actorID, collaboratorID uuid.UUID) (out []*commission.Commission, err error) {
	logger := s.logger.With("actorID", actorID, "collaboratorID", collaboratorID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		actor, err := LoadActor(ctx, uow, actorID)
		if err != nil {
			return err
		}
		if err := policy.Authorize(actor, policy.OpListCommissions); err != nil {
			logger.Error("ListCommissions failed: not allowed", "error", err)
			return err
		}
		if actor.HasRole(user.RoleCollaborator) && actor.ID != collaboratorID {
			return policy.ErrRoleNotAllowed
		}
		repo, err := uow.CommissionRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListByCollaborator(ctx, collaboratorID)
		return err
	})
	if err != nil {
		out = nil
	}
	return
}
