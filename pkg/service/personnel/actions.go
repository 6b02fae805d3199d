package personnel

import (
	"context"

	"github.com/amirasaad/agribank/pkg/domain/personnel"
	"github.com/amirasaad/agribank/pkg/domain/policy"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/amirasaad/agribank/pkg/domain/workflow"
	"github.com/amirasaad/agribank/pkg/eventbus"
	"github.com/amirasaad/agribank/pkg/lock"
	"github.com/amirasaad/agribank/pkg/repository"
	"github.com/amirasaad/agribank/pkg/service/ledger"
	"github.com/google/uuid"
)

// Approve approves a pending action and activates its employee.
func (s *Service) Approve(ctx context.Context, managerID, actionID uuid.UUID) (*personnel.Action, error) {
	return s.resolve(ctx, "Approve", managerID, actionID, func(a *personnel.Action, employee *user.User) error {
		now := s.now()
		if err := a.Approve(managerID, now); err != nil {
			return err
		}
		employee.Activate(now)
		return nil
	})
}

// Reject rejects a pending action, replaces its notes and deactivates the
// employee.
func (s *Service) Reject(ctx context.Context, managerID, actionID uuid.UUID, notes string) (*personnel.Action, error) {
	return s.resolve(ctx, "Reject", managerID, actionID, func(a *personnel.Action, employee *user.User) error {
		now := s.now()
		if err := a.Reject(managerID, notes, now); err != nil {
			return err
		}
		employee.Deactivate(now)
		return nil
	})
}

func (s *Service) resolve(ctx context.Context, name string, managerID, actionID uuid.UUID, transition func(*personnel.Action, *user.User) error) (a *personnel.Action, err error) {
	logger := s.logger.With("managerID", managerID, "actionID", actionID)
	logger.Info(name + " started")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		manager, err := ledger.LoadActor(ctx, uow, managerID)
		if err != nil {
			return err
		}
		if err := policy.Authorize(manager, policy.OpResolvePersonnelAction); err != nil {
			logger.Error(name+" failed: not allowed", "error", err)
			return err
		}
		actions, err := uow.PersonnelRepository()
		if err != nil {
			return err
		}
		if a, err = actions.GetForUpdate(ctx, actionID); err != nil {
			logger.Error(name+" failed: action lookup error", "error", err)
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		employee, err := users.Get(ctx, a.EmployeeID)
		if err != nil {
			return err
		}
		if err := transition(a, employee); err != nil {
			logger.Error(name+" failed: transition error", "error", err)
			return err
		}
		if err := actions.Update(ctx, a); err != nil {
			return err
		}
		return users.Update(ctx, employee)
	})
	if err != nil {
		return nil, err
	}
	logger.Info(name+" successful", "employeeID", a.EmployeeID, "status", a.Status)
	eventbus.EmitAll(ctx, s.bus, logger, resolved(a))
	return a, nil
}

// Terminate deactivates an employee at once and records an approved
// termination on the branch manager's branch.
func (s *Service) Terminate(ctx context.Context, managerID, employeeID uuid.UUID) (a *personnel.Action, err error) {
	logger := s.logger.With("managerID", managerID, "employeeID", employeeID)
	logger.Info("Terminate started")
	unlock, err := s.locker.Lock(ctx, lock.UserKey(employeeID))
	if err != nil {
		logger.Error("Terminate failed: lock error", "error", err)
		return nil, err
	}
	defer unlock()

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		manager, err := ledger.LoadActor(ctx, uow, managerID)
		if err != nil {
			return err
		}
		if err := policy.Authorize(manager, policy.OpTerminateEmployee); err != nil {
			logger.Error("Terminate failed: not allowed", "error", err)
			return err
		}
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		employee, err := users.Get(ctx, employeeID)
		if err != nil {
			logger.Error("Terminate failed: employee lookup error", "error", err)
			return err
		}
		if !employee.Role.IsEmployee() {
			return personnel.ErrNotEmployee
		}
		if employee.Status == user.StatusInactive {
			logger.Error("Terminate failed: already inactive")
			return personnel.ErrAlreadyInactive
		}
		now := s.now()
		employee.Deactivate(now)
		if err := users.Update(ctx, employee); err != nil {
			return err
		}
		a = personnel.NewTermination(employee.ID, manager.BranchID, manager.ID, now)
		actions, err := uow.PersonnelRepository()
		if err != nil {
			return err
		}
		return actions.Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Terminate successful", "actionID", a.ID)
	eventbus.EmitAll(ctx, s.bus, logger, resolved(a))
	return a, nil
}

// ListPending lists the actions awaiting a decision, newest first.
func (s *Service) ListPending(ctx context.Context, actorID uuid.UUID) (out []*personnel.Action, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		actor, err := ledger.LoadActor(ctx, uow, actorID)
		if err != nil {
			return err
		}
		if err := policy.Authorize(actor, policy.OpListPersonnelActions); err != nil {
			return err
		}
		repo, err := uow.PersonnelRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListByStatus(ctx, workflow.StatusPending)
		return err
	})
	if err != nil {
		out = nil
	}
	return
}
