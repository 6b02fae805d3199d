package loan

import (
	"context"

	"github.com/amirasaad/agribank/pkg/commands"
	"github.com/amirasaad/agribank/pkg/domain/events"
	"github.com/amirasaad/agribank/pkg/domain/loan"
	"github.com/amirasaad/agribank/pkg/domain/policy"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/amirasaad/agribank/pkg/domain/workflow"
	"github.com/amirasaad/agribank/pkg/eventbus"
	"github.com/amirasaad/agribank/pkg/repository"
	"github.com/amirasaad/agribank/pkg/service/ledger"
	"github.com/google/uuid"
)

// SubmitByCustomer files a pending application for the acting customer,
// paid into one of their own accounts.
func (s *Service) SubmitByCustomer(ctx context.Context, cmd commands.LoanApplication) (*loan.Application, error) {
	return s.submit(ctx, "SubmitByCustomer", policy.OpSubmitLoanApplication, cmd)
}

// SubmitByTeller files a pending application for the customer holding
// cmd.Document. The document is kept in the preview notes.
func (s *Service) SubmitByTeller(ctx context.Context, cmd commands.LoanApplication) (*loan.Application, error) {
	if cmd.Document == "" {
		s.logger.Error("SubmitByTeller failed: missing document", "actorID", cmd.ActorID)
		return nil, ledger.ErrDocumentRequired
	}
	return s.submit(ctx, "SubmitByTeller", policy.OpSubmitLoanForCustomer, cmd)
}

func (s *Service) submit(ctx context.Context, name string, op policy.Operation, cmd commands.LoanApplication) (app *loan.Application, err error) {
	logger := s.logger.With("actorID", cmd.ActorID, "accountID", cmd.AccountID, "amount", cmd.Amount.String())
	logger.Info(name + " started")
	if err = commands.Validate(cmd); err != nil {
		logger.Error(name+" failed: invalid command", "error", err)
		return nil, err
	}
	byTeller := op == policy.OpSubmitLoanForCustomer

	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		actor, err := ledger.LoadActor(ctx, uow, cmd.ActorID)
		if err != nil {
			logger.Error(name+" failed: actor lookup error", "error", err)
			return err
		}
		if err := policy.Authorize(actor, op); err != nil {
			logger.Error(name+" failed: not allowed", "error", err)
			return err
		}
		customer := actor
		document := ""
		if byTeller {
			if customer, err = ledger.HolderByDocument(ctx, uow, cmd.Document); err != nil {
				logger.Error(name+" failed: customer lookup error", "error", err)
				return err
			}
			if err := policy.RequireRole(customer, user.RoleCustomer); err != nil {
				logger.Error(name+" failed: holder is not a customer", "error", err)
				return err
			}
			document = cmd.Document
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		dest, err := accounts.Get(ctx, cmd.AccountID)
		if err != nil {
			logger.Error(name+" failed: account lookup error", "error", err)
			return err
		}
		if err := policy.RequireOwnership(dest, customer.ID); err != nil {
			logger.Error(name+" failed: ownership check", "error", err)
			return err
		}
		q, err := quote(ctx, uow, customer, cmd.Amount)
		if err != nil {
			logger.Error(name+" failed: underwriting error", "error", err)
			return err
		}
		app = loan.NewApplication(customer.ID, dest.ID, actor.ID, q, cmd.Notes, document, s.now())
		repo, err := uow.LoanApplicationRepository()
		if err != nil {
			return err
		}
		return repo.Create(ctx, app)
	})
	if err != nil {
		return nil, err
	}
	logger.Info(name+" successful", "applicationID", app.ID)
	return app, nil
}

// Approve approves a pending application. Funding is a separate step.
func (s *Service) Approve(ctx context.Context, managerID, applicationID uuid.UUID) (*loan.Application, error) {
	return s.resolve(ctx, "Approve", managerID, applicationID, func(app *loan.Application) error {
		return app.Approve(managerID, s.now())
	})
}

// Reject rejects a pending application and replaces its notes.
func (s *Service) Reject(ctx context.Context, managerID, applicationID uuid.UUID, notes string) (*loan.Application, error) {
	return s.resolve(ctx, "Reject", managerID, applicationID, func(app *loan.Application) error {
		return app.Reject(managerID, notes, s.now())
	})
}

func (s *Service) resolve(ctx context.Context, name string, managerID, applicationID uuid.UUID, transition func(*loan.Application) error) (app *loan.Application, err error) {
	logger := s.logger.With("managerID", managerID, "applicationID", applicationID)
	logger.Info(name + " started")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		manager, err := ledger.LoadActor(ctx, uow, managerID)
		if err != nil {
			return err
		}
		if err := policy.Authorize(manager, policy.OpResolveLoanApplication); err != nil {
			logger.Error(name+" failed: not allowed", "error", err)
			return err
		}
		repo, err := uow.LoanApplicationRepository()
		if err != nil {
			return err
		}
		if app, err = repo.GetForUpdate(ctx, applicationID); err != nil {
			logger.Error(name+" failed: application lookup error", "error", err)
			return err
		}
		if err := transition(app); err != nil {
			logger.Error(name+" failed: transition error", "error", err)
			return err
		}
		return repo.Update(ctx, app)
	})
	if err != nil {
		return nil, err
	}
	logger.Info(name+" successful", "status", app.Status)
	eventbus.EmitAll(ctx, s.bus, logger, events.LoanApplicationResolved{
		ApplicationID: app.ID,
		CustomerID:    app.CustomerID,
		Status:        string(app.Status),
		ResolvedBy:    app.ResolvedBy,
		OccurredAt:    app.UpdatedAt,
	})
	return app, nil
}

// GetApplication retrieves an application by id.
func (s *Service) GetApplication(ctx context.Context, id uuid.UUID) (app *loan.Application, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.LoanApplicationRepository()
		if err != nil {
			return err
		}
		app, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		app = nil
	}
	return
}

// ListApplicationsByCustomer lists a customer's applications, newest first.
func (s *Service) ListApplicationsByCustomer(ctx context.Context, customerID uuid.UUID) (out []*loan.Application, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := ledger.LoadActor(ctx, uow, customerID); err != nil {
			return err
		}
		repo, err := uow.LoanApplicationRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListByCustomer(ctx, customerID)
		return err
	})
	if err != nil {
		out = nil
	}
	return
}

// ListApplicationsByStatus lists applications in status, newest first.
func (s *Service) ListApplicationsByStatus(ctx context.Context, status workflow.Status) (out []*loan.Application, err error) {
	if !status.IsValid() {
		return nil, workflow.ErrUnknownStatus
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.LoanApplicationRepository()
		if err != nil {
			return err
		}
		out, err = repo.ListByStatus(ctx, status)
		return err
	})
	if err != nil {
		out = nil
	}
	return
}

// ListApplicationsForBranchManager lists every application, newest first,
// for a branch or general manager.
func (s *Service) ListApplicationsForBranchManager(ctx context.Context, managerID uuid.UUID) (out []*loan.Application, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		manager, err := ledger.LoadActor(ctx, uow, managerID)
		if err != nil {
			return err
		}
		if err := policy.Authorize(manager, policy.OpListLoanApplications); err != nil {
			return err
		}
		repo, err := uow.LoanApplicationRepository()
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
