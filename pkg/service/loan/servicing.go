package loan

import (
	"context"
	"fmt"

	"github.com/amirasaad/agribank/pkg/commands"
	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/amirasaad/agribank/pkg/domain/events"
	"github.com/amirasaad/agribank/pkg/domain/loan"
	"github.com/amirasaad/agribank/pkg/domain/policy"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/amirasaad/agribank/pkg/eventbus"
	"github.com/amirasaad/agribank/pkg/lock"
	"github.com/amirasaad/agribank/pkg/money"
	"github.com/amirasaad/agribank/pkg/repository"
	"github.com/amirasaad/agribank/pkg/service/ledger"
	"github.com/google/uuid"
)

// Payment is the outcome of one installment payment.
type Payment struct {
	Loan        *loan.Loan
	Transaction *account.Transaction
	// PaidOff is set only on the payment that cleared the loan.
	PaidOff bool
}

// FundFromApplication turns an approved application into a loan and pays
// the amount into the application's destination account. The salary is
// underwritten again at funding time; an application funds at most once.
func (s *Service) FundFromApplication(ctx context.Context, managerID, applicationID uuid.UUID) (l *loan.Loan, err error) {
	logger := s.logger.With("managerID", managerID, "applicationID", applicationID)
	logger.Info("FundFromApplication started")

	app, err := s.GetApplication(ctx, applicationID)
	if err != nil {
		logger.Error("FundFromApplication failed: application lookup error", "error", err)
		return nil, err
	}
	unlock, err := s.locker.Lock(ctx, lock.ApplicationKey(app.ID), lock.AccountKey(app.DestAccountID))
	if err != nil {
		logger.Error("FundFromApplication failed: lock error", "error", err)
		return nil, err
	}
	defer unlock()

	var evts []events.Event
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		manager, err := ledger.LoadActor(ctx, uow, managerID)
		if err != nil {
			logger.Error("FundFromApplication failed: actor lookup error", "error", err)
			return err
		}
		if err := policy.Authorize(manager, policy.OpFundLoan); err != nil {
			logger.Error("FundFromApplication failed: not allowed", "error", err)
			return err
		}
		apps, err := uow.LoanApplicationRepository()
		if err != nil {
			return err
		}
		app, err := apps.GetForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		if err := app.EnsureFundable(); err != nil {
			logger.Error("FundFromApplication failed: application not approved", "error", err)
			return err
		}
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		funded, err := loans.ExistsByApplication(ctx, app.ID)
		if err != nil {
			return err
		}
		if funded {
			logger.Error("FundFromApplication failed: already funded", "error", loan.ErrAlreadyFunded)
			return loan.ErrAlreadyFunded
		}

		customer, err := ledger.LoadActor(ctx, uow, app.CustomerID)
		if err != nil {
			return err
		}
		if !customer.HasRole(user.RoleCustomer) {
			logger.Error("FundFromApplication failed: holder is not a customer", "role", customer.Role)
			return loan.ErrNotCustomerLoan
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		dest, err := accounts.GetForUpdate(ctx, app.DestAccountID)
		if err != nil {
			logger.Error("FundFromApplication failed: account lookup error", "error", err)
			return err
		}
		if err := dest.EnsureActive(); err != nil {
			logger.Error("FundFromApplication failed: account inactive", "error", err)
			return err
		}
		if err := policy.RequireOwnership(dest, customer.ID); err != nil {
			logger.Error("FundFromApplication failed: ownership check", "error", err)
			return err
		}

		q, err := quote(ctx, uow, customer, app.Amount)
		if err != nil {
			logger.Error("FundFromApplication failed: underwriting error", "error", err)
			return err
		}
		now := s.now()
		if l, err = loan.Fund(app, q, manager.ID, now); err != nil {
			return err
		}
		if err := dest.Deposit(l.Amount); err != nil {
			return err
		}
		dest.UpdatedAt = now
		if err := accounts.Update(ctx, dest); err != nil {
			logger.Error("FundFromApplication failed: account update error", "error", err)
			return err
		}
		tx, err := s.recorder.Record(ctx, uow, account.TransactionParams{
			Type:            account.TransactionLoanDisbursement,
			Amount:          l.Amount,
			DestAccountID:   dest.ID,
			DirectAccountID: dest.ID,
			ExecutorID:      manager.ID,
			Reference:       fmt.Sprintf("Loan disbursement for application %s", app.ID),
			Metadata:        map[string]string{account.MetaApplication: app.ID.String()},
		})
		if err != nil {
			logger.Error("FundFromApplication failed: record error", "error", err)
			return err
		}
		if err := loans.Create(ctx, l); err != nil {
			logger.Error("FundFromApplication failed: loan create error", "error", err)
			return err
		}
		evts = append(evts, ledger.Recorded(tx), events.LoanFunded{
			LoanID:        l.ID,
			ApplicationID: app.ID,
			CustomerID:    l.CustomerID,
			AccountID:     dest.ID,
			Amount:        l.Amount,
			OccurredAt:    now,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("FundFromApplication successful", "loanID", l.ID, "installment", money.Format(l.Installment), "termYears", l.TermYears)
	eventbus.EmitAll(ctx, s.bus, logger, evts...)
	return l, nil
}

// PayInstallment pays part of a loan from an active account of the
// borrower. The borrower or any teller may pay. The payment that clears
// the balance cancels the loan; later payments are rejected.
func (s *Service) PayInstallment(ctx context.Context, cmd commands.LoanPayment) (p *Payment, err error) {
	logger := s.logger.With("actorID", cmd.ActorID, "loanID", cmd.LoanID, "accountID", cmd.AccountID, "amount", cmd.Amount.String())
	logger.Info("PayInstallment started")
	if err = commands.Validate(cmd); err != nil {
		logger.Error("PayInstallment failed: invalid command", "error", err)
		return nil, err
	}
	unlock, err := s.locker.Lock(ctx, lock.LoanKey(cmd.LoanID), lock.AccountKey(cmd.AccountID))
	if err != nil {
		logger.Error("PayInstallment failed: lock error", "error", err)
		return nil, err
	}
	defer unlock()

	var evts []events.Event
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		actor, err := ledger.LoadActor(ctx, uow, cmd.ActorID)
		if err != nil {
			logger.Error("PayInstallment failed: actor lookup error", "error", err)
			return err
		}
		if err := policy.Authorize(actor, policy.OpPayLoan); err != nil {
			logger.Error("PayInstallment failed: not allowed", "error", err)
			return err
		}
		loans, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		l, err := loans.GetForUpdate(ctx, cmd.LoanID)
		if err != nil {
			logger.Error("PayInstallment failed: loan lookup error", "error", err)
			return err
		}
		if actor.HasRole(user.RoleCustomer) && actor.ID != l.CustomerID {
			logger.Error("PayInstallment failed: not the borrower", "error", loan.ErrNotBorrower)
			return loan.ErrNotBorrower
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		src, err := accounts.GetForUpdate(ctx, cmd.AccountID)
		if err != nil {
			logger.Error("PayInstallment failed: account lookup error", "error", err)
			return err
		}
		if err := policy.RequireOwnership(src, l.CustomerID); err != nil {
			logger.Error("PayInstallment failed: ownership check", "error", err)
			return err
		}
		if err := src.EnsureActive(); err != nil {
			logger.Error("PayInstallment failed: account inactive", "error", err)
			return err
		}
		if err := l.CheckPayment(cmd.Amount); err != nil {
			logger.Error("PayInstallment failed: payment rejected", "error", err)
			return err
		}
		if err := src.Withdraw(cmd.Amount); err != nil {
			logger.Error("PayInstallment failed: domain error", "error", err)
			return err
		}
		now := s.now()
		src.UpdatedAt = now
		if err := accounts.Update(ctx, src); err != nil {
			logger.Error("PayInstallment failed: account update error", "error", err)
			return err
		}
		reference := cmd.Reference
		if reference == "" {
			reference = fmt.Sprintf("Loan payment #%s", l.ID)
		}
		tx, err := s.recorder.Record(ctx, uow, account.TransactionParams{
			Type:            account.TransactionLoanPayment,
			Amount:          cmd.Amount,
			SourceAccountID: src.ID,
			DirectAccountID: src.ID,
			ExecutorID:      actor.ID,
			Reference:       reference,
			Metadata:        map[string]string{account.MetaLoan: l.ID.String()},
		})
		if err != nil {
			logger.Error("PayInstallment failed: record error", "error", err)
			return err
		}
		paidOff, err := l.ApplyPayment(cmd.Amount, now)
		if err != nil {
			return err
		}
		if err := loans.Update(ctx, l); err != nil {
			logger.Error("PayInstallment failed: loan update error", "error", err)
			return err
		}
		evts = append(evts, ledger.Recorded(tx))
		if paidOff {
			evts = append(evts, events.LoanPaidOff{LoanID: l.ID, CustomerID: l.CustomerID, OccurredAt: now})
		}
		p = &Payment{Loan: l, Transaction: tx, PaidOff: paidOff}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("PayInstallment successful",
		"remaining", money.Format(p.Loan.RemainingBalance),
		"paidOff", p.PaidOff,
	)
	eventbus.EmitAll(ctx, s.bus, logger, evts...)
	return p, nil
}

// GetLoan retrieves a loan by id.
func (s *Service) GetLoan(ctx context.Context, id uuid.UUID) (l *loan.Loan, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.LoanRepository()
		if err != nil {
			return err
		}
		l, err = repo.Get(ctx, id)
		return err
	})
	if err != nil {
		l = nil
	}
	return
}

// ListLoansByCustomer lists a customer's loans, most recently approved first.
func (s *Service) ListLoansByCustomer(ctx context.Context, customerID uuid.UUID) (out []*loan.Loan, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := ledger.LoadActor(ctx, uow, customerID); err != nil {
			return err
		}
		repo, err := uow.LoanRepository()
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
