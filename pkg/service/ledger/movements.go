package ledger

import (
	"context"
	"fmt"

	"github.com/amirasaad/agribank/pkg/commands"
	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/amirasaad/agribank/pkg/domain/commission"
	"github.com/amirasaad/agribank/pkg/domain/events"
	"github.com/amirasaad/agribank/pkg/domain/policy"
	"github.com/amirasaad/agribank/pkg/eventbus"
	"github.com/amirasaad/agribank/pkg/lock"
	"github.com/amirasaad/agribank/pkg/money"
	"github.com/amirasaad/agribank/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrDocumentRequired is returned when a flow acting for a customer is not
// given the customer's identity document.
var ErrDocumentRequired = fmt.Errorf("%w: customer document is required", domain.ErrInvalidArgument)

// movement describes one balance-changing flow.
type movement struct {
	name      string
	op        policy.Operation
	kind      account.TransactionType
	origin    account.Origin
	actorID   uuid.UUID
	document  string
	accountID uuid.UUID
	// destID is set for transfers only.
	destID    uuid.UUID
	amount    decimal.Decimal
	reference string
	// commissioned flows pay the executing collaborator.
	commissioned bool
}

// DepositByCustomer credits the customer's own account. No commission.
func (s *Service) DepositByCustomer(ctx context.Context, cmd commands.Deposit) (*account.Transaction, error) {
	return s.execute(ctx, cmd, movement{
		name:      "DepositByCustomer",
		op:        policy.OpDepositOwn,
		kind:      account.TransactionDeposit,
		origin:    account.OriginCustomer,
		actorID:   cmd.ActorID,
		accountID: cmd.AccountID,
		amount:    cmd.Amount,
		reference: cmd.Reference,
	})
}

// WithdrawByCustomer debits the customer's own account. No commission.
func (s *Service) WithdrawByCustomer(ctx context.Context, cmd commands.Withdraw) (*account.Transaction, error) {
	return s.execute(ctx, cmd, movement{
		name:      "WithdrawByCustomer",
		op:        policy.OpWithdrawOwn,
		kind:      account.TransactionWithdrawal,
		origin:    account.OriginCustomer,
		actorID:   cmd.ActorID,
		accountID: cmd.AccountID,
		amount:    cmd.Amount,
		reference: cmd.Reference,
	})
}

// DepositByCollaborator credits the account of the customer holding
// cmd.Document and pays the collaborator a 5% commission.
func (s *Service) DepositByCollaborator(ctx context.Context, cmd commands.Deposit) (*account.Transaction, error) {
	return s.execute(ctx, cmd, movement{
		name:         "DepositByCollaborator",
		op:           policy.OpCollaboratorDeposit,
		kind:         account.TransactionDeposit,
		origin:       account.OriginCollaborator,
		actorID:      cmd.ActorID,
		document:     cmd.Document,
		accountID:    cmd.AccountID,
		amount:       cmd.Amount,
		reference:    cmd.Reference,
		commissioned: true,
	})
}

// WithdrawByCollaborator debits the account of the customer holding
// cmd.Document and pays the collaborator a 5% commission.
func (s *Service) WithdrawByCollaborator(ctx context.Context, cmd commands.Withdraw) (*account.Transaction, error) {
	return s.execute(ctx, cmd, movement{
		name:         "WithdrawByCollaborator",
		op:           policy.OpCollaboratorWithdraw,
		kind:         account.TransactionWithdrawal,
		origin:       account.OriginCollaborator,
		actorID:      cmd.ActorID,
		document:     cmd.Document,
		accountID:    cmd.AccountID,
		amount:       cmd.Amount,
		reference:    cmd.Reference,
		commissioned: true,
	})
}

// DepositByTeller credits the account of the customer holding cmd.Document.
func (s *Service) DepositByTeller(ctx context.Context, cmd commands.Deposit) (*account.Transaction, error) {
	return s.execute(ctx, cmd, movement{
		name:      "DepositByTeller",
		op:        policy.OpTellerDeposit,
		kind:      account.TransactionDeposit,
		origin:    account.OriginTeller,
		actorID:   cmd.ActorID,
		document:  cmd.Document,
		accountID: cmd.AccountID,
		amount:    cmd.Amount,
		reference: cmd.Reference,
	})
}

// WithdrawByTeller debits the account of the customer holding cmd.Document.
func (s *Service) WithdrawByTeller(ctx context.Context, cmd commands.Withdraw) (*account.Transaction, error) {
	return s.execute(ctx, cmd, movement{
		name:      "WithdrawByTeller",
		op:        policy.OpTellerWithdraw,
		kind:      account.TransactionWithdrawal,
		origin:    account.OriginTeller,
		actorID:   cmd.ActorID,
		document:  cmd.Document,
		accountID: cmd.AccountID,
		amount:    cmd.Amount,
		reference: cmd.Reference,
	})
}

// TransferByCustomer moves money from one of the customer's accounts to any
// active account.
func (s *Service) TransferByCustomer(ctx context.Context, cmd commands.Transfer) (*account.Transaction, error) {
	return s.execute(ctx, cmd, movement{
		name:      "TransferByCustomer",
		op:        policy.OpTransferOwn,
		kind:      account.TransactionTransfer,
		origin:    account.OriginCustomer,
		actorID:   cmd.ActorID,
		accountID: cmd.FromAccountID,
		destID:    cmd.ToAccountID,
		amount:    cmd.Amount,
		reference: cmd.Reference,
	})
}

// TransferByTeller moves money from an account of the customer holding
// cmd.Document to any active account.
func (s *Service) TransferByTeller(ctx context.Context, cmd commands.Transfer) (*account.Transaction, error) {
	return s.execute(ctx, cmd, movement{
		name:      "TransferByTeller",
		op:        policy.OpTellerTransfer,
		kind:      account.TransactionTransfer,
		origin:    account.OriginTeller,
		actorID:   cmd.ActorID,
		document:  cmd.Document,
		accountID: cmd.FromAccountID,
		destID:    cmd.ToAccountID,
		amount:    cmd.Amount,
		reference: cmd.Reference,
	})
}

func (m movement) byDocument() bool {
	return m.origin != account.OriginCustomer
}

func (m movement) metadata() map[string]string {
	meta := map[string]string{account.MetaOrigin: string(m.origin)}
	switch {
	case !m.byDocument():
	case m.kind == account.TransactionTransfer:
		meta[account.MetaSourceDocument] = m.document
	default:
		meta[account.MetaDocument] = m.document
	}
	return meta
}

// execute runs one movement end to end.
func (s *Service) execute(ctx context.Context, cmd any, m movement) (tx *account.Transaction, err error) {
	logger := s.logger.With(
		"actorID", m.actorID,
		"accountID", m.accountID,
		"amount", m.amount.String(),
	)
	if m.destID != uuid.Nil {
		logger = logger.With("destAccountID", m.destID)
	}
	logger.Info(m.name + " started")

	if err = commands.Validate(cmd); err != nil {
		logger.Error(m.name+" failed: invalid command", "error", err)
		return nil, err
	}
	if m.byDocument() && m.document == "" {
		logger.Error(m.name+" failed: missing document", "error", ErrDocumentRequired)
		return nil, ErrDocumentRequired
	}
	if m.destID == m.accountID {
		logger.Error(m.name+" failed: same account", "error", account.ErrCannotTransferToSameAccount)
		return nil, account.ErrCannotTransferToSameAccount
	}

	keys := []string{lock.AccountKey(m.accountID)}
	if m.destID != uuid.Nil {
		keys = append(keys, lock.AccountKey(m.destID))
	}
	unlock, err := s.locker.Lock(ctx, keys...)
	if err != nil {
		logger.Error(m.name+" failed: lock error", "error", err)
		return nil, err
	}
	defer unlock()

	var evts []events.Event
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		actor, err := LoadActor(ctx, uow, m.actorID)
		if err != nil {
			logger.Error(m.name+" failed: actor lookup error", "error", err)
			return err
		}
		if err := policy.Authorize(actor, m.op); err != nil {
			logger.Error(m.name+" failed: not allowed", "error", err)
			return err
		}
		holderID := actor.ID
		if m.byDocument() {
			holder, err := HolderByDocument(ctx, uow, m.document)
			if err != nil {
				logger.Error(m.name+" failed: holder lookup error", "error", err)
				return err
			}
			holderID = holder.ID
		}

		repo, err := uow.AccountRepository()
		if err != nil {
			logger.Error(m.name+" failed: AccountRepository error", "error", err)
			return err
		}
		acct, err := repo.GetForUpdate(ctx, m.accountID)
		if err != nil {
			logger.Error(m.name+" failed: account lookup error", "error", err)
			return err
		}
		var dest *account.Account
		if m.destID != uuid.Nil {
			if dest, err = repo.GetForUpdate(ctx, m.destID); err != nil {
				logger.Error(m.name+" failed: destination lookup error", "error", err)
				return err
			}
		}
		if err := acct.EnsureActive(); err != nil {
			logger.Error(m.name+" failed: account inactive", "error", err)
			return err
		}
		if dest != nil {
			if err := dest.EnsureActive(); err != nil {
				logger.Error(m.name+" failed: destination inactive", "error", err)
				return err
			}
		}
		if err := policy.RequireOwnership(acct, holderID); err != nil {
			logger.Error(m.name+" failed: ownership check", "error", err)
			return err
		}

		params := account.TransactionParams{
			Type:       m.kind,
			Amount:     m.amount,
			Commission: money.Zero,
			ExecutorID: actor.ID,
			Reference:  m.reference,
			Metadata:   m.metadata(),
		}
		switch m.kind {
		case account.TransactionDeposit:
			err = acct.Deposit(m.amount)
			params.DestAccountID, params.DirectAccountID = acct.ID, acct.ID
		case account.TransactionWithdrawal:
			err = acct.Withdraw(m.amount)
			params.SourceAccountID, params.DirectAccountID = acct.ID, acct.ID
		case account.TransactionTransfer:
			err = account.Transfer(acct, dest, m.amount)
			params.SourceAccountID, params.DestAccountID = acct.ID, dest.ID
		}
		if err != nil {
			logger.Error(m.name+" failed: domain error", "error", err)
			return err
		}
		now := s.now()
		acct.UpdatedAt = now
		if err := repo.Update(ctx, acct); err != nil {
			logger.Error(m.name+" failed: account update error", "error", err)
			return err
		}
		if dest != nil {
			dest.UpdatedAt = now
			if err := repo.Update(ctx, dest); err != nil {
				logger.Error(m.name+" failed: destination update error", "error", err)
				return err
			}
		}

		if m.commissioned {
			params.Commission = commission.Compute(m.amount)
		}
		if tx, err = s.recorder.Record(ctx, uow, params); err != nil {
			logger.Error(m.name+" failed: record error", "error", err)
			return err
		}
		evts = append(evts, Recorded(tx))
		if m.commissioned {
			c, err := s.accrue(ctx, uow, actor.ID, tx)
			if err != nil {
				logger.Error(m.name+" failed: commission error", "error", err)
				return err
			}
			evts = append(evts, accrued(c))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info(m.name+" successful", "transactionID", tx.ID, "commission", money.Format(tx.Commission))
	eventbus.EmitAll(ctx, s.bus, logger, evts...)
	return tx, nil
}
