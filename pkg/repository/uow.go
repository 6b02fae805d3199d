package repository

import (
	"context"

	"github.com/amirasaad/agribank/pkg/repository/account"
	"github.com/amirasaad/agribank/pkg/repository/commission"
	"github.com/amirasaad/agribank/pkg/repository/loan"
	"github.com/amirasaad/agribank/pkg/repository/personnel"
	"github.com/amirasaad/agribank/pkg/repository/transaction"
	"github.com/amirasaad/agribank/pkg/repository/user"
)

// UnitOfWork defines the contract for transactional work and type-safe
// repository access.
//
// Repositories obtained from the UnitOfWork passed to fn share one
// transaction: either every write made inside fn commits, or none does.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an error
	// the transaction is rolled back and the error is returned unchanged.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	UserRepository() (user.Repository, error)
	PersonRepository() (user.PersonRepository, error)
	AccountRepository() (account.Repository, error)
	TransactionRepository() (transaction.Repository, error)
	CommissionRepository() (commission.Repository, error)
	LoanApplicationRepository() (loan.ApplicationRepository, error)
	LoanRepository() (loan.Repository, error)
	PersonnelRepository() (personnel.Repository, error)
}
