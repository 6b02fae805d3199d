package repository

import (
	"context"

	"github.com/amirasaad/agribank/infra/repository/account"
	"github.com/amirasaad/agribank/infra/repository/commission"
	"github.com/amirasaad/agribank/infra/repository/loan"
	"github.com/amirasaad/agribank/infra/repository/personnel"
	"github.com/amirasaad/agribank/infra/repository/transaction"
	"github.com/amirasaad/agribank/infra/repository/user"
	"github.com/amirasaad/agribank/pkg/repository"
	accountrepo "github.com/amirasaad/agribank/pkg/repository/account"
	commissionrepo "github.com/amirasaad/agribank/pkg/repository/commission"
	loanrepo "github.com/amirasaad/agribank/pkg/repository/loan"
	personnelrepo "github.com/amirasaad/agribank/pkg/repository/personnel"
	transactionrepo "github.com/amirasaad/agribank/pkg/repository/transaction"
	userrepo "github.com/amirasaad/agribank/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories handed out inside Do share the transaction's
// session; outside Do they run on the base connection.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

var _ repository.UnitOfWork = (*UoW)(nil)

// Do runs fn inside a database transaction. Returning an error from fn
// rolls the transaction back.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// UserRepository returns the user repository bound to the current session.
func (u *UoW) UserRepository() (userrepo.Repository, error) {
	return user.New(u.session()), nil
}

// PersonRepository returns the person repository bound to the current session.
func (u *UoW) PersonRepository() (userrepo.PersonRepository, error) {
	return user.NewPersonRepository(u.session()), nil
}

// AccountRepository returns the account repository bound to the current session.
func (u *UoW) AccountRepository() (accountrepo.Repository, error) {
	return account.New(u.session()), nil
}

// TransactionRepository returns the transaction repository bound to the
// current session.
func (u *UoW) TransactionRepository() (transactionrepo.Repository, error) {
	return transaction.New(u.session()), nil
}

// CommissionRepository returns the commission repository bound to the
// current session.
func (u *UoW) CommissionRepository() (commissionrepo.Repository, error) {
	return commission.New(u.session()), nil
}

// LoanApplicationRepository returns the loan application repository bound to
// the current session.
func (u *UoW) LoanApplicationRepository() (loanrepo.ApplicationRepository, error) {
	return loan.NewApplicationRepository(u.session()), nil
}

// LoanRepository returns the loan repository bound to the current session.
func (u *UoW) LoanRepository() (loanrepo.Repository, error) {
	return loan.New(u.session()), nil
}

// PersonnelRepository returns the personnel action repository bound to the
// current session.
func (u *UoW) PersonnelRepository() (personnelrepo.Repository, error) {
	return personnel.New(u.session()), nil
}

// Models lists every persistent model, in dependency order, for
// AutoMigrate.
func Models() []any {
	return []any{
		&user.Person{},
		&user.User{},
		&account.Account{},
		&transaction.Transaction{},
		&commission.Commission{},
		&loan.Application{},
		&loan.Loan{},
		&personnel.Action{},
	}
}
