package memory

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/amirasaad/agribank/pkg/domain/commission"
	"github.com/amirasaad/agribank/pkg/domain/loan"
	"github.com/amirasaad/agribank/pkg/domain/personnel"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/amirasaad/agribank/pkg/domain/workflow"
	"github.com/google/uuid"
)

func ptr[T any](v T) *T { return &v }

func ptrs[T any](vs []T) []*T {
	out := make([]*T, len(vs))
	for i := range vs {
		out[i] = &vs[i]
	}
	return out
}

// users

type userRepository struct{ run runner }

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	return r.run(ctx, func(s *state) error {
		if _, taken := s.users.find(func(x user.User) bool { return x.Username == u.Username }); taken {
			return user.ErrUsernameTaken
		}
		if _, dup := s.users.get(u.ID); dup {
			return domain.ErrAlreadyExists
		}
		s.users.insert(u.ID, *u)
		return nil
	})
}

func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	return r.run(ctx, func(s *state) error {
		if !s.users.put(u.ID, *u) {
			return user.ErrUserNotFound
		}
		return nil
	})
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (out *user.User, err error) {
	err = r.run(ctx, func(s *state) error {
		u, ok := s.users.get(id)
		if !ok {
			return user.ErrUserNotFound
		}
		out = ptr(u)
		return nil
	})
	return
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.findOne(ctx, func(x user.User) bool { return x.Username == username })
}

func (r *userRepository) GetByPersonID(ctx context.Context, personID uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, func(x user.User) bool { return x.PersonID == personID })
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, user.ErrUserNotFound) {
		return false, nil
	}
	return false, err
}

func (r *userRepository) findOne(ctx context.Context, pred func(user.User) bool) (out *user.User, err error) {
	err = r.run(ctx, func(s *state) error {
		u, ok := s.users.find(pred)
		if !ok {
			return user.ErrUserNotFound
		}
		out = ptr(u)
		return nil
	})
	return
}

// persons

type personRepository struct{ run runner }

func (r *personRepository) Create(ctx context.Context, p *user.Person) error {
	return r.run(ctx, func(s *state) error {
		if _, dup := s.persons.find(func(x user.Person) bool { return x.Document == p.Document }); dup {
			return fmt.Errorf("%w: document %s already registered", domain.ErrAlreadyExists, p.Document)
		}
		s.persons.insert(p.ID, *p)
		return nil
	})
}

func (r *personRepository) Get(ctx context.Context, id uuid.UUID) (out *user.Person, err error) {
	err = r.run(ctx, func(s *state) error {
		p, ok := s.persons.get(id)
		if !ok {
			return user.ErrPersonNotFound
		}
		out = ptr(p)
		return nil
	})
	return
}

func (r *personRepository) GetByDocument(ctx context.Context, document string) (out *user.Person, err error) {
	err = r.run(ctx, func(s *state) error {
		p, ok := s.persons.find(func(x user.Person) bool { return x.Document == document })
		if !ok {
			return user.ErrPersonNotFound
		}
		out = ptr(p)
		return nil
	})
	return
}

// accounts

type accountRepository struct{ run runner }

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	return r.run(ctx, func(s *state) error {
		if _, dup := s.accounts.find(func(x account.Account) bool { return x.Number == a.Number }); dup {
			return fmt.Errorf("%w: account number %s", domain.ErrAlreadyExists, a.Number)
		}
		s.accounts.insert(a.ID, *a)
		return nil
	})
}

func (r *accountRepository) Update(ctx context.Context, a *account.Account) error {
	return r.run(ctx, func(s *state) error {
		if !s.accounts.put(a.ID, *a) {
			return account.ErrAccountNotFound
		}
		return nil
	})
}

func (r *accountRepository) Get(ctx context.Context, id uuid.UUID) (out *account.Account, err error) {
	err = r.run(ctx, func(s *state) error {
		a, ok := s.accounts.get(id)
		if !ok {
			return account.ErrAccountNotFound
		}
		out = ptr(a)
		return nil
	})
	return
}

// GetForUpdate needs no row lock here: units of work are already serialized.
func (r *accountRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.Get(ctx, id)
}

func (r *accountRepository) GetByNumber(ctx context.Context, number string) (out *account.Account, err error) {
	err = r.run(ctx, func(s *state) error {
		a, ok := s.accounts.find(func(x account.Account) bool { return x.Number == number })
		if !ok {
			return account.ErrAccountNotFound
		}
		out = ptr(a)
		return nil
	})
	return
}

func (r *accountRepository) ExistsByNumber(ctx context.Context, number string) (exists bool, err error) {
	err = r.run(ctx, func(s *state) error {
		_, exists = s.accounts.find(func(x account.Account) bool { return x.Number == number })
		return nil
	})
	return
}

func (r *accountRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (n int64, err error) {
	err = r.run(ctx, func(s *state) error {
		n = int64(len(s.accounts.filter(func(x account.Account) bool { return x.OwnerID == ownerID }, false)))
		return nil
	})
	return
}

func (r *accountRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) (out []*account.Account, err error) {
	err = r.run(ctx, func(s *state) error {
		out = ptrs(s.accounts.filter(func(x account.Account) bool { return x.OwnerID == ownerID }, false))
		return nil
	})
	return
}

// transactions

type transactionRepository struct{ run runner }

func cloneTx(t account.Transaction) account.Transaction {
	t.Metadata = maps.Clone(t.Metadata)
	return t
}

func (r *transactionRepository) Create(ctx context.Context, t *account.Transaction) error {
	return r.run(ctx, func(s *state) error {
		if _, dup := s.transactions.get(t.ID); dup {
			return domain.ErrAlreadyExists
		}
		s.transactions.insert(t.ID, cloneTx(*t))
		return nil
	})
}

func (r *transactionRepository) Get(ctx context.Context, id uuid.UUID) (out *account.Transaction, err error) {
	err = r.run(ctx, func(s *state) error {
		t, ok := s.transactions.get(id)
		if !ok {
			return account.ErrTransactionNotFound
		}
		out = ptr(cloneTx(t))
		return nil
	})
	return
}

func (r *transactionRepository) list(ctx context.Context, pred func(account.Transaction) bool) (out []*account.Transaction, err error) {
	err = r.run(ctx, func(s *state) error {
		rows := s.transactions.filter(pred, true)
		for i := range rows {
			rows[i] = cloneTx(rows[i])
		}
		out = ptrs(rows)
		return nil
	})
	return
}

func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Transaction, error) {
	return r.list(ctx, func(t account.Transaction) bool { return t.Touches(accountID) })
}

func (r *transactionRepository) ListByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]*account.Transaction, error) {
	return r.list(ctx, func(t account.Transaction) bool {
		for _, id := range accountIDs {
			if t.Touches(id) {
				return true
			}
		}
		return false
	})
}

func (r *transactionRepository) ListAll(ctx context.Context) ([]*account.Transaction, error) {
	return r.list(ctx, nil)
}

// commissions

type commissionRepository struct{ run runner }

func (r *commissionRepository) Create(ctx context.Context, c *commission.Commission) error {
	return r.run(ctx, func(s *state) error {
		if _, dup := s.commissions.find(func(x commission.Commission) bool { return x.TransactionID == c.TransactionID }); dup {
			return fmt.Errorf("%w: commission for transaction %s", domain.ErrAlreadyExists, c.TransactionID)
		}
		s.commissions.insert(c.ID, *c)
		return nil
	})
}

func (r *commissionRepository) Get(ctx context.Context, id uuid.UUID) (out *commission.Commission, err error) {
	err = r.run(ctx, func(s *state) error {
		c, ok := s.commissions.get(id)
		if !ok {
			return commission.ErrCommissionNotFound
		}
		out = ptr(c)
		return nil
	})
	return
}

func (r *commissionRepository) GetByTransaction(ctx context.Context, transactionID uuid.UUID) (out *commission.Commission, err error) {
	err = r.run(ctx, func(s *state) error {
		c, ok := s.commissions.find(func(x commission.Commission) bool { return x.TransactionID == transactionID })
		if !ok {
			return commission.ErrCommissionNotFound
		}
		out = ptr(c)
		return nil
	})
	return
}

func (r *commissionRepository) ListByCollaborator(ctx context.Context, collaboratorID uuid.UUID) (out []*commission.Commission, err error) {
	err = r.run(ctx, func(s *state) error {
		out = ptrs(s.commissions.filter(func(x commission.Commission) bool {
			return x.CollaboratorID == collaboratorID
		}, true))
		return nil
	})
	return
}

// loan applications

type applicationRepository struct{ run runner }

func (r *applicationRepository) Create(ctx context.Context, a *loan.Application) error {
	return r.run(ctx, func(s *state) error {
		s.applications.insert(a.ID, *a)
		return nil
	})
}

func (r *applicationRepository) Update(ctx context.Context, a *loan.Application) error {
	return r.run(ctx, func(s *state) error {
		if !s.applications.put(a.ID, *a) {
			return loan.ErrApplicationNotFound
		}
		return nil
	})
}

func (r *applicationRepository) Get(ctx context.Context, id uuid.UUID) (out *loan.Application, err error) {
	err = r.run(ctx, func(s *state) error {
		a, ok := s.applications.get(id)
		if !ok {
			return loan.ErrApplicationNotFound
		}
		out = ptr(a)
		return nil
	})
	return
}

func (r *applicationRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*loan.Application, error) {
	return r.Get(ctx, id)
}

func (r *applicationRepository) list(ctx context.Context, pred func(loan.Application) bool) (out []*loan.Application, err error) {
	err = r.run(ctx, func(s *state) error {
		out = ptrs(s.applications.filter(pred, true))
		return nil
	})
	return
}

func (r *applicationRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*loan.Application, error) {
	return r.list(ctx, func(a loan.Application) bool { return a.CustomerID == customerID })
}

func (r *applicationRepository) ListByStatus(ctx context.Context, status workflow.Status) ([]*loan.Application, error) {
	return r.list(ctx, func(a loan.Application) bool { return a.Status == status })
}

func (r *applicationRepository) ListAll(ctx context.Context) ([]*loan.Application, error) {
	return r.list(ctx, nil)
}

// loans

type loanRepository struct{ run runner }

func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	return r.run(ctx, func(s *state) error {
		if _, dup := s.loans.find(func(x loan.Loan) bool { return x.ApplicationID == l.ApplicationID }); dup {
			return loan.ErrAlreadyFunded
		}
		s.loans.insert(l.ID, *l)
		return nil
	})
}

func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	return r.run(ctx, func(s *state) error {
		if !s.loans.put(l.ID, *l) {
			return loan.ErrLoanNotFound
		}
		return nil
	})
}

func (r *loanRepository) Get(ctx context.Context, id uuid.UUID) (out *loan.Loan, err error) {
	err = r.run(ctx, func(s *state) error {
		l, ok := s.loans.get(id)
		if !ok {
			return loan.ErrLoanNotFound
		}
		out = ptr(l)
		return nil
	})
	return
}

func (r *loanRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	return r.Get(ctx, id)
}

func (r *loanRepository) ExistsByApplication(ctx context.Context, applicationID uuid.UUID) (exists bool, err error) {
	err = r.run(ctx, func(s *state) error {
		_, exists = s.loans.find(func(x loan.Loan) bool { return x.ApplicationID == applicationID })
		return nil
	})
	return
}

func (r *loanRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) (out []*loan.Loan, err error) {
	err = r.run(ctx, func(s *state) error {
		out = ptrs(s.loans.filter(func(x loan.Loan) bool { return x.CustomerID == customerID }, true))
		return nil
	})
	return
}

// personnel actions

type personnelRepository struct{ run runner }

func (r *personnelRepository) Create(ctx context.Context, a *personnel.Action) error {
	return r.run(ctx, func(s *state) error {
		s.actions.insert(a.ID, *a)
		return nil
	})
}

func (r *personnelRepository) Update(ctx context.Context, a *personnel.Action) error {
	return r.run(ctx, func(s *state) error {
		if !s.actions.put(a.ID, *a) {
			return personnel.ErrActionNotFound
		}
		return nil
	})
}

func (r *personnelRepository) Get(ctx context.Context, id uuid.UUID) (out *personnel.Action, err error) {
	err = r.run(ctx, func(s *state) error {
		a, ok := s.actions.get(id)
		if !ok {
			return personnel.ErrActionNotFound
		}
		out = ptr(a)
		return nil
	})
	return
}

func (r *personnelRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*personnel.Action, error) {
	return r.Get(ctx, id)
}

func (r *personnelRepository) ListByStatus(ctx context.Context, status workflow.Status) (out []*personnel.Action, err error) {
	err = r.run(ctx, func(s *state) error {
		out = ptrs(s.actions.filter(func(x personnel.Action) bool { return x.Status == status }, true))
		return nil
	})
	return
}
