// Package memory is an in-process implementation of the repository
// contracts. Units of work are serialized and run against a private copy of
// the data that replaces the committed copy only when the work succeeds.
// It backs the service tests and embedded use without a database.
package memory

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/amirasaad/agribank/pkg/domain/commission"
	"github.com/amirasaad/agribank/pkg/domain/loan"
	"github.com/amirasaad/agribank/pkg/domain/personnel"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/amirasaad/agribank/pkg/repository"
	accountrepo "github.com/amirasaad/agribank/pkg/repository/account"
	commissionrepo "github.com/amirasaad/agribank/pkg/repository/commission"
	loanrepo "github.com/amirasaad/agribank/pkg/repository/loan"
	personnelrepo "github.com/amirasaad/agribank/pkg/repository/personnel"
	transactionrepo "github.com/amirasaad/agribank/pkg/repository/transaction"
	userrepo "github.com/amirasaad/agribank/pkg/repository/user"
	"github.com/google/uuid"
)

type row[T any] struct {
	seq int64
	v   T
}

// table keeps rows by id and remembers insertion order.
type table[T any] struct {
	rows map[uuid.UUID]row[T]
	next int64
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[uuid.UUID]row[T])}
}

func (t table[T]) clone() table[T] {
	return table[T]{rows: maps.Clone(t.rows), next: t.next}
}

func (t *table[T]) insert(id uuid.UUID, v T) {
	t.next++
	t.rows[id] = row[T]{seq: t.next, v: v}
}

func (t *table[T]) put(id uuid.UUID, v T) bool {
	r, ok := t.rows[id]
	if !ok {
		return false
	}
	r.v = v
	t.rows[id] = r
	return true
}

func (t table[T]) get(id uuid.UUID) (T, bool) {
	r, ok := t.rows[id]
	return r.v, ok
}

func (t table[T]) find(pred func(T) bool) (T, bool) {
	for _, r := range t.rows {
		if pred(r.v) {
			return r.v, true
		}
	}
	var zero T
	return zero, false
}

// filter returns matching rows in insertion order, or reversed when
// newestFirst is set.
func (t table[T]) filter(pred func(T) bool, newestFirst bool) []T {
	matched := make([]row[T], 0)
	for _, r := range t.rows {
		if pred == nil || pred(r.v) {
			matched = append(matched, r)
		}
	}
	slices.SortFunc(matched, func(a, b row[T]) int {
		if newestFirst {
			return cmp.Compare(b.seq, a.seq)
		}
		return cmp.Compare(a.seq, b.seq)
	})
	out := make([]T, len(matched))
	for i, r := range matched {
		out[i] = r.v
	}
	return out
}

type state struct {
	users        table[user.User]
	persons      table[user.Person]
	accounts     table[account.Account]
	transactions table[account.Transaction]
	commissions  table[commission.Commission]
	applications table[loan.Application]
	loans        table[loan.Loan]
	actions      table[personnel.Action]
}

func newState() *state {
	return &state{
		users:        newTable[user.User](),
		persons:      newTable[user.Person](),
		accounts:     newTable[account.Account](),
		transactions: newTable[account.Transaction](),
		commissions:  newTable[commission.Commission](),
		applications: newTable[loan.Application](),
		loans:        newTable[loan.Loan](),
		actions:      newTable[personnel.Action](),
	}
}

func (s *state) clone() *state {
	return &state{
		users:        s.users.clone(),
		persons:      s.persons.clone(),
		accounts:     s.accounts.clone(),
		transactions: s.transactions.clone(),
		commissions:  s.commissions.clone(),
		applications: s.applications.clone(),
		loans:        s.loans.clone(),
		actions:      s.actions.clone(),
	}
}

// Store holds the committed data shared by every UoW created from it.
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{state: newState()}
}

// atomic runs fn on a private copy and commits it when fn succeeds.
func (s *Store) atomic(ctx context.Context, fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.state.clone()
	if err := fn(work); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.state = work
	return nil
}

// runner executes a repository call against some state.
type runner func(ctx context.Context, fn func(*state) error) error

// UoW implements repository.UnitOfWork over a Store.
type UoW struct {
	store *Store
	run   runner
	inTx  bool
}

// NewUoW creates a UoW over store. Repositories taken from it outside Do
// commit each call on its own.
func NewUoW(store *Store) *UoW {
	return &UoW{store: store, run: store.atomic}
}

// Do runs fn in one unit of work. Nested calls join the outer unit.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.inTx {
		return fn(u)
	}
	return u.store.atomic(ctx, func(work *state) error {
		txn := &UoW{
			store: u.store,
			inTx:  true,
			run: func(_ context.Context, f func(*state) error) error {
				return f(work)
			},
		}
		return fn(txn)
	})
}

func (u *UoW) UserRepository() (userrepo.Repository, error) {
	return &userRepository{run: u.run}, nil
}

func (u *UoW) PersonRepository() (userrepo.PersonRepository, error) {
	return &personRepository{run: u.run}, nil
}

func (u *UoW) AccountRepository() (accountrepo.Repository, error) {
	return &accountRepository{run: u.run}, nil
}

func (u *UoW) TransactionRepository() (transactionrepo.Repository, error) {
	return &transactionRepository{run: u.run}, nil
}

func (u *UoW) CommissionRepository() (commissionrepo.Repository, error) {
	return &commissionRepository{run: u.run}, nil
}

func (u *UoW) LoanApplicationRepository() (loanrepo.ApplicationRepository, error) {
	return &applicationRepository{run: u.run}, nil
}

func (u *UoW) LoanRepository() (loanrepo.Repository, error) {
	return &loanRepository{run: u.run}, nil
}

func (u *UoW) PersonnelRepository() (personnelrepo.Repository, error) {
	return &personnelRepository{run: u.run}, nil
}

var _ repository.UnitOfWork = (*UoW)(nil)
