// Package ledger runs the account and transaction flows of the back office:
// opening and deactivating accounts, deposits, withdrawals and transfers by
// customers, collaborators and tellers, commission accrual and the
// transaction listings.
//
// Every mutating flow follows the same order: validate input, lock the
// accounts it touches, then inside one unit of work authorize the actor,
// load the accounts, check they are active and owned by the right holder,
// mutate, record the transaction (and commission) and commit. Events are
// published only after the commit.
package ledger

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/amirasaad/agribank/pkg/config"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/amirasaad/agribank/pkg/eventbus"
	"github.com/amirasaad/agribank/pkg/lock"
	"github.com/amirasaad/agribank/pkg/repository"
	"github.com/google/uuid"
)

// DefaultAccountNumberAttempts bounds account-number draws when the config
// does not.
const DefaultAccountNumberAttempts = 10

// Service provides the ledger operations.
type Service struct {
	uow      repository.UnitOfWork
	locker   lock.Locker
	bus      eventbus.Bus
	logger   *slog.Logger
	recorder *Recorder
	now      func() time.Time
	entropy  io.Reader
	maxDraws int
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the wall clock used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithNumberSource replaces the entropy used to draw account numbers.
func WithNumberSource(r io.Reader) Option {
	return func(s *Service) { s.entropy = r }
}

// WithMaxNumberDraws bounds how many account numbers are drawn before
// OpenAccount gives up.
func WithMaxNumberDraws(n int) Option {
	return func(s *Service) { s.maxDraws = n }
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps, opts ...Option) *Service {
	s := &Service{
		uow:      deps.Uow,
		locker:   deps.Locker,
		bus:      deps.EventBus,
		logger:   deps.Logger,
		now:      func() time.Time { return time.Now().UTC() },
		maxDraws: DefaultAccountNumberAttempts,
	}
	if deps.Config != nil && deps.Config.Ledger != nil && deps.Config.Ledger.AccountNumberMaxAttempts > 0 {
		s.maxDraws = deps.Config.Ledger.AccountNumberMaxAttempts
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recorder = NewRecorder(s.now)
	return s
}

// Recorder returns the transaction recorder shared with other services.
func (s *Service) Recorder() *Recorder {
	return s.recorder
}

// LoadActor fetches an actor through uow.
func LoadActor(ctx context.Context, uow repository.UnitOfWork, id uuid.UUID) (*user.User, error) {
	repo, err := uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

// HolderByDocument resolves the actor whose person carries document.
func HolderByDocument(ctx context.Context, uow repository.UnitOfWork, document string) (*user.User, error) {
	persons, err := uow.PersonRepository()
	if err != nil {
		return nil, err
	}
	p, err := persons.GetByDocument(ctx, document)
	if err != nil {
		return nil, err
	}
	users, err := uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return users.GetByPersonID(ctx, p.ID)
}
