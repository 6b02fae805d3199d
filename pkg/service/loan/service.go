// Package loan runs loan applications and loan servicing: customers and
// tellers file applications, branch managers approve, reject and fund them,
// and customers or tellers pay installments until the loan is paid off.
package loan

import (
	"context"
	"log/slog"
	"time"

	"github.com/amirasaad/agribank/pkg/config"
	"github.com/amirasaad/agribank/pkg/domain/loan"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/amirasaad/agribank/pkg/eventbus"
	"github.com/amirasaad/agribank/pkg/lock"
	"github.com/amirasaad/agribank/pkg/repository"
	"github.com/amirasaad/agribank/pkg/service/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service provides the loan operations.
type Service struct {
	uow      repository.UnitOfWork
	locker   lock.Locker
	bus      eventbus.Bus
	logger   *slog.Logger
	recorder *ledger.Recorder
	now      func() time.Time
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the wall clock used to stamp records and schedule
// payments.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps, opts ...Option) *Service {
	s := &Service{
		uow:    deps.Uow,
		locker: deps.Locker,
		bus:    deps.EventBus,
		logger: deps.Logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(s)
	}
	s.recorder = ledger.NewRecorder(s.now)
	return s
}

// quote underwrites amount against the salary of the person behind u.
func quote(ctx context.Context, uow repository.UnitOfWork, u *user.User, amount decimal.Decimal) (loan.Quote, error) {
	if u.PersonID == uuid.Nil {
		return loan.Quote{}, user.ErrNoPerson
	}
	persons, err := uow.PersonRepository()
	if err != nil {
		return loan.Quote{}, err
	}
	p, err := persons.Get(ctx, u.PersonID)
	if err != nil {
		return loan.Quote{}, err
	}
	salary, err := p.RequireSalary()
	if err != nil {
		return loan.Quote{}, err
	}
	return loan.Underwrite(salary, amount)
}
