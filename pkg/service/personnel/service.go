// Package personnel registers logins and runs the staffing workflow:
// customers register themselves or through a teller, tellers register
// collaborators, branch managers hire and terminate tellers and a general
// manager approves or rejects pending hires.
package personnel

import (
	"log/slog"
	"time"

	"github.com/amirasaad/agribank/pkg/config"
	"github.com/amirasaad/agribank/pkg/domain/events"
	"github.com/amirasaad/agribank/pkg/domain/personnel"
	"github.com/amirasaad/agribank/pkg/eventbus"
	"github.com/amirasaad/agribank/pkg/lock"
	"github.com/amirasaad/agribank/pkg/repository"
	"golang.org/x/crypto/bcrypt"
)

// Service provides the registration and personnel operations.
type Service struct {
	uow      repository.UnitOfWork
	locker   lock.Locker
	bus      eventbus.Bus
	logger   *slog.Logger
	now      func() time.Time
	hashCost int
}

// Option customizes a Service.
type Option func(*Service)

// WithClock replaces the wall clock used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithHashCost sets the bcrypt cost for new passwords.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// NewService creates a new Service with the provided dependencies.
func NewService(deps config.Deps, opts ...Option) *Service {
	s := &Service{
		uow:      deps.Uow,
		locker:   deps.Locker,
		bus:      deps.EventBus,
		logger:   deps.Logger,
		now:      func() time.Time { return time.Now().UTC() },
		hashCost: bcrypt.DefaultCost,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func resolved(a *personnel.Action) events.PersonnelActionResolved {
	return events.PersonnelActionResolved{
		ActionID:   a.ID,
		EmployeeID: a.EmployeeID,
		Action:     string(a.Type),
		Status:     string(a.Status),
		ResolvedBy: a.ResolvedBy,
		OccurredAt: a.UpdatedAt,
	}
}
