// Package testutils builds an in-memory ledger environment for service
// tests: a memory unit of work, event bus and locker, a controllable clock
// and helpers that seed persons, actors and accounts directly through the
// repositories.
package testutils

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	infraeventbus "github.com/amirasaad/agribank/infra/eventbus"
	infralock "github.com/amirasaad/agribank/infra/lock"
	"github.com/amirasaad/agribank/infra/memory"
	"github.com/amirasaad/agribank/pkg/config"
	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/amirasaad/agribank/pkg/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Epoch is the instant every test clock starts at.
var Epoch = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

// Clock is a settable clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// Now returns the current test time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Env is a complete in-memory environment.
type Env struct {
	Store  *memory.Store
	Uow    *memory.UoW
	Bus    *infraeventbus.MemoryEventBus
	Locker *infralock.MemoryLocker
	Logger *slog.Logger
	Clock  *Clock
	Deps   config.Deps

	seq atomic.Int64
}

// NewEnv returns a fresh environment with quiet logging.
func NewEnv(t testing.TB) *Env {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	store := memory.NewStore()
	e := &Env{
		Store:  store,
		Uow:    memory.NewUoW(store),
		Bus:    infraeventbus.NewWithMemory(logger),
		Locker: infralock.NewMemoryLocker(),
		Logger: logger,
		Clock:  &Clock{now: Epoch},
	}
	e.Deps = config.Deps{
		Uow:      e.Uow,
		Locker:   e.Locker,
		EventBus: e.Bus,
		Logger:   logger,
		Config:   &config.App{Ledger: &config.Ledger{AccountNumberMaxAttempts: 10}},
	}
	return e
}

type actorSpec struct {
	status   user.Status
	branchID uuid.UUID
	salary   string
	document string
	username string
}

// ActorOption customizes a seeded actor.
type ActorOption func(*actorSpec)

// WithStatus seeds the actor with status s.
func WithStatus(s user.Status) ActorOption {
	return func(a *actorSpec) { a.status = s }
}

// WithBranch attaches the actor to branch id.
func WithBranch(id uuid.UUID) ActorOption {
	return func(a *actorSpec) { a.branchID = id }
}

// WithSalary sets the monthly salary of the actor's person ("0" for none).
func WithSalary(s string) ActorOption {
	return func(a *actorSpec) { a.salary = s }
}

// WithDocument sets the identity document of the actor's person.
func WithDocument(d string) ActorOption {
	return func(a *actorSpec) { a.document = d }
}

// WithUsername sets the actor's username.
func WithUsername(u string) ActorOption {
	return func(a *actorSpec) { a.username = u }
}

// Person seeds a person without a login.
func (e *Env) Person(t testing.TB, document, salary string) *user.Person {
	t.Helper()
	now := e.Clock.Now()
	p := &user.Person{
		ID:        uuid.New(),
		Document:  document,
		FullName:  "Person " + document,
		Salary:    money.MustParse(salary),
		Status:    user.PersonActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	repo, err := e.Uow.PersonRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

// Actor seeds a person and an active actor with role.
func (e *Env) Actor(t testing.TB, role user.Role, opts ...ActorOption) *user.User {
	t.Helper()
	n := e.seq.Add(1)
	spec := actorSpec{
		status:   user.StatusActive,
		salary:   "500.00",
		document: fmt.Sprintf("%08d-%d", n, n%10),
		username: fmt.Sprintf("%s%d", role, n),
	}
	for _, opt := range opts {
		opt(&spec)
	}
	p := e.Person(t, spec.document, spec.salary)
	now := e.Clock.Now()
	u := &user.User{
		ID:           uuid.New(),
		PersonID:     p.ID,
		Username:     spec.username,
		PasswordHash: "x",
		Role:         role,
		Status:       spec.status,
		BranchID:     spec.branchID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	repo, err := e.Uow.UserRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

// Document returns the identity document of actor's person.
func (e *Env) Document(t testing.TB, actor *user.User) string {
	t.Helper()
	repo, err := e.Uow.PersonRepository()
	require.NoError(t, err)
	p, err := repo.Get(context.Background(), actor.PersonID)
	require.NoError(t, err)
	return p.Document
}

// Account seeds an active account owned by owner with balance.
func (e *Env) Account(t testing.TB, owner *user.User, balance string) *account.Account {
	t.Helper()
	a, err := account.New().
		WithOwnerID(owner.ID).
		WithNumber(fmt.Sprintf("%012d", e.seq.Add(1))).
		WithBalance(money.MustParse(balance)).
		WithCreatedAt(e.Clock.Now()).
		Build()
	require.NoError(t, err)
	repo, err := e.Uow.AccountRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

// Reload fetches the committed state of an account.
func (e *Env) Reload(t testing.TB, accountID uuid.UUID) *account.Account {
	t.Helper()
	repo, err := e.Uow.AccountRepository()
	require.NoError(t, err)
	a, err := repo.Get(context.Background(), accountID)
	require.NoError(t, err)
	return a
}

// Balance returns the committed balance of an account formatted at
// currency scale.
func (e *Env) Balance(t testing.TB, accountID uuid.UUID) string {
	t.Helper()
	return money.Format(e.Reload(t, accountID).Balance)
}

// User fetches the committed state of an actor.
func (e *Env) User(t testing.TB, id uuid.UUID) *user.User {
	t.Helper()
	repo, err := e.Uow.UserRepository()
	require.NoError(t, err)
	u, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	return u
}
