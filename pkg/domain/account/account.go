package account

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = fmt.Errorf("%w: account not found", domain.ErrNotFound)

	// ErrTransactionAmountMustBePositive is returned when a transaction amount is not positive.
	ErrTransactionAmountMustBePositive = fmt.Errorf("%w: transaction amount must be positive", domain.ErrInvalidArgument)

	// ErrInsufficientFunds is returned when an account has insufficient funds for a withdrawal or transfer.
	ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", domain.ErrInvalidState)

	// ErrAccountInactive is returned when a monetary operation targets a deactivated account.
	ErrAccountInactive = fmt.Errorf("%w: account is not active", domain.ErrInvalidState)

	// ErrAccountLimitReached is returned when the owner already holds the maximum number of accounts.
	ErrAccountLimitReached = fmt.Errorf("%w: account limit reached", domain.ErrInvalidState)

	// ErrCannotTransferToSameAccount is returned when a transfer is attempted from an account to itself.
	ErrCannotTransferToSameAccount = fmt.Errorf("%w: cannot transfer to same account", domain.ErrInvalidArgument)

	// ErrNotOwner is returned when an account does not belong to the expected owner.
	ErrNotOwner = fmt.Errorf("%w: account does not belong to the expected owner", domain.ErrForbidden)

	// ErrNilAccount is returned when a nil account is provided to a transfer or other operation.
	ErrNilAccount = errors.New("nil account")

	// ErrInvalidType is returned for an unknown account type.
	ErrInvalidType = fmt.Errorf("%w: unknown account type", domain.ErrInvalidArgument)

	// ErrAccountNumberExhausted is returned when no unused account number was
	// found within the allowed number of draws.
	ErrAccountNumberExhausted = errors.New("account number generation exhausted")
)

// NumberDigits is the length of a generated account number.
const NumberDigits = 12

var numberSpace = big.NewInt(1_000_000_000_000)

// Type is the product type of an account.
type Type string

const (
	TypeSavings  Type = "savings"
	TypeChecking Type = "checking"
)

// IsValid reports whether t is a known account type.
func (t Type) IsValid() bool {
	return t == TypeSavings || t == TypeChecking
}

// Account is a customer or collaborator deposit account. It is the aggregate
// root for balance mutation.
//
// Invariants:
//   - Balance and AvailableBalance move together (no holds are modeled).
//   - Balance is never negative.
//   - An inactive account accepts no monetary mutation; callers check
//     EnsureActive before calling Deposit or Withdraw.
//   - Accounts are deactivated, never deleted.
//
// CreatedBy is uuid.Nil when the owner opened the account without an
// explicit creator.
type Account struct {
	ID               uuid.UUID
	Number           string
	OwnerID          uuid.UUID
	Type             Type
	Balance          decimal.Decimal
	AvailableBalance decimal.Decimal
	Active           bool
	CreatedBy        uuid.UUID
	BranchID         uuid.UUID
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id        uuid.UUID
	number    string
	ownerID   uuid.UUID
	typ       Type
	balance   decimal.Decimal
	active    bool
	createdBy uuid.UUID
	branchID  uuid.UUID
	createdAt time.Time
	updatedAt time.Time
}

// New creates a new Builder with sensible defaults: a fresh UUID, savings
// type, zero balance and active status.
func New() *Builder {
	now := time.Now().UTC()
	return &Builder{
		id:        uuid.New(),
		typ:       TypeSavings,
		balance:   money.Zero,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithNumber sets the account number. This is a mandatory field.
func (b *Builder) WithNumber(number string) *Builder {
	b.number = number
	return b
}

// WithOwnerID sets the owner. This is a mandatory field.
func (b *Builder) WithOwnerID(ownerID uuid.UUID) *Builder {
	b.ownerID = ownerID
	return b
}

// WithType sets the product type.
func (b *Builder) WithType(t Type) *Builder {
	b.typ = t
	return b
}

// WithCreatedBy records the actor who opened the account on behalf of the owner.
func (b *Builder) WithCreatedBy(id uuid.UUID) *Builder {
	b.createdBy = id
	return b
}

// WithBranchID sets the branch the account was opened at.
func (b *Builder) WithBranchID(id uuid.UUID) *Builder {
	b.branchID = id
	return b
}

// WithBalance sets the initial balance for the account. This should only be used
// for hydrating an existing account from a data store or for test setup.
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithActive sets the active flag. Hydration and tests only.
func (b *Builder) WithActive(active bool) *Builder {
	b.active = active
	return b
}

// WithCreatedAt sets the creation timestamp, which is also the first
// update timestamp.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	b.updatedAt = t
	return b
}

// Build validates the invariants and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.ownerID == uuid.Nil {
		return nil, fmt.Errorf("%w: owner is required", domain.ErrInvalidArgument)
	}
	if len(b.number) != NumberDigits {
		return nil, fmt.Errorf("%w: account number must have %d digits", domain.ErrInvalidArgument, NumberDigits)
	}
	if !b.typ.IsValid() {
		return nil, ErrInvalidType
	}
	if b.balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance cannot be negative", domain.ErrInvalidArgument)
	}
	bal := money.Round(b.balance)
	return &Account{
		ID:               b.id,
		Number:           b.number,
		OwnerID:          b.ownerID,
		Type:             b.typ,
		Balance:          bal,
		AvailableBalance: bal,
		Active:           b.active,
		CreatedBy:        b.createdBy,
		BranchID:         b.branchID,
		CreatedAt:        b.createdAt,
		UpdatedAt:        b.updatedAt,
	}, nil
}

// EnsureActive returns ErrAccountInactive when the account is deactivated.
func (a *Account) EnsureActive() error {
	if a == nil {
		return ErrNilAccount
	}
	if !a.Active {
		return ErrAccountInactive
	}
	return nil
}

// IsOwnedBy reports whether ownerID owns the account.
func (a *Account) IsOwnedBy(ownerID uuid.UUID) bool {
	return a != nil && a.OwnerID == ownerID
}

// Deactivate soft-closes the account. There is no reactivation path.
func (a *Account) Deactivate(now time.Time) {
	a.Active = false
	a.UpdatedAt = now
}

// Deposit credits amount to both balances.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !money.IsPositive(amount) {
		return ErrTransactionAmountMustBePositive
	}
	a.Balance = a.Balance.Add(amount)
	a.AvailableBalance = a.AvailableBalance.Add(amount)
	return nil
}

// Withdraw debits amount from both balances when enough is available.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !money.IsPositive(amount) {
		return ErrTransactionAmountMustBePositive
	}
	if a.AvailableBalance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	a.AvailableBalance = a.AvailableBalance.Sub(amount)
	return nil
}

// Transfer withdraws amount from src and deposits it into dest. When the
// withdrawal fails neither account is touched; when the deposit fails the
// withdrawal is reverted before returning.
func Transfer(src, dest *Account, amount decimal.Decimal) error {
	if src == nil || dest == nil {
		return ErrNilAccount
	}
	if src.ID == dest.ID {
		return ErrCannotTransferToSameAccount
	}
	srcBal, srcAvail := src.Balance, src.AvailableBalance
	if err := src.Withdraw(amount); err != nil {
		return err
	}
	if err := dest.Deposit(amount); err != nil {
		src.Balance, src.AvailableBalance = srcBal, srcAvail
		return err
	}
	return nil
}

// GenerateNumber draws a uniformly random zero-padded 12-digit account number
// from r (crypto/rand.Reader when r is nil).
func GenerateNumber(r io.Reader) (string, error) {
	if r == nil {
		r = rand.Reader
	}
	n, err := rand.Int(r, numberSpace)
	if err != nil {
		return "", fmt.Errorf("draw account number: %w", err)
	}
	return fmt.Sprintf("%0*d", NumberDigits, n), nil
}
