package account

import (
	"context"

	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/google/uuid"
)

// Repository defines the interface for account data access operations.
// Lookups by id return account.ErrAccountNotFound when nothing matches.
type Repository interface {
	// Create inserts a new account.
	Create(ctx context.Context, a *account.Account) error

	// Update persists the mutable fields of an account (balances, active flag).
	Update(ctx context.Context, a *account.Account) error

	// Get retrieves an account by its ID.
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// GetForUpdate retrieves an account by its ID and holds a row lock on it
	// until the surrounding unit of work ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// GetByNumber retrieves an account by its 12-digit number.
	GetByNumber(ctx context.Context, number string) (*account.Account, error)

	// ExistsByNumber reports whether an account number is already taken.
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	// CountByOwner counts every account of an owner, active or not.
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// ListByOwner lists the accounts of an owner, oldest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error)
}
