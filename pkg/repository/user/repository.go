package user

import (
	"context"

	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/google/uuid"
)

// Repository defines the interface for actor data access operations.
type Repository interface {
	// Create inserts a new user. A taken username yields user.ErrUsernameTaken.
	Create(ctx context.Context, u *user.User) error

	// Update persists status changes.
	Update(ctx context.Context, u *user.User) error

	// Get retrieves a user by its ID.
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)

	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*user.User, error)

	// GetByPersonID retrieves the user linked to a person.
	GetByPersonID(ctx context.Context, personID uuid.UUID) (*user.User, error)

	// ExistsByUsername checks if a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// PersonRepository defines lookups on person records. Person maintenance
// itself happens outside this module; Create exists for seeding.
type PersonRepository interface {
	// Create inserts a new person.
	Create(ctx context.Context, p *user.Person) error

	// Get retrieves a person by its ID.
	Get(ctx context.Context, id uuid.UUID) (*user.Person, error)

	// GetByDocument retrieves a person by identity document number.
	GetByDocument(ctx context.Context, document string) (*user.Person, error)
}
