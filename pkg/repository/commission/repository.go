package commission

import (
	"context"

	"github.com/amirasaad/agribank/pkg/domain/commission"
	"github.com/google/uuid"
)

// Repository stores collaborator commissions.
type Repository interface {
	// Create inserts a new commission.
	Create(ctx context.Context, c *commission.Commission) error

	// Get retrieves a commission by its ID.
	Get(ctx context.Context, id uuid.UUID) (*commission.Commission, error)

	// GetByTransaction retrieves the commission of a transaction.
	GetByTransaction(ctx context.Context, transactionID uuid.UUID) (*commission.Commission, error)

	// ListByCollaborator lists a collaborator's commissions, newest first.
	ListByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]*commission.Commission, error)
}
