package transaction

import (
	"context"

	"github.com/amirasaad/agribank/pkg/domain/account"
	"github.com/google/uuid"
)

// Repository appends and reads transactions. There is no update or delete:
// transactions are immutable once recorded. Listings are newest first.
type Repository interface {
	// Create appends a transaction.
	Create(ctx context.Context, tx *account.Transaction) error

	// Get retrieves a transaction by its ID.
	Get(ctx context.Context, id uuid.UUID) (*account.Transaction, error)

	// ListByAccount lists transactions where the account is source,
	// destination or direct account.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Transaction, error)

	// ListByAccounts lists transactions touching any of the given accounts.
	ListByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]*account.Transaction, error)

	// ListAll lists every transaction.
	ListAll(ctx context.Context) ([]*account.Transaction, error)
}
