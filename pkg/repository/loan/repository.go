package loan

import (
	"context"

	"github.com/amirasaad/agribank/pkg/domain/loan"
	"github.com/amirasaad/agribank/pkg/domain/workflow"
	"github.com/google/uuid"
)

// ApplicationRepository stores loan applications. Listings are newest first.
type ApplicationRepository interface {
	Create(ctx context.Context, a *loan.Application) error
	Update(ctx context.Context, a *loan.Application) error
	Get(ctx context.Context, id uuid.UUID) (*loan.Application, error)

	// GetForUpdate retrieves an application and holds a row lock on it
	// until the surrounding unit of work ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*loan.Application, error)

	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*loan.Application, error)
	ListByStatus(ctx context.Context, status workflow.Status) ([]*loan.Application, error)
	ListAll(ctx context.Context) ([]*loan.Application, error)
}

// Repository stores funded loans.
type Repository interface {
	Create(ctx context.Context, l *loan.Loan) error
	Update(ctx context.Context, l *loan.Loan) error
	Get(ctx context.Context, id uuid.UUID) (*loan.Loan, error)

	// GetForUpdate retrieves a loan and holds a row lock on it until the
	// surrounding unit of work ends.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*loan.Loan, error)

	// ExistsByApplication reports whether an application was already funded.
	ExistsByApplication(ctx context.Context, applicationID uuid.UUID) (bool, error)

	// ListByCustomer lists a customer's loans, most recently approved first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*loan.Loan, error)
}
