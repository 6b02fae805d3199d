package personnel

import (
	"context"

	"github.com/amirasaad/agribank/pkg/domain/personnel"
	"github.com/amirasaad/agribank/pkg/domain/workflow"
	"github.com/google/uuid"
)

// Repository stores personnel actions.
type Repository interface {
	Create(ctx context.Context, a *personnel.Action) error
	Update(ctx context.Context, a *personnel.Action) error
	Get(ctx context.Context, id uuid.UUID) (*personnel.Action, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*personnel.Action, error)

	// ListByStatus lists actions in a status, newest first.
	ListByStatus(ctx context.Context, status workflow.Status) ([]*personnel.Action, error)
}
