package commission

import (
	"context"

	"github.com/amirasaad/agribank/infra/repository/gormutil"
	"github.com/amirasaad/agribank/pkg/domain/commission"
	repo "github.com/amirasaad/agribank/pkg/repository/commission"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a commission repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements commission.Repository.
func (r *repository) Create(ctx context.Context, c *commission.Commission) error {
	m := fromDomain(c)
	return gormutil.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

// Get implements commission.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*commission.Commission, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// GetByTransaction implements commission.Repository.
func (r *repository) GetByTransaction(ctx context.Context, transactionID uuid.UUID) (*commission.Commission, error) {
	return r.first(r.db.WithContext(ctx).Where("transaction_id = ?", transactionID))
}

// ListByCollaborator implements commission.Repository.
func (r *repository) ListByCollaborator(ctx context.Context, collaboratorID uuid.UUID) ([]*commission.Commission, error) {
	var rows []Commission
	err := r.db.WithContext(ctx).
		Where("collaborator_id = ?", collaboratorID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, gormutil.MapGormErrorToDomain(err)
	}
	out := make([]*commission.Commission, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *repository) first(db *gorm.DB) (*commission.Commission, error) {
	var m Commission
	if err := db.First(&m).Error; err != nil {
		return nil, gormutil.Lookup(err, commission.ErrCommissionNotFound)
	}
	return m.toDomain(), nil
}
