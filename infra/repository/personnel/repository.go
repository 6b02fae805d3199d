package personnel

import (
	"context"

	"github.com/amirasaad/agribank/infra/repository/gormutil"
	"github.com/amirasaad/agribank/pkg/domain/personnel"
	"github.com/amirasaad/agribank/pkg/domain/workflow"
	repo "github.com/amirasaad/agribank/pkg/repository/personnel"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a personnel action repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements personnel.Repository.
func (r *repository) Create(ctx context.Context, a *personnel.Action) error {
	m := fromDomain(a)
	return gormutil.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

// Update implements personnel.Repository.
func (r *repository) Update(ctx context.Context, a *personnel.Action) error {
	res := r.db.WithContext(ctx).Model(&Action{}).Where("id = ?", a.ID).Updates(map[string]any{
		"status":      string(a.Status),
		"resolved_by": gormutil.NullUUID(a.ResolvedBy),
		"notes":       a.Notes,
		"updated_at":  a.UpdatedAt,
	})
	if res.Error != nil {
		return gormutil.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return personnel.ErrActionNotFound
	}
	return nil
}

// Get implements personnel.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*personnel.Action, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// GetForUpdate implements personnel.Repository.
func (r *repository) GetForUpdate(ctx context.Context, id uuid.UUID) (*personnel.Action, error) {
	return r.first(gormutil.ForUpdate(r.db.WithContext(ctx)).Where("id = ?", id))
}

// ListByStatus implements personnel.Repository.
func (r *repository) ListByStatus(ctx context.Context, status workflow.Status) ([]*personnel.Action, error) {
	var rows []Action
	err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, gormutil.MapGormErrorToDomain(err)
	}
	out := make([]*personnel.Action, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *repository) first(db *gorm.DB) (*personnel.Action, error) {
	var m Action
	if err := db.First(&m).Error; err != nil {
		return nil, gormutil.Lookup(err, personnel.ErrActionNotFound)
	}
	return m.toDomain(), nil
}
