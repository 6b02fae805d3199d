package account

import (
	"context"
	"fmt"

	"github.com/amirasaad/agribank/infra/repository/gormutil"
	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/domain/account"
	repo "github.com/amirasaad/agribank/pkg/repository/account"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates an account repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements account.Repository.
func (r *repository) Create(ctx context.Context, a *account.Account) error {
	m := fromDomain(a)
	err := r.db.WithContext(ctx).Create(&m).Error
	return gormutil.Write(err, fmt.Errorf("%w: account number %s", domain.ErrAlreadyExists, a.Number))
}

// Update persists balances, the active flag and the update time.
func (r *repository) Update(ctx context.Context, a *account.Account) error {
	res := r.db.WithContext(ctx).Model(&Account{}).Where("id = ?", a.ID).Updates(map[string]any{
		"balance":           a.Balance,
		"available_balance": a.AvailableBalance,
		"active":            a.Active,
		"updated_at":        a.UpdatedAt,
	})
	if res.Error != nil {
		return gormutil.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return account.ErrAccountNotFound
	}
	return nil
}

// Get implements account.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

// GetForUpdate implements account.Repository.
func (r *repository) GetForUpdate(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return r.first(gormutil.ForUpdate(r.db.WithContext(ctx)), "id = ?", id)
}

// GetByNumber implements account.Repository.
func (r *repository) GetByNumber(ctx context.Context, number string) (*account.Account, error) {
	return r.first(r.db.WithContext(ctx), "number = ?", number)
}

// ExistsByNumber implements account.Repository.
func (r *repository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Account{}).Where("number = ?", number).Count(&n).Error; err != nil {
		return false, gormutil.MapGormErrorToDomain(err)
	}
	return n > 0, nil
}

// CountByOwner implements account.Repository.
func (r *repository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Account{}).Where("owner_id = ?", ownerID).Count(&n).Error; err != nil {
		return 0, gormutil.MapGormErrorToDomain(err)
	}
	return n, nil
}

// ListByOwner implements account.Repository.
func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	var rows []Account
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, gormutil.MapGormErrorToDomain(err)
	}
	out := make([]*account.Account, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *repository) first(db *gorm.DB, query string, arg any) (*account.Account, error) {
	var m Account
	if err := db.Where(query, arg).First(&m).Error; err != nil {
		return nil, gormutil.Lookup(err, account.ErrAccountNotFound)
	}
	return m.toDomain(), nil
}
