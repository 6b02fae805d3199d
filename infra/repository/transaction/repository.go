package transaction

import (
	"context"

	"github.com/amirasaad/agribank/infra/repository/gormutil"
	"github.com/amirasaad/agribank/pkg/domain/account"
	repo "github.com/amirasaad/agribank/pkg/repository/transaction"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a transaction repository using the provided *gorm.DB. The
// table is append-only; there is no update or delete.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements transaction.Repository.
func (r *repository) Create(ctx context.Context, t *account.Transaction) error {
	m := fromDomain(t)
	return gormutil.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

// Get implements transaction.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*account.Transaction, error) {
	var m Transaction
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, gormutil.Lookup(err, account.ErrTransactionNotFound)
	}
	return m.toDomain(), nil
}

// ListByAccount implements transaction.Repository.
func (r *repository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*account.Transaction, error) {
	return r.ListByAccounts(ctx, []uuid.UUID{accountID})
}

// ListByAccounts implements transaction.Repository.
func (r *repository) ListByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]*account.Transaction, error) {
	if len(accountIDs) == 0 {
		return []*account.Transaction{}, nil
	}
	return r.list(r.db.WithContext(ctx).Where(
		"source_account_id IN ? OR dest_account_id IN ? OR direct_account_id IN ?",
		accountIDs, accountIDs, accountIDs,
	))
}

// ListAll implements transaction.Repository.
func (r *repository) ListAll(ctx context.Context) ([]*account.Transaction, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *repository) list(db *gorm.DB) ([]*account.Transaction, error) {
	var rows []Transaction
	if err := db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, gormutil.MapGormErrorToDomain(err)
	}
	out := make([]*account.Transaction, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}
