package loan

import (
	"context"

	"github.com/amirasaad/agribank/infra/repository/gormutil"
	"github.com/amirasaad/agribank/pkg/domain/loan"
	"github.com/amirasaad/agribank/pkg/domain/workflow"
	repo "github.com/amirasaad/agribank/pkg/repository/loan"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a loan application repository using the
// provided *gorm.DB.
func NewApplicationRepository(db *gorm.DB) repo.ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create implements loan.ApplicationRepository.
func (r *applicationRepository) Create(ctx context.Context, a *loan.Application) error {
	m := applicationFromDomain(a)
	return gormutil.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

// Update persists the application's decision and notes.
func (r *applicationRepository) Update(ctx context.Context, a *loan.Application) error {
	res := r.db.WithContext(ctx).Model(&Application{}).Where("id = ?", a.ID).Updates(map[string]any{
		"status":      string(a.Status),
		"resolved_by": gormutil.NullUUID(a.ResolvedBy),
		"notes":       a.Notes,
		"updated_at":  a.UpdatedAt,
	})
	if res.Error != nil {
		return gormutil.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return loan.ErrApplicationNotFound
	}
	return nil
}

// Get implements loan.ApplicationRepository.
func (r *applicationRepository) Get(ctx context.Context, id uuid.UUID) (*loan.Application, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// GetForUpdate reads the application with a row lock held until the
// surrounding transaction ends.
func (r *applicationRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*loan.Application, error) {
	return r.first(gormutil.ForUpdate(r.db.WithContext(ctx)).Where("id = ?", id))
}

// ListByCustomer implements loan.ApplicationRepository.
func (r *applicationRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*loan.Application, error) {
	return r.list(r.db.WithContext(ctx).Where("customer_id = ?", customerID))
}

// ListByStatus implements loan.ApplicationRepository.
func (r *applicationRepository) ListByStatus(ctx context.Context, status workflow.Status) ([]*loan.Application, error) {
	return r.list(r.db.WithContext(ctx).Where("status = ?", string(status)))
}

// ListAll implements loan.ApplicationRepository.
func (r *applicationRepository) ListAll(ctx context.Context) ([]*loan.Application, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *applicationRepository) first(db *gorm.DB) (*loan.Application, error) {
	var m Application
	if err := db.First(&m).Error; err != nil {
		return nil, gormutil.Lookup(err, loan.ErrApplicationNotFound)
	}
	return m.toDomain(), nil
}

func (r *applicationRepository) list(db *gorm.DB) ([]*loan.Application, error) {
	var rows []Application
	if err := db.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, gormutil.MapGormErrorToDomain(err)
	}
	out := make([]*loan.Application, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

type repository struct {
	db *gorm.DB
}

// New creates a loan repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements loan.Repository. A second loan for the same
// application violates the unique index and maps to loan.ErrAlreadyFunded.
func (r *repository) Create(ctx context.Context, l *loan.Loan) error {
	m := loanFromDomain(l)
	return gormutil.Write(r.db.WithContext(ctx).Create(&m).Error, loan.ErrAlreadyFunded)
}

// Update persists the servicing state of a loan.
func (r *repository) Update(ctx context.Context, l *loan.Loan) error {
	res := r.db.WithContext(ctx).Model(&Loan{}).Where("id = ?", l.ID).Updates(map[string]any{
		"remaining_balance": l.RemainingBalance,
		"next_payment":      l.NextPayment,
		"status":            string(l.Status),
		"updated_at":        l.UpdatedAt,
	})
	if res.Error != nil {
		return gormutil.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return loan.ErrLoanNotFound
	}
	return nil
}

// Get implements loan.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// GetForUpdate implements loan.Repository.
func (r *repository) GetForUpdate(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	return r.first(gormutil.ForUpdate(r.db.WithContext(ctx)).Where("id = ?", id))
}

// ExistsByApplication implements loan.Repository.
func (r *repository) ExistsByApplication(ctx context.Context, applicationID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Loan{}).Where("application_id = ?", applicationID).Count(&n).Error
	if err != nil {
		return false, gormutil.MapGormErrorToDomain(err)
	}
	return n > 0, nil
}

// ListByCustomer implements loan.Repository.
func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*loan.Loan, error) {
	var rows []Loan
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("approved_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, gormutil.MapGormErrorToDomain(err)
	}
	out := make([]*loan.Loan, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *repository) first(db *gorm.DB) (*loan.Loan, error) {
	var m Loan
	if err := db.First(&m).Error; err != nil {
		return nil, gormutil.Lookup(err, loan.ErrLoanNotFound)
	}
	return m.toDomain(), nil
}
