package user

import (
	"context"
	"errors"

	"github.com/amirasaad/agribank/infra/repository/gormutil"
	"github.com/amirasaad/agribank/pkg/domain/user"
	repo "github.com/amirasaad/agribank/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New creates a user repository using the provided *gorm.DB.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

// Create implements user.Repository. Both unique keys (username and person)
// surface as user.ErrUsernameTaken unless the person is already linked.
func (r *repository) Create(ctx context.Context, u *user.User) error {
	m := fromDomain(u)
	err := r.db.WithContext(ctx).Create(&m).Error
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) && u.PersonID != uuid.Nil {
		if _, lookupErr := r.GetByPersonID(ctx, u.PersonID); lookupErr == nil {
			return user.ErrPersonHasUser
		}
	}
	return gormutil.Write(err, user.ErrUsernameTaken)
}

// Update persists the actor's status.
func (r *repository) Update(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", u.ID).Updates(map[string]any{
		"status":     string(u.Status),
		"updated_at": u.UpdatedAt,
	})
	if res.Error != nil {
		return gormutil.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// Get implements user.Repository.
func (r *repository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByUsername implements user.Repository.
func (r *repository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	return r.first(ctx, "username = ?", username)
}

// GetByPersonID implements user.Repository.
func (r *repository) GetByPersonID(ctx context.Context, personID uuid.UUID) (*user.User, error) {
	return r.first(ctx, "person_id = ?", personID)
}

// ExistsByUsername implements user.Repository.
func (r *repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return false, gormutil.MapGormErrorToDomain(err)
	}
	return n > 0, nil
}

func (r *repository) first(ctx context.Context, query string, arg any) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		return nil, gormutil.Lookup(err, user.ErrUserNotFound)
	}
	return m.toDomain(), nil
}

type personRepository struct {
	db *gorm.DB
}

// NewPersonRepository creates a person repository using the provided *gorm.DB.
func NewPersonRepository(db *gorm.DB) repo.PersonRepository {
	return &personRepository{db: db}
}

// Create implements user.PersonRepository.
func (r *personRepository) Create(ctx context.Context, p *user.Person) error {
	m := personFromDomain(p)
	return gormutil.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&m).Error
	})
}

// Get implements user.PersonRepository.
func (r *personRepository) Get(ctx context.Context, id uuid.UUID) (*user.Person, error) {
	return r.first(ctx, "id = ?", id)
}

// GetByDocument implements user.PersonRepository.
func (r *personRepository) GetByDocument(ctx context.Context, document string) (*user.Person, error) {
	return r.first(ctx, "document = ?", document)
}

func (r *personRepository) first(ctx context.Context, query string, arg any) (*user.Person, error) {
	var m Person
	if err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		return nil, gormutil.Lookup(err, user.ErrPersonNotFound)
	}
	return m.toDomain(), nil
}
