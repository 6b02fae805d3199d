package user

import (
	"time"

	"github.com/amirasaad/agribank/infra/repository/gormutil"
	"github.com/amirasaad/agribank/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// User represents an actor record in the database.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PersonID     *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Username     string     `gorm:"uniqueIndex;not null;size:50"`
	PasswordHash string     `gorm:"not null"`
	Role         string     `gorm:"size:32;not null"`
	Status       string     `gorm:"size:16;not null;default:'pending'"`
	BranchID     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// Person represents a person record. Persons are maintained outside this
// module; the table is read for salaries and identity documents.
type Person struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Document  string          `gorm:"size:20;uniqueIndex;not null"`
	FullName  string          `gorm:"size:255;not null"`
	Salary    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Email     string          `gorm:"size:255"`
	Phone     string          `gorm:"size:32"`
	Status    string          `gorm:"size:16;not null;default:'active'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for the Person model.
func (Person) TableName() string {
	return "persons"
}

func fromDomain(u *user.User) User {
	return User{
		ID:           u.ID,
		PersonID:     gormutil.NullUUID(u.PersonID),
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Status:       string(u.Status),
		BranchID:     gormutil.NullUUID(u.BranchID),
		CreatedBy:    gormutil.NullUUID(u.CreatedBy),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *User) toDomain() *user.User {
	return &user.User{
		ID:           m.ID,
		PersonID:     gormutil.UUID(m.PersonID),
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Role:         user.Role(m.Role),
		Status:       user.Status(m.Status),
		BranchID:     gormutil.UUID(m.BranchID),
		CreatedBy:    gormutil.UUID(m.CreatedBy),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func personFromDomain(p *user.Person) Person {
	return Person{
		ID:        p.ID,
		Document:  p.Document,
		FullName:  p.FullName,
		Salary:    p.Salary,
		Email:     p.Email,
		Phone:     p.Phone,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *Person) toDomain() *user.Person {
	return &user.Person{
		ID:        m.ID,
		Document:  m.Document,
		FullName:  m.FullName,
		Salary:    m.Salary,
		Email:     m.Email,
		Phone:     m.Phone,
		Status:    user.PersonStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
