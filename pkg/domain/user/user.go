package user

import (
	"fmt"
	"time"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// repository.
	ErrUserNotFound = fmt.Errorf("%w: user not found", domain.ErrNotFound)
	// ErrPersonNotFound is returned when no person matches an id or document.
	ErrPersonNotFound = fmt.Errorf("%w: person not found", domain.ErrNotFound)
	// ErrNoPerson is returned when an actor has no linked person record.
	ErrNoPerson = fmt.Errorf("%w: user has no linked person", domain.ErrInvalidState)
	// ErrInvalidSalary is returned when a salary is missing or not positive.
	ErrInvalidSalary = fmt.Errorf("%w: salary must be greater than zero", domain.ErrInvalidArgument)
	// ErrUsernameTaken is returned when a username is already registered.
	ErrUsernameTaken = fmt.Errorf("%w: username already taken", domain.ErrAlreadyExists)
	// ErrPersonHasUser is returned when registering a second login for one person.
	ErrPersonHasUser = fmt.Errorf("%w: person already has a user", domain.ErrAlreadyExists)
)

// Role is the single role an actor holds. The set is closed.
type Role string

const (
	RoleCustomer       Role = "customer"
	RoleCollaborator   Role = "collaborator"
	RoleTeller         Role = "teller"
	RoleBranchManager  Role = "branch_manager"
	RoleGeneralManager Role = "general_manager"
	RoleCleaning       Role = "cleaning"
	RoleSecretary      Role = "secretary"
	RoleAdvisor        Role = "advisor"
)

// Roles lists every valid role.
var Roles = []Role{
	RoleCustomer, RoleCollaborator, RoleTeller, RoleBranchManager,
	RoleGeneralManager, RoleCleaning, RoleSecretary, RoleAdvisor,
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string { return string(r) }

// IsEmployee reports whether r is a staff role rather than a customer or
// collaborator.
func (r Role) IsEmployee() bool {
	return r.IsValid() && r != RoleCustomer && r != RoleCollaborator
}

// Status is the lifecycle status of an actor.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// User is an actor of the back office: a customer or an employee.
//
// Role is fixed at creation. Status changes only through the personnel
// workflow. PersonID links the actor to the person holding the salary and
// identity document; BranchID is uuid.Nil when the actor belongs to no branch.
// CreatedBy is uuid.Nil for self-registered actors.
type User struct {
	ID           uuid.UUID
	PersonID     uuid.UUID
	Username     string
	PasswordHash string
	Role         Role
	Status       Status
	BranchID     uuid.UUID
	CreatedBy    uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive reports whether the actor may currently act.
func (u *User) IsActive() bool {
	return u != nil && u.Status == StatusActive
}

// HasRole reports whether the actor holds role r.
func (u *User) HasRole(r Role) bool {
	return u != nil && u.Role == r
}

// HasBranch reports whether the actor is attached to a branch.
func (u *User) HasBranch() bool {
	return u.BranchID != uuid.Nil
}

// Activate marks the actor active.
func (u *User) Activate(now time.Time) {
	u.Status = StatusActive
	u.UpdatedAt = now
}

// Deactivate marks the actor inactive.
func (u *User) Deactivate(now time.Time) {
	u.Status = StatusInactive
	u.UpdatedAt = now
}

// PersonStatus is the lifecycle status of a person record.
type PersonStatus string

const (
	PersonActive   PersonStatus = "active"
	PersonInactive PersonStatus = "inactive"
)

// Person holds identity and income data. Document is the unique identity
// document number (DUI). Salary is the monthly salary; a zero salary means
// "not declared".
type Person struct {
	ID        uuid.UUID
	Document  string
	FullName  string
	Salary    decimal.Decimal
	Email     string
	Phone     string
	Status    PersonStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequireSalary returns the person's salary or ErrInvalidSalary when none is
// declared.
func (p *Person) RequireSalary() (decimal.Decimal, error) {
	if p == nil || p.Salary.Sign() <= 0 {
		return decimal.Zero, ErrInvalidSalary
	}
	return p.Salary, nil
}
