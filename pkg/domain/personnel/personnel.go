// Package personnel models staffing actions (hires, terminations, role
// changes) that a general manager approves or rejects.
package personnel

import (
	"fmt"
	"time"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/domain/workflow"
	"github.com/google/uuid"
)

var (
	// ErrActionNotFound is returned when a personnel action id does not exist.
	ErrActionNotFound = fmt.Errorf("%w: personnel action not found", domain.ErrNotFound)
	// ErrAlreadyInactive is returned when terminating an employee that is already inactive.
	ErrAlreadyInactive = fmt.Errorf("%w: employee is already inactive", domain.ErrInvalidState)
	// ErrRoleMismatch is returned when a registration asks for a role other than the one the flow creates.
	ErrRoleMismatch = fmt.Errorf("%w: requested role does not match", domain.ErrInvalidArgument)
	// ErrNotEmployee is returned when a staffing action targets a customer or collaborator.
	ErrNotEmployee = fmt.Errorf("%w: user is not an employee", domain.ErrInvalidArgument)
)

// ActionType is the kind of staffing change.
type ActionType string

const (
	ActionHire       ActionType = "hire"
	ActionTerminate  ActionType = "terminate"
	ActionRoleChange ActionType = "role_change"
)

// Default notes stored on generated actions.
const (
	HirePendingNotes = "Teller hire pending approval"
	TerminationNotes = "Employee terminated by branch manager"
)

// Action is a staffing change for one employee. BranchID is the initiator's
// branch, uuid.Nil when the initiator has none.
type Action struct {
	ID          uuid.UUID
	EmployeeID  uuid.UUID
	Type        ActionType
	BranchID    uuid.UUID
	InitiatedBy uuid.UUID
	Notes       string
	workflow.Case
	CreatedAt time.Time
	UpdatedAt time.Time
}

func newAction(t ActionType, employeeID, branchID, initiatedBy uuid.UUID, notes string, now time.Time) *Action {
	return &Action{
		ID:          uuid.New(),
		EmployeeID:  employeeID,
		Type:        t,
		BranchID:    branchID,
		InitiatedBy: initiatedBy,
		Notes:       notes,
		Case:        workflow.Pending(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// NewHire records a pending hire awaiting a general manager's decision.
func NewHire(employeeID, branchID, initiatedBy uuid.UUID, now time.Time) *Action {
	return newAction(ActionHire, employeeID, branchID, initiatedBy, HirePendingNotes, now)
}

// NewTermination records a termination. Terminations take effect
// immediately, so the action is created approved with no separate resolver.
func NewTermination(employeeID, branchID, initiatedBy uuid.UUID, now time.Time) *Action {
	a := newAction(ActionTerminate, employeeID, branchID, initiatedBy, TerminationNotes, now)
	a.Status = workflow.StatusApproved
	return a
}

// Approve resolves a pending action as approved.
func (a *Action) Approve(by uuid.UUID, now time.Time) error {
	if err := a.Case.Approve(by); err != nil {
		return err
	}
	a.UpdatedAt = now
	return nil
}

// Reject resolves a pending action as rejected, replacing its notes.
func (a *Action) Reject(by uuid.UUID, notes string, now time.Time) error {
	if err := a.Case.Reject(by); err != nil {
		return err
	}
	a.Notes = notes
	a.UpdatedAt = now
	return nil
}
