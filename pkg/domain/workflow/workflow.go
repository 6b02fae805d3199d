// Package workflow is the approval state machine shared by loan
// applications and personnel actions: Pending -> Approved | Rejected.
// Both resolved states are terminal.
package workflow

import (
	"fmt"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/google/uuid"
)

var (
	// ErrAlreadyResolved is returned when a resolved case is resolved again.
	ErrAlreadyResolved = fmt.Errorf("%w: case already resolved", domain.ErrInvalidState)
	// ErrUnknownStatus is returned when filtering by a status that does not exist.
	ErrUnknownStatus = fmt.Errorf("%w: unknown case status", domain.ErrInvalidArgument)
)

// Status is the state of an approval case.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Case is the resolvable part of a workflow entity. ResolvedBy is uuid.Nil
// while the case is pending, and also for cases that were approved at
// creation without a separate resolver.
type Case struct {
	Status     Status
	ResolvedBy uuid.UUID
}

// Pending returns a new pending case.
func Pending() Case {
	return Case{Status: StatusPending}
}

// IsPending reports whether the case awaits a decision.
func (c *Case) IsPending() bool {
	return c.Status == StatusPending
}

// Approve moves a pending case to Approved.
func (c *Case) Approve(by uuid.UUID) error {
	return c.resolve(StatusApproved, by)
}

// Reject moves a pending case to Rejected.
func (c *Case) Reject(by uuid.UUID) error {
	return c.resolve(StatusRejected, by)
}

func (c *Case) resolve(to Status, by uuid.UUID) error {
	if c.Status != StatusPending {
		return fmt.Errorf("%w: status is %s", ErrAlreadyResolved, c.Status)
	}
	c.Status = to
	c.ResolvedBy = by
	return nil
}
