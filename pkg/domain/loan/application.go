package loan

import (
	"fmt"
	"time"

	"github.com/amirasaad/agribank/pkg/domain"
	"github.com/amirasaad/agribank/pkg/domain/workflow"
	"github.com/amirasaad/agribank/pkg/money"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrApplicationNotFound is returned when an application id does not exist.
	ErrApplicationNotFound = fmt.Errorf("%w: loan application not found", domain.ErrNotFound)
	// ErrNotApproved is returned when funding an application that is not approved.
	ErrNotApproved = fmt.Errorf("%w: loan application is not approved", domain.ErrInvalidState)
)

// Application is a customer's request for a loan into one of their accounts.
// RequestedBy is the customer for self-service requests, or the teller who
// filed it on their behalf.
type Application struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	DestAccountID uuid.UUID
	Amount        decimal.Decimal
	RequestedBy   uuid.UUID
	Notes         string
	workflow.Case
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewApplication opens a pending application for an underwritten quote. The
// quote preview is appended to notes; document, when set, records the
// identity document a teller used to find the customer.
func NewApplication(customerID, destAccountID, requestedBy uuid.UUID, q Quote, notes, document string, now time.Time) *Application {
	return &Application{
		ID:            uuid.New(),
		CustomerID:    customerID,
		DestAccountID: destAccountID,
		Amount:        money.Round(q.Amount),
		RequestedBy:   requestedBy,
		Notes:         PreviewNotes(notes, q, document),
		Case:          workflow.Pending(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// PreviewNotes renders the underwriting preview stored on an application:
//
//	"<notes> | rate=0.03, installment=148.19, termYears=6.17 (customer document=01234567-8)"
func PreviewNotes(notes string, q Quote, document string) string {
	preview := fmt.Sprintf("rate=%s, installment=%s, termYears=%s",
		q.AnnualRate.String(), money.Format(q.Installment), q.PreviewYears().StringFixed(2))
	if document != "" {
		preview += fmt.Sprintf(" (customer document=%s)", document)
	}
	if notes == "" {
		return preview
	}
	return notes + " | " + preview
}

// Approve resolves a pending application as approved. Funding is a
// separate step.
func (a *Application) Approve(by uuid.UUID, now time.Time) error {
	if err := a.Case.Approve(by); err != nil {
		return err
	}
	a.UpdatedAt = now
	return nil
}

// Reject resolves a pending application as rejected, replacing its notes.
func (a *Application) Reject(by uuid.UUID, notes string, now time.Time) error {
	if err := a.Case.Reject(by); err != nil {
		return err
	}
	a.Notes = notes
	a.UpdatedAt = now
	return nil
}

// EnsureFundable returns ErrNotApproved unless the application is approved.
func (a *Application) EnsureFundable() error {
	if a.Status != workflow.StatusApproved {
		return fmt.Errorf("%w: status is %s", ErrNotApproved, a.Status)
	}
	return nil
}
