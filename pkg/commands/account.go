package commands

import "github.com/google/uuid"

// OpenAccount opens an account for OwnerID. CreatorID is uuid.Nil when the
// owner opens it alone. An empty Type means savings.
type OpenAccount struct {
	OwnerID   uuid.UUID `validate:"required"`
	Type      string    `validate:"omitempty,oneof=savings checking"`
	CreatorID uuid.UUID
}
