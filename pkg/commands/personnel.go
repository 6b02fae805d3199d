package commands

import "github.com/google/uuid"

// Registration creates the login of an existing person. Role must match the
// role the registering flow creates.
type Registration struct {
	Document string `validate:"required,max=20"`
	Username string `validate:"required,min=3,max=50"`
	Password string `validate:"required,min=6,max=72"`
	Role     string `validate:"required"`
	// ActorID is the teller or branch manager registering on someone's
	// behalf; uuid.Nil for self-registration.
	ActorID uuid.UUID
}
