package domain

import "errors"

// Error kinds. Every domain error wraps exactly one of these so callers can
// classify failures with errors.Is without knowing the concrete error.
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrInvalidArgument is returned when input is malformed (non-positive amount, wrong role in a request)
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState is returned when the input is valid but the entity's current state disallows the operation
	ErrInvalidState = errors.New("invalid state")
	// ErrForbidden is returned when a user is not allowed to perform an action
	ErrForbidden = errors.New("forbidden")
)

// Kind returns the name of the error kind wrapped by err, or "internal" when
// err does not wrap any domain kind.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	default:
		return "internal"
	}
}
