package state

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrSelfFollow           = errors.New("users cannot follow themselves")
	ErrUnknownUser          = errors.New("unknown acting user")
	ErrForbidden            = errors.New("only the owner may do this")
	ErrEmailTaken           = errors.New("email already registered")
	ErrBadCredentials       = errors.New("invalid email or password")
)

// ValidationError carries a message meant to be shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
