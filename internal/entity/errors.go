package entity

import "errors"

// Domain errors
var (
	// User errors
	ErrUserAlreadyExists = errors.New("user already exists")

	// Session errors
	ErrSessionNotFound        = errors.New("session not found")
	ErrSessionVersionConflict = errors.New("session was modified concurrently")
	ErrInvalidSessionStatus   = errors.New("invalid session status transition")
	ErrNoQAPairs              = errors.New("session has no qa pairs")

	// Completion errors
	ErrCompletionFailed       = errors.New("text completion failed")
	ErrCompletionUnparseable  = errors.New("text completion returned unparseable output")
	ErrCompletionInvalidShape = errors.New("text completion returned invalid shape")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// ValidationError carries a user-facing message for a rejected request.
// It unwraps to one of the validation sentinels.
type ValidationError struct {
	Message string
	Err     error
}

func NewValidationError(err error, message string) *ValidationError {
	return &ValidationError{Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
