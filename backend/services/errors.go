package services

import "errors"

// Recoverable-by-caller errors, surfaced verbatim to the request layer.
// Persistence failures are propagated unwrapped and map to 500s.
var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidState         = errors.New("invalid state")
	ErrAttemptLimitExceeded = errors.New("attempt limit exceeded")
	ErrAlreadyEnrolled      = errors.New("already enrolled")
	ErrValidation           = errors.New("validation failed")
)
