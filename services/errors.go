package services

import "errors"

// Failure classes the controllers translate into HTTP status codes.
// Not-found deliberately covers ownership mismatches too, so a caller can
// never learn that a debate exists under someone else's owner.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrQuotaExceeded     = errors.New("guest free debate already used")
	ErrRateLimited       = errors.New("too many requests")
)
