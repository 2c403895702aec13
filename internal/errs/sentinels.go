// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"fmt"
)

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist for this caller.
	// Owner-scoped lookups return it both for missing records and for records
	// owned by someone else.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken indicates the normalized email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials indicates a failed login. Deliberately the same
	// for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrMissingToken indicates no bearer token was presented.
	ErrMissingToken = errors.New("missing token")

	// ErrTokenInvalid indicates a malformed token or a bad signature.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrTokenExpired indicates a well-signed token past its expiry.
	ErrTokenExpired = errors.New("token expired")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrHashing indicates an internal password hashing failure (not a mismatch).
	ErrHashing = errors.New("password hashing failed")

	// ErrStoreUnavailable indicates the backing store timed out or is unreachable.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports malformed input along with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// Validation constructs a ValidationError for the given field.
func Validation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
