package models

import (
	"errors"
	"fmt"
)

// Errors
var (
	// ErrLoginInFlight is returned when a login or register call is rejected
	// because another one is still pending.
	ErrLoginInFlight = errors.New("another sign-in attempt is already in progress")

	// ErrNotFound is returned by directory lookups for unknown ids.
	ErrNotFound = errors.New("not found")
)

// ValidationError reports missing or malformed input to login or register
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthenticationError reports credentials that do not match a recognized account
type AuthenticationError struct {
	Email string
}

func (e *AuthenticationError) Error() string {
	return "invalid credentials"
}

// IsValidationError reports whether err is a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuthenticationError reports whether err is an AuthenticationError
func IsAuthenticationError(err error) bool {
	var ae *AuthenticationError
	return errors.As(err, &ae)
}
