// Package common defines shared constants and sentinel errors used across
// the libhub server and client. Callers should use errors.Is to match these
// values; services wrap them with context using fmt.Errorf("...: %w", ...).
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal      = errors.New("internal error")
	ErrorValidation    = errors.New("validation error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorForbidden     = errors.New("forbidden")
	ErrorConflict      = errors.New("conflict")
	ErrorLimitExceeded = errors.New("limit exceeded")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = fmt.Errorf("invalid token: %w", ErrorUnauthorized)
	ErrTokenExpired = fmt.Errorf("token expired: %w", ErrorUnauthorized)

	// Library tenancy errors.
	ErrLastLibrary = fmt.Errorf("cannot delete the last library: %w", ErrorConflict)

	// Upload errors.
	ErrInvalidFile  = errors.New("only image files are allowed")
	ErrFileTooLarge = errors.New("file is too large")
)

// Failure is an error whose message is safe to show to the caller. It
// matches its Kind sentinel with errors.Is.
type Failure struct {
	Kind    error
	Message string
}

func (f *Failure) Error() string { return f.Message }

func (f *Failure) Unwrap() error { return f.Kind }

// Fail returns a *Failure of the given kind.
func Fail(kind error, message string) error {
	return &Failure{Kind: kind, Message: message}
}
