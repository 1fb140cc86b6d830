// Package apperror defines the application's error taxonomy.
//
// The service layer returns these instead of HTTP status codes; the
// handler layer translates them to the right page (form re-render, 404,
// 500). errors.Is works through the whole chain because AppError
// implements Unwrap.
package apperror

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: a record looked up by key does not exist.
	ErrNotFound = errors.New("not found")
	// ErrValidation: malformed or duplicate input, recoverable at the form.
	ErrValidation = errors.New("validation error")
	// ErrAuth: unknown username or password mismatch. Deliberately one
	// error for both so the login page cannot be used to probe accounts.
	ErrAuth = errors.New("authentication failed")
	// ErrConflict: a uniqueness constraint fired in the store.
	ErrConflict = errors.New("conflict")
	// ErrFormat: persisted bytes could not be decoded (corrupt GUID).
	// Unexpected and fatal for the request.
	ErrFormat = errors.New("format error")
)

// AppError carries a sentinel plus a human-readable message and, for
// validation failures, the offending field name.
type AppError struct {
	Err     error
	Message string
	Field   string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing record, e.g. NotFound("enterprise", "acme").
func NotFound(resource, key string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, key),
	}
}

// ValidationFailed reports a field-level validation failure. The message
// is shown to the user next to the field.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a uniqueness violation surfaced by the store.
func Conflict(resource, key string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s already exists: %s", resource, key),
	}
}

// AuthFailed reports bad credentials. The message is generic on purpose.
func AuthFailed(message string) *AppError {
	return &AppError{
		Err:     ErrAuth,
		Message: message,
	}
}

// Corrupt reports undecodable persisted data.
func Corrupt(what, message string) *AppError {
	return &AppError{
		Err:     ErrFormat,
		Message: fmt.Sprintf("%s: %s", what, message),
	}
}
