package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is reserved for state conflicts. No current operation returns it.
	ErrConflict = errors.New("conflict")
)

// DomainError wraps a base error with additional context.
type DomainError struct {
	// Base is the underlying error kind (e.g., ErrNotFound)
	Base error

	// Message provides human-readable context
	Message string

	// Field names the offending field for validation errors
	Field string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Base.Error(), e.Message, e.Field)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Base.Error(), e.Message)
	}
	return e.Base.Error()
}

// Unwrap returns the base error for errors.Is/As support.
func (e *DomainError) Unwrap() error {
	return e.Base
}

// NewNotFoundError creates a not found error for the given resource id.
func NewNotFoundError(id int64) *DomainError {
	return &DomainError{
		Base:    ErrNotFound,
		Message: fmt.Sprintf("id %d", id),
	}
}

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Base:    ErrInvalidInput,
		Message: message,
		Field:   field,
	}
}

// NewConflictError creates a conflict error with context.
func NewConflictError(message string) *DomainError {
	return &DomainError{
		Base:    ErrConflict,
		Message: message,
	}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConflict checks if an error is a conflict error.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsDomainError reports whether err carries one of the domain error kinds.
// Anything else is an internal failure.
func IsDomainError(err error) bool {
	return IsNotFound(err) || IsValidationError(err) || IsConflict(err)
}
