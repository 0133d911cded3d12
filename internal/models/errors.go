package models

import (
	"errors"
	"fmt"
)

// Sentinel errors recovered at the request boundary and mapped to HTTP
// status codes by the handler layer.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("access denied")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrAlreadyAssigned    = errors.New("mechanic already assigned to this service ticket")
	ErrNotAssigned        = errors.New("mechanic is not assigned to this service ticket")
	ErrPartAlreadyAdded   = errors.New("inventory item already added to this service ticket")
	ErrPartNotOnTicket    = errors.New("inventory item is not on this service ticket")
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a field-level validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
