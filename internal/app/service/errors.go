package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("product %w", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("customer %w", ErrNotFound)
	ErrCartNotFound     = fmt.Errorf("active cart %w", ErrNotFound)
	ErrCartLineNotFound = fmt.Errorf("cart line %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)

	ErrDuplicateKey        = errors.New("duplicate key")
	ErrEmailAlreadyExists  = fmt.Errorf("email already exists: %w", ErrDuplicateKey)
	ErrUnknownVariant      = errors.New("unknown product variant")
	ErrDanglingReference   = errors.New("product reference points at nothing")
	ErrMultipleActiveCarts = errors.New("customer has more than one active cart")
	ErrCartClosed          = errors.New("cart is already ordered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrValidation          = errors.New("validation failed")
)

// ValidationError names the offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
