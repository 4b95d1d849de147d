package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongCredentials    = errors.New("wrong identifier or password")
	ErrUserDeactivated     = errors.New("user account is deactivated")

	ErrProductNotFound = errors.New("product not found")
	ErrPhaseNotFound   = errors.New("phase not found")

	// ErrProductMoveIncomplete signals that a cross-room product move removed
	// the item from the source room but failed to land it in the target room,
	// and the compensating re-insert failed too.
	ErrProductMoveIncomplete = errors.New("product move left rooms inconsistent")
)

// ValidationError carries the offending field (with its position for embedded
// entities, e.g. "items[3].selectedOptionId") alongside a human-readable
// message. It matches ErrInvalidDataProvided under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidDataProvided
}

func newValidationError(field string, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
