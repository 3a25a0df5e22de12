package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors. ErrCorpusUnreadable marks a data problem that monitoring
// must be able to tell apart from an ordinary no-match query.
var (
	ErrCorpusUnreadable = errors.New("corpus unreadable")
	ErrEmptyContent     = errors.New("empty content")
	ErrUnknownSource    = errors.New("unknown source")
	ErrContentTooShort  = errors.New("content too short")
)

// ValidationError wraps a sentinel with the offending field and value.
type ValidationError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

// NewValidationError creates a ValidationError.
func NewValidationError(field, value string, wrapped error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Wrapped: wrapped}
}
