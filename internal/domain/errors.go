package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers. Parameter-shape problems
// (missing/invalid parameters, unsupported collections) are distinct from
// ErrStore so transport can map them to client errors rather than
// service-unavailable responses.
var (
	ErrMissingParameter      = errors.New("missing parameter")
	ErrInvalidID             = errors.New("invalid document id")
	ErrUnknownCollection     = errors.New("unknown collection")
	ErrUnsupportedCollection = errors.New("unsupported collection")
	ErrEmptyQuery            = errors.New("empty query")
	ErrValidation            = errors.New("validation error")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrStore                 = errors.New("store error")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError carries every rule violated during entry validation,
// in the order the checks ran, so a UI can show the complete correction
// list at once instead of one problem per attempt.
type ValidationError struct {
	Collection Collection
	Errors     []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s validation failed: %s: %s", e.Collection, e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("%s validation failed: %d errors", e.Collection, len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Messages returns the human-readable violation list.
func (e *ValidationError) Messages() []string {
	out := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		out = append(out, fe.String())
	}
	return out
}

// NewValidationErrors creates a ValidationError from accumulated field errors.
func NewValidationErrors(c Collection, errs []FieldError) *ValidationError {
	return &ValidationError{Collection: c, Errors: errs}
}
