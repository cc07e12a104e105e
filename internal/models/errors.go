package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the domain. Handlers map these to HTTP statuses with
// errors.Is, so services must wrap (%w) rather than re-stringify them.
var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrCorruptDocument    = errors.New("corrupt document")
	ErrConflict           = errors.New("document version conflict")
)

// ValidationError signals malformed caller input. It is never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
