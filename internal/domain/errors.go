package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound marks lookups that targeted an ID absent from its collection.
// Repositories wrap it with the entity kind and ID.
var ErrNotFound = errors.New("not found")

// ValidationError aggregates every field violation found in a create or
// update payload. Nothing is persisted when one is returned.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, ", ")
}

// NewValidationError returns nil when no violations were collected, so call
// sites can return its result directly.
func NewValidationError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StorageError wraps a failure of the durable read or write itself. Callers
// treat it as fatal for the request.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorage reports whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
