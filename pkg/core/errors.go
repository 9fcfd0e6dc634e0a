package core

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("record not found")
	ErrReadOnly   = errors.New("store is in read-only mode")
)

// ValidationError reports a field that refused an add or edit.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func notFound(collection string, ref Ref) error {
	return fmt.Errorf("%s: %s: %w", collection, ref, ErrNotFound)
}

// PersistenceError wraps a failure to read or write the store file.
// Load failures are reported this way but never stop the service.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s store: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s store %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
