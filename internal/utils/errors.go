// internal/utils/errors.go
package utils

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound marks an absent entity. Callers render an empty state.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a write that collides with an existing entity.
	ErrConflict = errors.New("already exists")
)

// ValidationError blocks a submission; Fields names the offending inputs.
type ValidationError struct {
	Message string
	Fields  []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	msg := e.Message
	if msg == "" {
		msg = "validation failed"
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(names, ", "))
}

// NewValidationError converts validator output into a ValidationError. It
// returns nil when err is nil.
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}
	fields := GetValidationErrors(err)
	if len(fields) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	return &ValidationError{Message: "validation failed", Fields: fields}
}

// BackendError wraps a failure of the store or of the network. It is
// transient: the caller may retry.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Backend wraps err as a BackendError unless it is nil.
func Backend(op string, err error) error {
	if err == nil {
		return nil
	}
	return &BackendError{Op: op, Err: err}
}

// ConfigurationError is fatal: required settings are missing.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// PersistenceError reports a failed write or read of local storage.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsBackend(err error) bool {
	var b *BackendError
	return errors.As(err, &b)
}
