package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrProtectedField is returned when writing the group of a schema.
	ErrProtectedField = errors.New("field is protected")
	// ErrUnknownField is returned when a field name is not part of the schema.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnknownGroup is returned by New for groups without a schema family.
	ErrUnknownGroup = errors.New("unknown group")
)

// ValidationError reports a rejected assignment. The schema is left unchanged.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %v for field %q: %v", e.Value, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ProtectedFieldError reports a write to a read-only field.
type ProtectedFieldError struct {
	Field string
}

func (e *ProtectedFieldError) Error() string {
	return fmt.Sprintf("field %q is protected", e.Field)
}

func (e *ProtectedFieldError) Is(target error) bool { return target == ErrProtectedField }
