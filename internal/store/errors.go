package store

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNilEntity is returned when a nil record is handed to Add or Update.
var ErrNilEntity = errors.New("entity must not be nil")

// ArgumentError reports invalid caller input rejected before any mutation.
type ArgumentError struct {
	Name   string
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Name, e.Reason)
}

func IsArgument(err error) bool {
	var ae *ArgumentError
	return errors.As(err, &ae)
}

// FieldError is one failed constraint on an entity field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) String() string {
	return e.Field + " " + e.Message
}

// ValidationError aggregates every failed constraint found on an entity.
// Validation runs to completion so the message names all offending fields,
// not just the first one.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.String()
	}
	return "entity validation failed: " + strings.Join(msgs, ", ")
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
