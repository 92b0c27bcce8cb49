package entity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidIdentifier   = errors.New("invalid identifier")
	ErrDatabaseUnavailable = errors.New("database not available")
)

// FieldError describes a single rule a payload field did not satisfy.
type FieldError struct {
	Location string
	Field    string
	Rule     string
	Message  string
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(location, field, rule, message string) {
	e.Fields = append(e.Fields, FieldError{
		Location: location,
		Field:    field,
		Rule:     rule,
		Message:  message,
	})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewValidationError reports a single invalid field.
func NewValidationError(location, field, rule, message string) *ValidationError {
	err := &ValidationError{}
	err.add(location, field, rule, message)
	return err
}

// StoreError wraps a failure of the document store. Its message is the
// underlying driver message, which is what API clients get to see.
type StoreError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
