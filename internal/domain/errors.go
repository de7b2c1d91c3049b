package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record id does not exist in its collection.
	ErrNotFound = errors.New("not found")

	// ErrImmutable is returned when a caller tries to change a seeded record
	// that is read-only, such as the emergency services contacts.
	ErrImmutable = errors.New("record is read-only")
)

// ValidationError reports a missing or invalid field on user input.
// Nothing is written when validation fails.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "is required"}
}

func invalid(field, value string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("unsupported value %q", value)}
}
