package validators

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidInput is wrapped by every validation failure.
	ErrInvalidInput = errors.New("invalid input")

	ErrUnsupportedType = errors.New("unsupported type for validation")
)

// FieldError describes a single failed rule. Field is the JSON name.
type FieldError struct {
	Field string
	Rule  string
}

// ValidationError lists the fields of a payload that failed validation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" ("+f.Rule+")")
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// MissingOnly reports whether every failure is an absent required field.
func (e *ValidationError) MissingOnly() bool {
	for _, f := range e.Fields {
		if f.Rule != "required" {
			return false
		}
	}
	return len(e.Fields) > 0
}
