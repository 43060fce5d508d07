package ingest

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidNumeric    = errors.New("invalid numeric value")
	ErrInvalidDiscipline = errors.New("invalid discipline")
	ErrMissingColumn     = errors.New("missing required column")
)

// FieldError reports a single cell that failed to parse.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldErr(field, value string, err error) error {
	return &FieldError{Field: field, Value: value, Err: err}
}
