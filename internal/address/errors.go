package address

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is the kind of a ValidationError for numeric values outside their bounds
	ErrOutOfRange = errors.New("value out of range")
	// ErrNotANumber is the kind of a ValidationError for non-numeric or non-integer input
	ErrNotANumber = errors.New("value is not a number")

	// ErrInvalidFormat means an address string does not match cell-aisle-position-level
	ErrInvalidFormat = errors.New("invalid address format")
	// ErrInvalidLevel means the level component is not a multiple of 10 in 0..90
	ErrInvalidLevel = errors.New("invalid level")
)

// ValidationError is returned by every value type constructor
type ValidationError struct {
	Field string // cell, aisle, position, level
	Value string // raw input as received
	Kind  error  // ErrOutOfRange or ErrNotANumber
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Kind)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// ParseError is returned by Parse and ParseSlot
type ParseError struct {
	Input string
	Code  error // ErrInvalidFormat or ErrInvalidLevel
	Cause error // underlying ValidationError, if any
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %q: %v", e.Code, e.Input, e.Cause)
	}
	return fmt.Sprintf("%v: %q (expected cell-aisle-position-level)", e.Code, e.Input)
}

func (e *ParseError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Code, e.Cause}
	}
	return []error{e.Code}
}
