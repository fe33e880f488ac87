package engine

import (
	"errors"
	"fmt"
)

// Error represents a configuration or processing failure of the machine.
//
// Configuration errors (unknown rotor or reflector, malformed wiring, bad
// ring or position symbol) are raised by New and Setup. InvalidSymbol is
// also raised per Process call. Neither kind leaves the machine in a
// partially updated state.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Field is the settings path that caused the error, e.g. "rotor_left.type".
	Field string

	// Symbol is the offending input symbol for INVALID_SYMBOL errors.
	Symbol rune
}

// ErrorCode categorizes machine errors.
type ErrorCode string

const (
	// ErrCodeInvalidSymbol indicates a symbol outside the machine alphabet.
	ErrCodeInvalidSymbol ErrorCode = "INVALID_SYMBOL"

	// ErrCodeUnknownRotorType indicates a rotor name missing from the catalogue.
	ErrCodeUnknownRotorType ErrorCode = "UNKNOWN_ROTOR_TYPE"

	// ErrCodeUnknownReflectorType indicates a reflector name missing from the catalogue.
	ErrCodeUnknownReflectorType ErrorCode = "UNKNOWN_REFLECTOR_TYPE"

	// ErrCodeMalformedWiring indicates a wiring that is not a permutation of
	// the alphabet, or not an involution where one is required.
	ErrCodeMalformedWiring ErrorCode = "MALFORMED_WIRING"
)

// Sentinels for errors.Is. Matching compares codes only.
var (
	ErrInvalidSymbol        = &Error{Code: ErrCodeInvalidSymbol, Message: "symbol not in alphabet"}
	ErrUnknownRotorType     = &Error{Code: ErrCodeUnknownRotorType, Message: "unknown rotor type"}
	ErrUnknownReflectorType = &Error{Code: ErrCodeUnknownReflectorType, Message: "unknown reflector type"}
	ErrMalformedWiring      = &Error{Code: ErrCodeMalformedWiring, Message: "malformed wiring"}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field=%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not a
// machine error. Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// FieldOf returns the settings path carried by err, or "" if there is none.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

func newSymbolError(r rune) *Error {
	return &Error{
		Code:    ErrCodeInvalidSymbol,
		Message: fmt.Sprintf("symbol %q is not in the alphabet", r),
		Symbol:  r,
	}
}

func newRotorTypeError(name string) *Error {
	return &Error{
		Code:    ErrCodeUnknownRotorType,
		Message: fmt.Sprintf("rotor type %q is not in the catalogue", name),
	}
}

func newReflectorTypeError(name string) *Error {
	return &Error{
		Code:    ErrCodeUnknownReflectorType,
		Message: fmt.Sprintf("reflector type %q is not in the catalogue", name),
	}
}

func newWiringError(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeMalformedWiring,
		Message: fmt.Sprintf(format, args...),
	}
}

// atField returns a copy of err with Field set, if err is an *Error.
func atField(err error, field string) error {
	var e *Error
	if !errors.As(err, &e) {
		return fmt.Errorf("%s: %w", field, err)
	}
	c := *e
	c.Field = field
	return &c
}
