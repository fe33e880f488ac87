package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := &Error{Code: ErrCodeMalformedWiring, Message: "bad"}
	assert.Equal(t, "MALFORMED_WIRING: bad", err.Error())

	err.Field = "reflector.type"
	assert.Equal(t, "MALFORMED_WIRING: bad (field=reflector.type)", err.Error())
}

func TestError_IsComparesCodes(t *testing.T) {
	err := newRotorTypeError("IX")
	assert.True(t, errors.Is(err, ErrUnknownRotorType))
	assert.False(t, errors.Is(err, ErrUnknownReflectorType))
	assert.False(t, errors.Is(err, errors.New("UNKNOWN_ROTOR_TYPE")))

	wrapped := fmt.Errorf("loading: %w", err)
	assert.True(t, errors.Is(wrapped, ErrUnknownRotorType))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeInvalidSymbol, CodeOf(fmt.Errorf("x: %w", newSymbolError('!'))))
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}

func TestAtField(t *testing.T) {
	orig := newReflectorTypeError("Z")
	err := atField(orig, "reflector.type")

	var e *Error
	assert.True(t, errors.As(err, &e))
	assert.Equal(t, "reflector.type", e.Field)
	assert.Empty(t, orig.Field, "original must not be modified")

	plain := atField(errors.New("boom"), "plugboard.wiring")
	assert.EqualError(t, plain, "plugboard.wiring: boom")
}

func TestFieldOf(t *testing.T) {
	err := fmt.Errorf("setup: %w", atField(newRotorTypeError("IX"), "rotor_left.type"))
	assert.Equal(t, "rotor_left.type", FieldOf(err))
	assert.Empty(t, FieldOf(newSymbolError('!')))
	assert.Empty(t, FieldOf(errors.New("plain")))
}
