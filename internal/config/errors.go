package config

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error codes for settings loading.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeParse       = "E004" // YAML, JSON or CUE parse failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeSchema      = "E006" // CUE schema unification failed
	ErrCodeInvalid     = "E201" // Settings value failed validation
	ErrCodeUnsupported = "E202" // Unknown settings file extension
	ErrCodeFlag        = "E203" // Malformed command-line setting
)

// LoadError describes a settings file or flag that could not be used.
type LoadError struct {
	Code    string
	Message string
	// Field is the settings path, e.g. "rotor_left.type", when known.
	Field string
	Pos   token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// fromCUEError keeps the first CUE error with its position.
func fromCUEError(code string, err error) *LoadError {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	first := errs[0]
	le := &LoadError{Code: code, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	if path := first.Path(); len(path) > 0 {
		le.Field = joinPath(path)
	}
	return le
}

func joinPath(path []string) string {
	out := path[0]
	for _, p := range path[1:] {
		out += "." + p
	}
	return out
}
