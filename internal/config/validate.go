package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/roach88/enigma/internal/engine"
)

// NewValidator returns a validator that knows the settings tags: rotor,
// reflector and symbol. Field names in errors follow the yaml tags.
func NewValidator() (*validator.Validate, error) {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("rotor", validateRotor); err != nil {
		return nil, err
	}
	if err := validate.RegisterValidation("reflector", validateReflector); err != nil {
		return nil, err
	}
	if err := validate.RegisterValidation("symbol", validateSymbol); err != nil {
		return nil, err
	}
	return validate, nil
}

func validateRotor(fl validator.FieldLevel) bool {
	_, err := engine.LookupRotor(fl.Field().String())
	return err == nil
}

func validateReflector(fl validator.FieldLevel) bool {
	_, err := engine.LookupReflector(fl.Field().String())
	return err == nil
}

func validateSymbol(fl validator.FieldLevel) bool {
	return utf8.RuneCountInString(fl.Field().String()) == 1
}

// Validate checks s with v and reports the first failure as a *LoadError.
func Validate(v *validator.Validate, s engine.Settings) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &LoadError{Code: ErrCodeGeneric, Message: err.Error()}
	}

	fe := verrs[0]
	_, field, _ := strings.Cut(fe.Namespace(), ".")
	return &LoadError{
		Code:    ErrCodeInvalid,
		Field:   field,
		Message: describe(fe),
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "rotor":
		return fmt.Sprintf("unknown rotor type %q (want one of %s)",
			fe.Value(), strings.Join(engine.RotorNames(), ", "))
	case "reflector":
		return fmt.Sprintf("unknown reflector type %q (want one of %s)",
			fe.Value(), strings.Join(engine.ReflectorNames(), ", "))
	case "symbol":
		return fmt.Sprintf("%q must be a single symbol", fe.Value())
	case "len":
		return fmt.Sprintf("%q must have %s symbols", fe.Value(), fe.Param())
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
