package config

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/roach88/enigma/internal/engine"
)

// Overrides are settings given on the command line. Rotor lists are
// written left to right, the way the rotor window reads.
//
//	--rotors I,II,III --rings aaa --positions adu --reflector B --plugboard "ah co"
type Overrides struct {
	Rotors    string
	Rings     string
	Positions string
	Reflector string
	Plugboard string
}

// IsZero reports whether no override is set.
func (o Overrides) IsZero() bool {
	return o == Overrides{}
}

// windowOrder maps left-to-right list positions to slots.
var windowOrder = [...]engine.Slot{engine.Left, engine.Middle, engine.Right}

// Apply returns base with every non-empty override applied.
func (o Overrides) Apply(base engine.Settings) (engine.Settings, error) {
	s := base

	if o.Rotors != "" {
		types, err := splitList(o.Rotors, "rotors", false)
		if err != nil {
			return base, err
		}
		for i, slot := range windowOrder {
			rs := s.Rotor(slot)
			rs.Type = types[i]
			s = s.WithRotor(slot, rs)
		}
	}
	if o.Rings != "" {
		rings, err := splitList(o.Rings, "rings", true)
		if err != nil {
			return base, err
		}
		for i, slot := range windowOrder {
			rs := s.Rotor(slot)
			rs.Offset = rings[i]
			s = s.WithRotor(slot, rs)
		}
	}
	if o.Positions != "" {
		positions, err := splitList(o.Positions, "positions", true)
		if err != nil {
			return base, err
		}
		for i, slot := range windowOrder {
			rs := s.Rotor(slot)
			rs.Position = positions[i]
			s = s.WithRotor(slot, rs)
		}
	}
	if o.Reflector != "" {
		s.Reflector.Type = strings.TrimSpace(o.Reflector)
	}
	if o.Plugboard != "" {
		s.Plugboard = engine.PlugboardSettings{Pairs: ParsePairs(o.Plugboard)}
	}
	return s, nil
}

// splitList splits a three-item list separated by commas or spaces. When
// symbols is true a bare three-symbol word such as "adu" is accepted too.
func splitList(v, flag string, symbols bool) ([]string, error) {
	items := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if symbols && len(items) == 1 && len([]rune(items[0])) == len(windowOrder) {
		word := []rune(items[0])
		items = make([]string, len(word))
		for i, r := range word {
			items[i] = string(r)
		}
	}
	if len(items) != len(windowOrder) {
		return nil, &LoadError{
			Code:    ErrCodeFlag,
			Field:   flag,
			Message: fmt.Sprintf("%q must list %d items left to right", v, len(windowOrder)),
		}
	}
	return items, nil
}

// ParsePairs splits plugboard cables written as "ah co de" or "ah,co,de".
func ParsePairs(v string) []string {
	return strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}
