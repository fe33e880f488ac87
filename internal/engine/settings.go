package engine

import (
	"fmt"

	"github.com/roach88/enigma/internal/alphabet"
)

// Slot names a rotor position in the machine. Slot order is also the order
// in which the forward signal visits the rotors.
type Slot int

const (
	Right Slot = iota
	Middle
	Left
)

// Slots lists every slot in forward signal order.
var Slots = [...]Slot{Right, Middle, Left}

func (s Slot) String() string {
	switch s {
	case Right:
		return "rotor_right"
	case Middle:
		return "rotor_middle"
	case Left:
		return "rotor_left"
	default:
		return fmt.Sprintf("slot(%d)", int(s))
	}
}

// Settings is the complete configuration of a machine.
// Field names follow the settings file format.
type Settings struct {
	Plugboard   PlugboardSettings `yaml:"plugboard" json:"plugboard"`
	RotorRight  RotorSettings     `yaml:"rotor_right" json:"rotor_right"`
	RotorMiddle RotorSettings     `yaml:"rotor_middle" json:"rotor_middle"`
	RotorLeft   RotorSettings     `yaml:"rotor_left" json:"rotor_left"`
	Reflector   ReflectorSettings `yaml:"reflector" json:"reflector"`
}

// PlugboardSettings describes the plugboard either as a full wiring string,
// as cable pairs, or both (pairs are applied on top of the wiring).
type PlugboardSettings struct {
	Wiring string   `yaml:"wiring,omitempty" json:"wiring,omitempty" validate:"omitempty,len=26"`
	Pairs  []string `yaml:"pairs,omitempty" json:"pairs,omitempty" validate:"omitempty,dive,len=2"`
}

// RotorSettings selects a catalogue rotor with its ring offset and start
// position. Empty offset or position means the first alphabet symbol.
type RotorSettings struct {
	Type     string `yaml:"type" json:"type" validate:"required,rotor"`
	Offset   string `yaml:"offset,omitempty" json:"offset,omitempty" validate:"omitempty,symbol"`
	Position string `yaml:"position,omitempty" json:"position,omitempty" validate:"omitempty,symbol"`
}

// ReflectorSettings selects a catalogue reflector.
type ReflectorSettings struct {
	Type string `yaml:"type" json:"type" validate:"required,reflector"`
}

// StandardSettings returns the standard configuration on the latin
// alphabet: rotors III, II, I from right to left at ring and position "a",
// reflector B, no cables.
func StandardSettings() Settings {
	return StandardSettingsFor(alphabet.Latin())
}

// StandardSettingsFor returns the standard configuration written in the
// symbols of a: rings and positions at its first symbol and an identity
// plugboard wiring.
func StandardSettingsFor(a *alphabet.Alphabet) Settings {
	first := string(a.Symbol(0))
	return Settings{
		Plugboard:   PlugboardSettings{Wiring: a.String()},
		RotorRight:  RotorSettings{Type: "III", Offset: first, Position: first},
		RotorMiddle: RotorSettings{Type: "II", Offset: first, Position: first},
		RotorLeft:   RotorSettings{Type: "I", Offset: first, Position: first},
		Reflector:   ReflectorSettings{Type: "B"},
	}
}

// Rotor returns the settings for slot.
func (s Settings) Rotor(slot Slot) RotorSettings {
	switch slot {
	case Middle:
		return s.RotorMiddle
	case Left:
		return s.RotorLeft
	default:
		return s.RotorRight
	}
}

// WithRotor returns a copy of s with the settings for slot replaced.
func (s Settings) WithRotor(slot Slot, rs RotorSettings) Settings {
	switch slot {
	case Right:
		s.RotorRight = rs
	case Middle:
		s.RotorMiddle = rs
	case Left:
		s.RotorLeft = rs
	}
	return s
}

// Map returns the settings as a map for canonical serialization.
// Empty optional fields are omitted.
func (s Settings) Map() map[string]any {
	plugboard := map[string]any{}
	if s.Plugboard.Wiring != "" {
		plugboard["wiring"] = s.Plugboard.Wiring
	}
	if len(s.Plugboard.Pairs) > 0 {
		pairs := make([]any, len(s.Plugboard.Pairs))
		for i, p := range s.Plugboard.Pairs {
			pairs[i] = p
		}
		plugboard["pairs"] = pairs
	}

	m := map[string]any{
		"plugboard": plugboard,
		"reflector": map[string]any{"type": s.Reflector.Type},
	}
	for _, slot := range Slots {
		rs := s.Rotor(slot)
		rotor := map[string]any{"type": rs.Type}
		if rs.Offset != "" {
			rotor["offset"] = rs.Offset
		}
		if rs.Position != "" {
			rotor["position"] = rs.Position
		}
		m[slot.String()] = rotor
	}
	return m
}
