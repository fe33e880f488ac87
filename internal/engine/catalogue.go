package engine

import (
	"strings"
)

// RotorType is a catalogue entry: the internal wiring of a wheel and the
// symbols at which it trips the next wheel. Wiring and notch are written
// over alphabet.Standard and applied positionally to other alphabets.
type RotorType struct {
	Name   string `json:"name" yaml:"name"`
	Wiring string `json:"wiring" yaml:"wiring"`
	Notch  string `json:"notch" yaml:"notch"`
}

// ReflectorType is a catalogue entry for a fixed reflector.
type ReflectorType struct {
	Name   string `json:"name" yaml:"name"`
	Wiring string `json:"wiring" yaml:"wiring"`
}

// Catalogue order is significant for listings.
var rotorCatalogue = [...]RotorType{
	{Name: "I", Wiring: "ekmflgdqvzntowyhxuspaibrcj", Notch: "r"},
	{Name: "II", Wiring: "ajdksiruxblhwtmcqgznpyfvoe", Notch: "f"},
	{Name: "III", Wiring: "bdfhjlcprtxvznyeiwgakmusqo", Notch: "w"},
	{Name: "IV", Wiring: "esovpzjayquirhxlnftgkdcmwb", Notch: "k"},
	{Name: "V", Wiring: "vzbrgityupsdnhlxawmjqofeck", Notch: "a"},
	{Name: "VI", Wiring: "jpgvoumfyqbenhzrdkasxlictw", Notch: "an"},
	{Name: "VII", Wiring: "nzjhgrcxmyswboufaivlpekqdt", Notch: "an"},
	{Name: "VIII", Wiring: "fkqhtlxocbjspdzramewniuygv", Notch: "an"},
}

var reflectorCatalogue = [...]ReflectorType{
	{Name: "B", Wiring: "yruhqsldpxngokmiebfzcwvjat"},
	{Name: "C", Wiring: "fvpjiaoyedrzxwgctkuqsbnmhl"},
}

// LookupRotor returns the catalogue entry for name (case-insensitive).
func LookupRotor(name string) (RotorType, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	for _, rt := range rotorCatalogue {
		if rt.Name == key {
			return rt, nil
		}
	}
	return RotorType{}, newRotorTypeError(name)
}

// LookupReflector returns the catalogue entry for name (case-insensitive).
func LookupReflector(name string) (ReflectorType, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	for _, rt := range reflectorCatalogue {
		if rt.Name == key {
			return rt, nil
		}
	}
	return ReflectorType{}, newReflectorTypeError(name)
}

// RotorTypes returns the rotor catalogue in order.
func RotorTypes() []RotorType {
	out := make([]RotorType, len(rotorCatalogue))
	copy(out, rotorCatalogue[:])
	return out
}

// ReflectorTypes returns the reflector catalogue in order.
func ReflectorTypes() []ReflectorType {
	out := make([]ReflectorType, len(reflectorCatalogue))
	copy(out, reflectorCatalogue[:])
	return out
}

// RotorNames returns the catalogue rotor names, e.g. for flag help and
// validation messages.
func RotorNames() []string {
	names := make([]string, len(rotorCatalogue))
	for i, rt := range rotorCatalogue {
		names[i] = rt.Name
	}
	return names
}

// ReflectorNames returns the catalogue reflector names.
func ReflectorNames() []string {
	names := make([]string, len(reflectorCatalogue))
	for i, rt := range reflectorCatalogue {
		names[i] = rt.Name
	}
	return names
}
