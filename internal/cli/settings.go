package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/alphabet"
	"github.com/roach88/enigma/internal/config"
	"github.com/roach88/enigma/internal/engine"
)

// SettingsOptions selects the machine configuration for a command: an
// optional settings file with command-line overrides on top.
type SettingsOptions struct {
	File      string
	Alphabet  string
	Overrides config.Overrides
}

// bindSettingsFlags registers the machine flags on cmd.
func bindSettingsFlags(cmd *cobra.Command, s *SettingsOptions) {
	f := cmd.Flags()
	f.StringVarP(&s.File, "settings", "s", "", "settings file (.yaml, .yml, .json or .cue)")
	f.StringVar(&s.Alphabet, "alphabet", "", "26-symbol machine alphabet (default a-z)")
	f.StringVar(&s.Overrides.Rotors, "rotors", "", `rotor types left to right, e.g. "I,II,III"`)
	f.StringVar(&s.Overrides.Rings, "rings", "", `ring settings left to right, e.g. "aaa"`)
	f.StringVar(&s.Overrides.Positions, "positions", "", `start positions left to right, e.g. "adu"`)
	f.StringVar(&s.Overrides.Reflector, "reflector", "", "reflector type (B or C)")
	f.StringVar(&s.Overrides.Plugboard, "plugboard", "", `plugboard cables, e.g. "ah co de"`)
}

// MachineAlphabet resolves the --alphabet flag, defaulting to latin.
func (s *SettingsOptions) MachineAlphabet() (*alphabet.Alphabet, error) {
	if s.Alphabet == "" {
		return alphabet.Latin(), nil
	}
	a, err := alphabet.New(s.Alphabet)
	if err != nil {
		return nil, &config.LoadError{Code: config.ErrCodeFlag, Field: "alphabet", Message: err.Error()}
	}
	return a, nil
}

// Settings resolves the configured settings. Without a file the standard
// settings, written in the symbols of the machine alphabet, are the base
// for overrides.
func (s *SettingsOptions) Settings() (engine.Settings, error) {
	a, err := s.MachineAlphabet()
	if err != nil {
		return engine.Settings{}, err
	}
	base := engine.StandardSettingsFor(a)
	if s.File != "" {
		loaded, err := config.LoadSettings(s.File)
		if err != nil {
			return engine.Settings{}, err
		}
		base = loaded
	}
	if s.Overrides.IsZero() {
		return base, nil
	}

	applied, err := s.Overrides.Apply(base)
	if err != nil {
		return engine.Settings{}, err
	}
	v, err := config.NewValidator()
	if err != nil {
		return engine.Settings{}, err
	}
	if err := config.Validate(v, applied); err != nil {
		return engine.Settings{}, err
	}
	return applied, nil
}

// Machine builds a machine from the resolved settings.
func (s *SettingsOptions) Machine() (*engine.Machine, error) {
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}
	a, err := s.MachineAlphabet()
	if err != nil {
		return nil, err
	}

	m, err := engine.New(a, settings)
	if err != nil {
		return nil, &config.LoadError{Code: config.ErrCodeInvalid, Field: engine.FieldOf(err), Message: err.Error()}
	}
	return m, nil
}
