package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/roach88/enigma/internal/alphabet"
	"github.com/roach88/enigma/internal/engine"
)

// Scenario defines a conformance test scenario: a machine configuration, an
// input text and what the machine must produce for it.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Alphabet is an optional 26-symbol alphabet. Defaults to a-z.
	Alphabet string `yaml:"alphabet,omitempty"`

	// Settings configures the machine inline.
	// Exactly one of Settings and SettingsFile must be given.
	Settings *engine.Settings `yaml:"settings,omitempty"`

	// SettingsFile is a settings file path, relative to the scenario file.
	SettingsFile string `yaml:"settings_file,omitempty"`

	// Input is the text typed into the machine.
	Input string `yaml:"input"`

	// Normalize folds case, strips accents and drops non-alphabet symbols
	// from Input before it is typed.
	Normalize bool `yaml:"normalize,omitempty"`

	// Expect holds the expected output and final window.
	Expect *ExpectClause `yaml:"expect,omitempty"`

	// RoundTrip requires that typing the output on a machine with the same
	// settings gives back the input.
	RoundTrip bool `yaml:"round_trip,omitempty"`

	// Trace records the signal path of every keypress in the result and
	// golden snapshot.
	Trace bool `yaml:"trace,omitempty"`

	// Assertions are extra checks on individual steps and the journal.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// ExpectClause specifies the expected run outcome. Empty fields are not
// checked.
type ExpectClause struct {
	Output string `yaml:"output,omitempty"`
	Window string `yaml:"window,omitempty"`
}

// Assertion validates one aspect of a run.
type Assertion struct {
	// Type specifies the assertion type:
	// - "output_at": the output symbol at Step is Symbol
	// - "window_at": the window after Step is Window
	// - "no_self_encipher": no symbol enciphers to itself
	// - "journal_steps": the journal holds Count steps for the session
	Type string `yaml:"type"`

	// Step is the 1-based keypress index (used by output_at, window_at).
	Step int `yaml:"step,omitempty"`

	// Symbol is the expected output symbol (used by output_at).
	Symbol string `yaml:"symbol,omitempty"`

	// Window is the expected rotor window (used by window_at).
	Window string `yaml:"window,omitempty"`

	// Count is the expected number of journaled steps (used by journal_steps).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputAt       = "output_at"
	AssertWindowAt       = "window_at"
	AssertNoSelfEncipher = "no_self_encipher"
	AssertJournalSteps   = "journal_steps"
)

// LoadScenario reads and parses a scenario YAML file.
// A relative settings_file is resolved against the scenario's directory.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.SettingsFile != "" && !filepath.IsAbs(scenario.SettingsFile) {
		scenario.SettingsFile = filepath.Join(filepath.Dir(path), scenario.SettingsFile)
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

// ParseScenario decodes scenario YAML without validating it.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every .yaml and .yml scenario in dir, sorted by file
// name. Subdirectories are not searched.
func LoadScenarios(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s", filepath.Base(p), s.Name, filepath.Base(prev))
		}
		seen[s.Name] = p
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Alphabet != "" {
		if _, err := alphabet.New(s.Alphabet); err != nil {
			return fmt.Errorf("alphabet: %w", err)
		}
	}

	switch {
	case s.Settings == nil && s.SettingsFile == "":
		return fmt.Errorf("one of settings or settings_file is required")
	case s.Settings != nil && s.SettingsFile != "":
		return fmt.Errorf("settings and settings_file are mutually exclusive")
	}

	if s.SettingsFile != "" {
		if _, err := os.Stat(s.SettingsFile); os.IsNotExist(err) {
			return fmt.Errorf("settings file not found: %s", s.SettingsFile)
		}
	}

	if s.Input == "" {
		return fmt.Errorf("input is required")
	}

	if s.Expect == nil && !s.RoundTrip && len(s.Assertions) == 0 {
		return fmt.Errorf("nothing to check: give expect, round_trip or assertions")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertOutputAt:
		if a.Step < 1 {
			return fmt.Errorf("assertions[%d]: step must be at least 1 for output_at", index)
		}
		if utf8.RuneCountInString(a.Symbol) != 1 {
			return fmt.Errorf("assertions[%d]: symbol must be a single symbol for output_at", index)
		}
	case AssertWindowAt:
		if a.Step < 1 {
			return fmt.Errorf("assertions[%d]: step must be at least 1 for window_at", index)
		}
		if utf8.RuneCountInString(a.Window) != 3 {
			return fmt.Errorf("assertions[%d]: window must have 3 symbols for window_at", index)
		}
	case AssertNoSelfEncipher:
	case AssertJournalSteps:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for journal_steps", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
