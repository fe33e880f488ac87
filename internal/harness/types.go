package harness

import (
	"github.com/roach88/enigma/internal/journal"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// SessionID identifies the run in the scenario's in-memory journal.
	SessionID string `json:"session_id"`

	// Fingerprint identifies the canonical settings the run used.
	Fingerprint string `json:"fingerprint"`

	// Input is the text fed to the machine, after normalization.
	Input string `json:"input"`

	// Output is the enciphered text.
	Output string `json:"output"`

	// Window is the rotor window after the last symbol.
	Window string `json:"window"`

	// Steps holds one entry per keypress. Traces are kept only when the
	// scenario asks for them.
	Steps []journal.Step `json:"steps"`

	// Errors contains failed expectation messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []journal.Step{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Traced reports whether the steps carry traces.
func (r *Result) Traced() bool {
	return len(r.Steps) > 0 && r.Steps[0].Trace != nil
}
