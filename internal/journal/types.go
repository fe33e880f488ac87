package journal

import (
	"errors"

	"github.com/roach88/enigma/internal/engine"
)

// ErrSessionNotFound is returned when a session id is not in the journal.
var ErrSessionNotFound = errors.New("session not found")

// Session is one journaled run of the machine.
type Session struct {
	ID  string `json:"id"`
	Seq int64  `json:"seq"`
	// Label is a free-form tag such as "encode" or "decode".
	Label string `json:"label"`
	// Alphabet is the machine alphabet as a 26-symbol string.
	Alphabet string `json:"alphabet"`
	// Settings are the canonical settings the run started from.
	Settings    engine.Settings `json:"settings"`
	Fingerprint string          `json:"fingerprint"`
}

// Step is one keypress of a session.
type Step struct {
	// Seq is the keypress index within the session, starting at 1.
	Seq    int64  `json:"seq"`
	Input  string `json:"input"`
	Output string `json:"output"`
	Window string `json:"window"`
	// Trace is nil unless the run was traced.
	Trace *engine.Trace `json:"trace,omitempty"`
}
