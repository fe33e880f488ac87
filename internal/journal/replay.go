package journal

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/roach88/enigma/internal/alphabet"
	"github.com/roach88/enigma/internal/engine"
	"github.com/roach88/enigma/internal/ir"
)

// SessionReader reads stored sessions. *Store implements it.
type SessionReader interface {
	ReadSession(ctx context.Context, id string) (Session, error)
	ReadSteps(ctx context.Context, sessionID string) ([]Step, error)
}

// Mismatch is one difference between a stored step and its replay.
type Mismatch struct {
	// Step is the keypress index, or 0 for session-level fields.
	Step     int64  `json:"step"`
	Field    string `json:"field"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

// ReplayResult reports whether a stored session reproduces exactly.
type ReplayResult struct {
	SessionID     string     `json:"session_id"`
	Steps         int        `json:"steps"`
	Output        string     `json:"output"`
	Deterministic bool       `json:"deterministic"`
	Mismatches    []Mismatch `json:"mismatches,omitempty"`
}

// Replay rebuilds a machine from a stored session, feeds it the stored
// inputs and compares every output, window and (when stored) trace.
//
// An error means the session could not be replayed at all; differences
// are reported in the result.
func Replay(ctx context.Context, r SessionReader, sessionID string) (ReplayResult, error) {
	result := ReplayResult{SessionID: sessionID}

	sess, err := r.ReadSession(ctx, sessionID)
	if err != nil {
		return result, fmt.Errorf("replay: %w", err)
	}
	steps, err := r.ReadSteps(ctx, sessionID)
	if err != nil {
		return result, fmt.Errorf("replay: %w", err)
	}

	a, err := alphabet.New(sess.Alphabet)
	if err != nil {
		return result, fmt.Errorf("replay: session alphabet: %w", err)
	}
	m, err := engine.New(a, sess.Settings)
	if err != nil {
		return result, fmt.Errorf("replay: session settings: %w", err)
	}

	if fp, err := ir.SettingsFingerprint(m.Settings().Map()); err != nil {
		return result, fmt.Errorf("replay: %w", err)
	} else if fp != sess.Fingerprint {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Field:    "fingerprint",
			Expected: sess.Fingerprint,
			Actual:   fp,
		})
	}

	out := make([]rune, 0, len(steps))
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("replay: %w", err)
		}
		if utf8.RuneCountInString(step.Input) != 1 {
			return result, fmt.Errorf("replay: step %d: input %q is not a single symbol", step.Seq, step.Input)
		}
		sym, _ := utf8.DecodeRuneInString(step.Input)

		t, err := m.ProcessTrace(sym)
		if err != nil {
			return result, fmt.Errorf("replay: step %d: %w", step.Seq, err)
		}
		out = append(out, []rune(t.Output)...)
		result.Mismatches = append(result.Mismatches, compareStep(step, t)...)
	}

	result.Steps = len(steps)
	result.Output = string(out)
	result.Deterministic = len(result.Mismatches) == 0
	return result, nil
}

func compareStep(step Step, t engine.Trace) []Mismatch {
	var mm []Mismatch
	if step.Output != t.Output {
		mm = append(mm, Mismatch{Step: step.Seq, Field: "output", Expected: step.Output, Actual: t.Output})
	}
	if step.Window != t.Window {
		mm = append(mm, Mismatch{Step: step.Seq, Field: "window", Expected: step.Window, Actual: t.Window})
	}
	if step.Trace != nil && *step.Trace != t {
		mm = append(mm, Mismatch{Step: step.Seq, Field: "trace", Expected: step.Trace.String(), Actual: t.String()})
	}
	return mm
}
