package journal

import (
	"context"
	"fmt"

	"github.com/roach88/enigma/internal/engine"
	"github.com/roach88/enigma/internal/ir"
)

// Run enciphers text on m and returns one Step per symbol. Traces are kept
// only when withTrace is set. On error the steps before the failing symbol
// are returned.
func Run(m *engine.Machine, text string, withTrace bool) ([]Step, error) {
	symbols := []rune(text)
	steps := make([]Step, 0, len(symbols))
	for i, r := range symbols {
		t, err := m.ProcessTrace(r)
		if err != nil {
			return steps, fmt.Errorf("symbol %d: %w", i, err)
		}
		step := Step{
			Seq:    int64(i + 1),
			Input:  t.Input,
			Output: t.Output,
			Window: t.Window,
		}
		if withTrace {
			step.Trace = &t
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// NewSession describes a session started from m's applied settings. Its
// Seq is left zero for WriteRun to assign.
func (s *Store) NewSession(gen IDGenerator, label string, m *engine.Machine) (Session, error) {
	settings := m.Settings()
	fingerprint, err := ir.SettingsFingerprint(settings.Map())
	if err != nil {
		return Session{}, fmt.Errorf("new session: %w", err)
	}
	return Session{
		ID:          gen.Generate(),
		Label:       label,
		Alphabet:    m.Alphabet().String(),
		Settings:    settings,
		Fingerprint: fingerprint,
	}, nil
}

// Record resets m to its settings, enciphers text and journals the run as
// one session. Nothing is written if any symbol is rejected.
func (s *Store) Record(ctx context.Context, gen IDGenerator, label string, m *engine.Machine, text string, withTrace bool) (Session, []Step, error) {
	m.Reset()
	steps, err := Run(m, text, withTrace)
	if err != nil {
		return Session{}, nil, fmt.Errorf("record: %w", err)
	}

	sess, err := s.NewSession(gen, label, m)
	if err != nil {
		return Session{}, nil, fmt.Errorf("record: %w", err)
	}
	sess, err = s.WriteRun(ctx, sess, steps)
	if err != nil {
		return Session{}, nil, fmt.Errorf("record: %w", err)
	}

	s.logger.Debug("session recorded",
		"id", sess.ID,
		"seq", sess.Seq,
		"steps", len(steps),
		"fingerprint", ir.Short(sess.Fingerprint))
	return sess, steps, nil
}

// Output concatenates the outputs of steps.
func Output(steps []Step) string {
	out := make([]byte, 0, len(steps))
	for _, step := range steps {
		out = append(out, step.Output...)
	}
	return string(out)
}
