package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/enigma/internal/alphabet"
	"github.com/roach88/enigma/internal/config"
	"github.com/roach88/enigma/internal/engine"
	"github.com/roach88/enigma/internal/journal"
	"github.com/roach88/enigma/internal/message"
)

// Harness is the scenario execution environment: a machine and the
// in-memory journal its run is recorded in.
type Harness struct {
	store   *journal.Store
	machine *engine.Machine
	logger  *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs on a fresh machine and a fresh in-memory journal.
//
// Execution flow:
// 1. Build the machine from the scenario settings
// 2. Type the input, recording every keypress in the journal
// 3. Replay the journaled session and require identical steps
// 4. Check expect, round_trip and assertions
//
// An error means the scenario could not be executed; failed checks are
// reported in the result.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario, nil)
}

// RunContext is like Run with a caller context and logger. A nil logger
// discards output.
func RunContext(ctx context.Context, scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	st, err := journal.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory journal: %w", err)
	}
	defer st.Close()
	st.SetLogger(logger)

	m, err := buildMachine(scenario)
	if err != nil {
		return nil, err
	}

	h := &Harness{
		store:   st,
		machine: m,
		logger:  logger,
	}
	return h.run(ctx, scenario)
}

// buildMachine resolves the scenario settings and alphabet.
func buildMachine(scenario *Scenario) (*engine.Machine, error) {
	a := alphabet.Latin()
	if scenario.Alphabet != "" {
		var err error
		if a, err = alphabet.New(scenario.Alphabet); err != nil {
			return nil, fmt.Errorf("failed to build alphabet: %w", err)
		}
	}

	var settings engine.Settings
	switch {
	case scenario.SettingsFile != "":
		s, err := config.LoadSettings(scenario.SettingsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		settings = s
	case scenario.Settings != nil:
		v, err := config.NewValidator()
		if err != nil {
			return nil, err
		}
		if err := config.Validate(v, *scenario.Settings); err != nil {
			return nil, fmt.Errorf("invalid settings: %w", err)
		}
		settings = *scenario.Settings
	default:
		return nil, fmt.Errorf("scenario %q has no settings", scenario.Name)
	}

	m, err := engine.New(a, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to set up machine: %w", err)
	}
	return m, nil
}

func (h *Harness) run(ctx context.Context, scenario *Scenario) (*Result, error) {
	input := scenario.Input
	if scenario.Normalize {
		n, err := message.Normalize(h.machine.Alphabet(), input)
		if err != nil {
			return nil, fmt.Errorf("failed to normalize input: %w", err)
		}
		input = n.Text
	}

	gen := journal.NewFixedGenerator("scenario-" + scenario.Name)
	sess, steps, err := h.store.Record(ctx, gen, "scenario", h.machine, input, scenario.Trace)
	if err != nil {
		return nil, fmt.Errorf("failed to run input: %w", err)
	}

	result := NewResult()
	result.SessionID = sess.ID
	result.Fingerprint = sess.Fingerprint
	result.Input = input
	result.Output = journal.Output(steps)
	result.Window = h.machine.Window()
	result.Steps = steps

	h.logger.Debug("scenario executed",
		"scenario", scenario.Name,
		"steps", len(steps),
		"window", result.Window)

	if err := h.checkReplay(ctx, sess.ID, result); err != nil {
		return nil, err
	}

	if scenario.Expect != nil {
		checkExpect(scenario.Expect, result)
	}

	if scenario.RoundTrip {
		h.checkRoundTrip(result)
	}

	actx := &AssertionContext{
		Store: h.store,
		Ctx:   ctx,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// checkReplay replays the journaled session and records every difference.
func (h *Harness) checkReplay(ctx context.Context, sessionID string, result *Result) error {
	rr, err := journal.Replay(ctx, h.store, sessionID)
	if err != nil {
		return fmt.Errorf("failed to replay session: %w", err)
	}
	for _, mm := range rr.Mismatches {
		result.AddError(fmt.Sprintf("replay step %d %s: journaled %q, replayed %q", mm.Step, mm.Field, mm.Expected, mm.Actual))
	}
	return nil
}

func checkExpect(expect *ExpectClause, result *Result) {
	if expect.Output != "" && expect.Output != result.Output {
		result.AddError((&AssertionError{
			Type:     "expect.output",
			Expected: expect.Output,
			Actual:   result.Output,
			Steps:    result.Steps,
		}).Error())
	}
	if expect.Window != "" && expect.Window != result.Window {
		result.AddError((&AssertionError{
			Type:     "expect.window",
			Expected: expect.Window,
			Actual:   result.Window,
			Steps:    result.Steps,
		}).Error())
	}
}

// checkRoundTrip types the output on the reset machine and requires the
// input back.
func (h *Harness) checkRoundTrip(result *Result) {
	h.machine.Reset()
	back, err := h.machine.Transform(result.Output)
	if err != nil {
		result.AddError(fmt.Sprintf("round_trip: %v", err))
		return
	}
	if back != result.Input {
		result.AddError((&AssertionError{
			Type:     "round_trip",
			Expected: result.Input,
			Actual:   back,
		}).Error())
	}
}
