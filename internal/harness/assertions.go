package harness

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/enigma/internal/journal"
)

// AssertionError is returned when an assertion fails.
// It includes the steps of the run to help debug the failure.
type AssertionError struct {
	Type     string         // Assertion type for categorization
	Expected string         // Human-readable expected outcome
	Actual   string         // Human-readable actual outcome
	Steps    []journal.Step // Steps for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Steps) > 0 {
		fmt.Fprintf(&buf, "\nSteps:\n")
		for _, step := range e.Steps {
			if step.Trace != nil {
				fmt.Fprintf(&buf, "  [%d] %s\n", step.Seq, step.Trace)
				continue
			}
			fmt.Fprintf(&buf, "  [%d] %s -> %s | %s\n", step.Seq, step.Input, step.Output, step.Window)
		}
	}

	return buf.String()
}

// stepAt returns the 1-based step n.
func stepAt(steps []journal.Step, n int) (journal.Step, bool) {
	if n < 1 || n > len(steps) {
		return journal.Step{}, false
	}
	return steps[n-1], true
}

// assertOutputAt checks the output symbol of one keypress.
func assertOutputAt(steps []journal.Step, assertion Assertion) error {
	step, ok := stepAt(steps, assertion.Step)
	if !ok {
		return &AssertionError{
			Type:     AssertOutputAt,
			Expected: fmt.Sprintf("step %d", assertion.Step),
			Actual:   fmt.Sprintf("run has %d steps", len(steps)),
		}
	}
	if step.Output != assertion.Symbol {
		return &AssertionError{
			Type:     AssertOutputAt,
			Expected: fmt.Sprintf("step %d outputs %s", assertion.Step, assertion.Symbol),
			Actual:   fmt.Sprintf("step %d outputs %s", assertion.Step, step.Output),
			Steps:    steps,
		}
	}
	return nil
}

// assertWindowAt checks the rotor window after one keypress.
func assertWindowAt(steps []journal.Step, assertion Assertion) error {
	step, ok := stepAt(steps, assertion.Step)
	if !ok {
		return &AssertionError{
			Type:     AssertWindowAt,
			Expected: fmt.Sprintf("step %d", assertion.Step),
			Actual:   fmt.Sprintf("run has %d steps", len(steps)),
		}
	}
	if step.Window != assertion.Window {
		return &AssertionError{
			Type:     AssertWindowAt,
			Expected: fmt.Sprintf("window %s after step %d", assertion.Window, assertion.Step),
			Actual:   fmt.Sprintf("window %s after step %d", step.Window, assertion.Step),
			Steps:    steps,
		}
	}
	return nil
}

// assertNoSelfEncipher checks that no keypress returned its own symbol.
func assertNoSelfEncipher(steps []journal.Step) error {
	for _, step := range steps {
		if step.Input == step.Output {
			return &AssertionError{
				Type:     AssertNoSelfEncipher,
				Expected: "every output differs from its input",
				Actual:   fmt.Sprintf("step %d enciphers %s to itself", step.Seq, step.Input),
				Steps:    steps,
			}
		}
	}
	return nil
}

// assertJournalSteps counts the steps stored for the session.
func assertJournalSteps(ctx context.Context, st *journal.Store, sessionID string, assertion Assertion) error {
	rows, err := st.Query(ctx, "SELECT COUNT(*) FROM steps WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("journal_steps: query failed: %w", err)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return fmt.Errorf("journal_steps: scan failed: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("journal_steps: %w", err)
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertJournalSteps,
			Expected: fmt.Sprintf("%d journaled steps", assertion.Count),
			Actual:   fmt.Sprintf("%d journaled steps", count),
		}
	}
	return nil
}

// AssertionContext provides context for evaluating assertions.
type AssertionContext struct {
	Store *journal.Store
	Ctx   context.Context
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
// The actx parameter provides journal access for journal_steps assertions.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertOutputAt:
			err = assertOutputAt(result.Steps, assertion)
		case AssertWindowAt:
			err = assertWindowAt(result.Steps, assertion)
		case AssertNoSelfEncipher:
			err = assertNoSelfEncipher(result.Steps)
		case AssertJournalSteps:
			if actx == nil || actx.Store == nil {
				err = fmt.Errorf("assertion[%d]: journal_steps requires journal context", i)
			} else {
				err = assertJournalSteps(actx.Ctx, actx.Store, result.SessionID, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
