package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/enigma/internal/ir"
)

// Snapshot is the part of a result compared against golden files.
type Snapshot struct {
	ScenarioName string
	Fingerprint  string
	Output       string
	Window       string
	Steps        int
	// Trace is set only for traced runs.
	Trace []map[string]any
}

// NewSnapshot builds the snapshot of a result.
func NewSnapshot(scenarioName string, result *Result) Snapshot {
	s := Snapshot{
		ScenarioName: scenarioName,
		Fingerprint:  result.Fingerprint,
		Output:       result.Output,
		Window:       result.Window,
		Steps:        len(result.Steps),
	}
	if result.Traced() {
		s.Trace = make([]map[string]any, len(result.Steps))
		for i, step := range result.Steps {
			s.Trace[i] = step.Trace.Map()
		}
	}
	return s
}

// Canonical serializes the snapshot as canonical JSON. Traced snapshots
// carry the trace and its digest.
func (s Snapshot) Canonical() ([]byte, error) {
	m := map[string]any{
		"scenario_name": s.ScenarioName,
		"fingerprint":   s.Fingerprint,
		"output":        s.Output,
		"window":        s.Window,
		"steps":         s.Steps,
	}
	if s.Trace != nil {
		trace := make([]any, len(s.Trace))
		for i, t := range s.Trace {
			trace[i] = t
		}
		digest, err := ir.TraceDigest(s.Trace)
		if err != nil {
			return nil, err
		}
		m["trace"] = trace
		m["trace_digest"] = digest
	}
	return ir.MarshalCanonical(m)
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := NewSnapshot(scenarioName, result).Canonical()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
