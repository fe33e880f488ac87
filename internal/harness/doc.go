// Package harness runs conformance scenarios against the cipher machine.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: double_step
//	description: "Middle rotor steps twice in a row"
//	settings:
//	  rotor_right: {type: III, position: u}
//	  rotor_middle: {type: II, position: d}
//	  rotor_left: {type: I}
//	  reflector: {type: B}
//	input: aaa
//	expect:
//	  output: eqi
//	  window: bfx
//	round_trip: true
//	trace: true
//	assertions:
//	  - type: window_at
//	    step: 2
//	    window: aew
//
// settings_file may replace settings; it is resolved relative to the
// scenario file. normalize: true folds and filters the input first.
//
// # Assertion Types
//
//   - output_at: the output symbol of one keypress
//   - window_at: the rotor window after one keypress
//   - no_self_encipher: no symbol enciphers to itself
//   - journal_steps: the number of steps stored in the journal
//
// # Determinism
//
// Every scenario runs on a fresh machine and a fresh in-memory journal with
// a fixed session id. The journaled session is replayed before any check,
// and a replay difference fails the scenario. Snapshots are canonical JSON,
// so golden files compare byte for byte.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/double_step.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
