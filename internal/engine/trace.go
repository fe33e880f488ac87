package engine

import (
	"fmt"
	"strings"
)

// Trace records the symbol at every stage of one keypress.
//
// Forward is indexed right, middle, left (the order the signal visits the
// rotors); Backward is indexed left, middle, right. Window is the rotor
// positions after stepping, left to right.
type Trace struct {
	Input     string    `json:"input"`
	Plugboard string    `json:"plugboard"`
	Forward   [3]string `json:"forward"`
	Reflector string    `json:"reflector"`
	Backward  [3]string `json:"backward"`
	Output    string    `json:"output"`
	Window    string    `json:"window"`
}

// Map returns the trace as a map for canonical serialization.
func (t Trace) Map() map[string]any {
	return map[string]any{
		"input":     t.Input,
		"plugboard": t.Plugboard,
		"forward":   []any{t.Forward[0], t.Forward[1], t.Forward[2]},
		"reflector": t.Reflector,
		"backward":  []any{t.Backward[0], t.Backward[1], t.Backward[2]},
		"output":    t.Output,
		"window":    t.Window,
	}
}

// String renders the trace on one line, e.g.
//
//	a pb a r0 c r1 d r2 f rf s r2 s r1 e r0 b pb b | aab
func (t Trace) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s pb %s", t.Input, t.Plugboard)
	for i, s := range t.Forward {
		fmt.Fprintf(&b, " r%d %s", i, s)
	}
	fmt.Fprintf(&b, " rf %s", t.Reflector)
	for i, s := range t.Backward {
		fmt.Fprintf(&b, " r%d %s", len(t.Backward)-1-i, s)
	}
	fmt.Fprintf(&b, " pb %s | %s", t.Output, t.Window)
	return b.String()
}

// Outputs concatenates the output symbols of traces.
func Outputs(traces []Trace) string {
	var b strings.Builder
	b.Grow(len(traces))
	for _, t := range traces {
		b.WriteString(t.Output)
	}
	return b.String()
}
