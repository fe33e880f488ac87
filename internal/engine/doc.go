// Package engine implements the rotor cipher machine.
//
// The machine is a plugboard, three rotors and a reflector. Each keypress
// steps the rotors and then sends one symbol along the signal path:
//
//	plugboard → right → middle → left → reflector → left → middle → right → plugboard
//
// STEPPING:
//
// Before the signal passes, the rotors move like an odometer with one
// anomaly:
//  1. If the middle rotor will land on its notch with its next step, the
//     middle and left rotors both step (the double step).
//  2. The right rotor always steps. While a rotor lands on a notch, the
//     rotor to its left steps too.
//
// WIRING TABLES:
//
// Each rotor keeps forward and backward tables built from its wiring and
// ring offset. The tables are mutual inverses and exclude the rotor
// position, which is added on entry and removed on exit at lookup time.
//
// ERRORS:
//
// Configuration problems are reported by New and Setup; symbols outside the
// alphabet by Process. All are *Error values matched with errors.Is against
// ErrInvalidSymbol, ErrUnknownRotorType, ErrUnknownReflectorType and
// ErrMalformedWiring. A failed call never changes the machine.
//
// The package performs no I/O. Use ProcessTrace to observe the signal path.
package engine
