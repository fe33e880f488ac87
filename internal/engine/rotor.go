package engine

import (
	"github.com/roach88/enigma/internal/alphabet"
)

// Direction selects which wiring table a signal crosses a rotor through.
type Direction int

const (
	// Forward is the path from the plugboard towards the reflector.
	Forward Direction = iota
	// Backward is the path from the reflector back to the plugboard.
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "unknown"
	}
}

// Rotor is one wheel of the machine.
//
// The forward and backward tables are derived from the wiring and the ring
// offset only; the rotational position is applied at lookup time. The two
// tables are mutual inverses for every offset.
type Rotor struct {
	alphabet *alphabet.Alphabet
	kind     RotorType
	offset   int
	position int
	notch    [alphabet.Size]bool
	forward  permutation
	backward permutation
}

// NewRotor builds a rotor of the given catalogue type. Offset and position
// are alphabet positions reduced modulo alphabet.Size.
func NewRotor(a *alphabet.Alphabet, kind RotorType, offset, position int) (*Rotor, error) {
	r := &Rotor{alphabet: a}
	if err := r.Setup(kind, offset, position); err != nil {
		return nil, err
	}
	return r, nil
}

// Setup replaces the rotor's type, ring offset and position and rebuilds
// its tables. On error the rotor is unchanged.
func (r *Rotor) Setup(kind RotorType, offset, position int) error {
	wiring, err := parseWiring(latin, kind.Wiring)
	if err != nil {
		return err
	}

	var notch [alphabet.Size]bool
	for _, n := range kind.Notch {
		i, ok := latin.Index(n)
		if !ok {
			return newWiringError("rotor %s notch %q is not in the alphabet", kind.Name, n)
		}
		notch[i] = true
	}

	offset = alphabet.Wrap(offset)
	inverse := wiring.inverse()

	var forward, backward permutation
	for i := 0; i < alphabet.Size; i++ {
		shifted := alphabet.Wrap(i - offset)
		forward[i] = alphabet.Wrap(wiring[shifted] + offset)
		backward[i] = alphabet.Wrap(inverse[shifted] + offset)
	}

	r.kind = kind
	r.offset = offset
	r.position = alphabet.Wrap(position)
	r.notch = notch
	r.forward = forward
	r.backward = backward
	return nil
}

// Rotate advances the rotor by one and reports whether it has landed on a
// notch.
func (r *Rotor) Rotate() bool {
	r.position = alphabet.Wrap(r.position + 1)
	return r.notch[r.position]
}

// notchAhead reports whether the next Rotate will land on a notch.
func (r *Rotor) notchAhead() bool {
	return r.notch[alphabet.Wrap(r.position+1)]
}

// Feed passes sym through the rotor in direction d at its current position.
func (r *Rotor) Feed(sym rune, d Direction) (rune, error) {
	i, ok := r.alphabet.Index(sym)
	if !ok {
		return 0, newSymbolError(sym)
	}
	return r.alphabet.Symbol(r.feed(i, d)), nil
}

func (r *Rotor) feed(i int, d Direction) int {
	rel := alphabet.Wrap(i + r.position)
	var wired int
	if d == Forward {
		wired = r.forward[rel]
	} else {
		wired = r.backward[rel]
	}
	return alphabet.Wrap(wired - r.position)
}

// Type returns the rotor's catalogue entry.
func (r *Rotor) Type() RotorType {
	return r.kind
}

// Offset returns the ring setting as an alphabet position.
func (r *Rotor) Offset() int {
	return r.offset
}

// Position returns the rotational setting as an alphabet position.
func (r *Rotor) Position() int {
	return r.position
}

// Tables returns copies of the forward and backward tables.
func (r *Rotor) Tables() (forward, backward [alphabet.Size]int) {
	return r.forward, r.backward
}
