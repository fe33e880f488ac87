// Package alphabet provides the ordered symbol set shared by every part of
// the machine.
//
// An Alphabet is immutable once built. Wiring strings, notches, plugboard
// pairs and rotor settings are all expressed in its symbols, and every
// lookup is a constant-time table access.
package alphabet

import (
	"fmt"
	"strings"
)

// Size is the number of symbols in every alphabet.
const Size = 26

// Standard is the lowercase latin alphabet used by the catalogues.
const Standard = "abcdefghijklmnopqrstuvwxyz"

// Alphabet is a totally ordered set of Size distinct symbols.
type Alphabet struct {
	symbols [Size]rune
	index   map[rune]int
}

// New builds an alphabet from a string of exactly Size distinct symbols.
func New(symbols string) (*Alphabet, error) {
	runes := []rune(symbols)
	if len(runes) != Size {
		return nil, fmt.Errorf("alphabet must have %d symbols, got %d", Size, len(runes))
	}

	a := &Alphabet{index: make(map[rune]int, Size)}
	for i, r := range runes {
		if prev, dup := a.index[r]; dup {
			return nil, fmt.Errorf("alphabet symbol %q repeated at positions %d and %d", r, prev, i)
		}
		a.symbols[i] = r
		a.index[r] = i
	}
	return a, nil
}

// MustNew is like New but panics on error.
// Use only with literal alphabets known to be valid.
func MustNew(symbols string) *Alphabet {
	a, err := New(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// Latin returns a fresh copy of the standard alphabet.
func Latin() *Alphabet {
	return MustNew(Standard)
}

// Index returns the position of r, and false if r is not a member.
func (a *Alphabet) Index(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

// Symbol returns the symbol at position i, wrapping modulo Size.
func (a *Alphabet) Symbol(i int) rune {
	return a.symbols[Wrap(i)]
}

// Contains reports whether r is a member of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// Symbols returns the symbols in order.
func (a *Alphabet) Symbols() [Size]rune {
	return a.symbols
}

func (a *Alphabet) String() string {
	var b strings.Builder
	b.Grow(Size)
	for _, r := range a.symbols {
		b.WriteRune(r)
	}
	return b.String()
}

// Wrap reduces i into [0, Size), including negative values.
func Wrap(i int) int {
	i %= Size
	if i < 0 {
		i += Size
	}
	return i
}
