package engine

import (
	"strings"

	"github.com/roach88/enigma/internal/alphabet"
)

// permutation is a table over alphabet positions: p[i] is the image of i.
type permutation [alphabet.Size]int

// latin is the frame the catalogue wirings are written in.
var latin = alphabet.Latin()

func identity() permutation {
	var p permutation
	for i := range p {
		p[i] = i
	}
	return p
}

// parseWiring converts a wiring string over a into positions. The wiring
// must name every symbol of a exactly once.
func parseWiring(a *alphabet.Alphabet, wiring string) (permutation, error) {
	var p permutation
	runes := []rune(wiring)
	if len(runes) != alphabet.Size {
		return p, newWiringError("wiring %q has %d symbols, want %d", wiring, len(runes), alphabet.Size)
	}

	var seen [alphabet.Size]bool
	for i, r := range runes {
		idx, ok := a.Index(r)
		if !ok {
			return p, newWiringError("wiring symbol %q is not in the alphabet", r)
		}
		if seen[idx] {
			return p, newWiringError("wiring symbol %q appears more than once", r)
		}
		seen[idx] = true
		p[i] = idx
	}
	return p, nil
}

func (p permutation) inverse() permutation {
	var inv permutation
	for i, v := range p {
		inv[v] = i
	}
	return inv
}

// firstNonInvolution returns the first i with p[p[i]] != i, or -1.
func (p permutation) firstNonInvolution() int {
	for i, v := range p {
		if p[v] != i {
			return i
		}
	}
	return -1
}

// firstFixedPoint returns the first i with p[i] == i, or -1.
func (p permutation) firstFixedPoint() int {
	for i, v := range p {
		if v == i {
			return i
		}
	}
	return -1
}

func (p permutation) render(a *alphabet.Alphabet) string {
	var b strings.Builder
	b.Grow(alphabet.Size)
	for _, v := range p {
		b.WriteRune(a.Symbol(v))
	}
	return b.String()
}

// Mapping is a static bijection over the alphabet. It is used as the
// reflector and as the base of the plugboard.
type Mapping struct {
	alphabet *alphabet.Alphabet
	wiring   permutation
}

// NewMapping builds a mapping where wiring[i] is the image of the i-th
// alphabet symbol. The wiring must be a permutation of the alphabet.
func NewMapping(a *alphabet.Alphabet, wiring string) (*Mapping, error) {
	p, err := parseWiring(a, wiring)
	if err != nil {
		return nil, err
	}
	return &Mapping{alphabet: a, wiring: p}, nil
}

// NewReflector builds a reflector from a wiring over a. The wiring must be
// an involution without fixed points.
func NewReflector(a *alphabet.Alphabet, wiring string) (*Mapping, error) {
	p, err := parseWiring(a, wiring)
	if err != nil {
		return nil, err
	}
	if err := checkReflector(a, p); err != nil {
		return nil, err
	}
	return &Mapping{alphabet: a, wiring: p}, nil
}

// catalogueReflector builds a catalogue reflector on a.
func catalogueReflector(a *alphabet.Alphabet, rt ReflectorType) (*Mapping, error) {
	p, err := parseWiring(latin, rt.Wiring)
	if err != nil {
		return nil, err
	}
	if err := checkReflector(a, p); err != nil {
		return nil, err
	}
	return &Mapping{alphabet: a, wiring: p}, nil
}

func checkReflector(a *alphabet.Alphabet, p permutation) error {
	if i := p.firstNonInvolution(); i >= 0 {
		return newWiringError("reflector is not an involution: %q maps to %q but %q maps to %q",
			a.Symbol(i), a.Symbol(p[i]), a.Symbol(p[i]), a.Symbol(p[p[i]]))
	}
	if i := p.firstFixedPoint(); i >= 0 {
		return newWiringError("reflector maps %q to itself", a.Symbol(i))
	}
	return nil
}

// Feed returns the image of r.
func (m *Mapping) Feed(r rune) (rune, error) {
	i, ok := m.alphabet.Index(r)
	if !ok {
		return 0, newSymbolError(r)
	}
	return m.alphabet.Symbol(m.feed(i)), nil
}

func (m *Mapping) feed(i int) int {
	return m.wiring[i]
}

// Wiring returns the mapping as a string of images in alphabet order.
func (m *Mapping) Wiring() string {
	return m.wiring.render(m.alphabet)
}

// IsInvolution reports whether applying the mapping twice is the identity.
func (m *Mapping) IsInvolution() bool {
	return m.wiring.firstNonInvolution() < 0
}

// Plugboard is a mutable involution applied before and after the rotors.
// Unplugged sockets map to themselves.
type Plugboard struct {
	Mapping
}

// NewPlugboard returns a plugboard with every socket unplugged.
func NewPlugboard(a *alphabet.Alphabet) *Plugboard {
	return &Plugboard{Mapping{alphabet: a, wiring: identity()}}
}

// ParsePlugboard builds a plugboard from a full wiring string. An empty
// wiring means no cables. The wiring must be an involution.
func ParsePlugboard(a *alphabet.Alphabet, wiring string) (*Plugboard, error) {
	if wiring == "" {
		return NewPlugboard(a), nil
	}
	p, err := parseWiring(a, wiring)
	if err != nil {
		return nil, err
	}
	if i := p.firstNonInvolution(); i >= 0 {
		return nil, newWiringError("plugboard is not an involution: %q maps to %q but %q maps to %q",
			a.Symbol(i), a.Symbol(p[i]), a.Symbol(p[i]), a.Symbol(p[p[i]]))
	}
	return &Plugboard{Mapping{alphabet: a, wiring: p}}, nil
}

// Wire connects x and y with a cable. A socket holds one cable, so
// re-wiring a socket drops its previous partner: after Wire('a', 'b') and
// Wire('a', 'c'), b is unplugged and maps to itself again.
func (p *Plugboard) Wire(x, y rune) error {
	i, ok := p.alphabet.Index(x)
	if !ok {
		return newSymbolError(x)
	}
	j, ok := p.alphabet.Index(y)
	if !ok {
		return newSymbolError(y)
	}
	if i == j {
		return newWiringError("cannot plug %q into itself", x)
	}

	p.unplug(i)
	p.unplug(j)
	p.wiring[i], p.wiring[j] = j, i
	return nil
}

// WirePairs applies pairs such as "ah" or "co" in order. A socket may be
// used by at most one pair.
func (p *Plugboard) WirePairs(pairs ...string) error {
	used := make(map[rune]string, 2*len(pairs))
	for _, pair := range pairs {
		runes := []rune(pair)
		if len(runes) != 2 {
			return newWiringError("plugboard pair %q must have exactly 2 symbols", pair)
		}
		if runes[0] == runes[1] {
			return newWiringError("cannot plug %q into itself", runes[0])
		}
		for _, r := range runes {
			if prev, dup := used[r]; dup {
				return newWiringError("socket %q used by pairs %q and %q", r, prev, pair)
			}
			used[r] = pair
		}
		if err := p.Wire(runes[0], runes[1]); err != nil {
			return err
		}
	}
	return nil
}

// Unwire removes the cable plugged into x, if any.
func (p *Plugboard) Unwire(x rune) error {
	i, ok := p.alphabet.Index(x)
	if !ok {
		return newSymbolError(x)
	}
	p.unplug(i)
	return nil
}

// Reset removes every cable.
func (p *Plugboard) Reset() {
	p.wiring = identity()
}

func (p *Plugboard) unplug(i int) {
	k := p.wiring[i]
	p.wiring[k] = k
	p.wiring[i] = i
}

// Pairs returns the plugged pairs in alphabet order, e.g. ["ah", "co"].
func (p *Plugboard) Pairs() []string {
	var pairs []string
	for i, j := range p.wiring {
		if i < j {
			pairs = append(pairs, string([]rune{p.alphabet.Symbol(i), p.alphabet.Symbol(j)}))
		}
	}
	return pairs
}
