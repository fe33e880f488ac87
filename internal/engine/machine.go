package engine

import (
	"fmt"
	"strings"

	"github.com/roach88/enigma/internal/alphabet"
)

// Machine is the cipher engine: a plugboard, three rotors and a reflector.
//
// Every Process call is one keypress: the rotors step, then the symbol
// travels plugboard, rotors right to left, reflector, rotors left to right,
// plugboard. Rotor positions are the only state that changes between calls.
//
// A Machine is not safe for concurrent use.
type Machine struct {
	alphabet  *alphabet.Alphabet
	settings  Settings
	plugboard *Plugboard
	rotors    [len(Slots)]*Rotor // indexed by Slot
	reflector *Mapping
}

// New builds a machine on a configured with s.
func New(a *alphabet.Alphabet, s Settings) (*Machine, error) {
	m := &Machine{alphabet: a}
	if err := m.Setup(s); err != nil {
		return nil, err
	}
	return m, nil
}

// NewStandard builds a machine on the latin alphabet with StandardSettings.
func NewStandard() *Machine {
	m, err := New(alphabet.Latin(), StandardSettings())
	if err != nil {
		panic(fmt.Sprintf("standard settings rejected: %v", err))
	}
	return m
}

// Setup reconfigures every part of the machine from s and sets the rotor
// positions. This is the only way to reset positions. On error the machine
// keeps its previous configuration and state.
func (m *Machine) Setup(s Settings) error {
	plugboard, err := ParsePlugboard(m.alphabet, s.Plugboard.Wiring)
	if err != nil {
		return atField(err, "plugboard.wiring")
	}
	if err := plugboard.WirePairs(s.Plugboard.Pairs...); err != nil {
		return atField(err, "plugboard.pairs")
	}

	var rotors [len(Slots)]*Rotor
	applied := Settings{
		Plugboard: PlugboardSettings{Wiring: plugboard.Wiring()},
	}
	for _, slot := range Slots {
		rotor, rs, err := m.buildRotor(slot, s.Rotor(slot))
		if err != nil {
			return err
		}
		rotors[slot] = rotor
		applied = applied.WithRotor(slot, rs)
	}

	rt, err := LookupReflector(s.Reflector.Type)
	if err != nil {
		return atField(err, "reflector.type")
	}
	reflector, err := catalogueReflector(m.alphabet, rt)
	if err != nil {
		return atField(err, "reflector.type")
	}
	applied.Reflector = ReflectorSettings{Type: rt.Name}

	m.settings = applied
	m.plugboard = plugboard
	m.rotors = rotors
	m.reflector = reflector
	return nil
}

// buildRotor resolves one slot's settings. The returned RotorSettings has
// the canonical type name and explicit offset and position symbols.
func (m *Machine) buildRotor(slot Slot, rs RotorSettings) (*Rotor, RotorSettings, error) {
	field := slot.String()

	kind, err := LookupRotor(rs.Type)
	if err != nil {
		return nil, rs, atField(err, field+".type")
	}
	offset, err := m.settingSymbol(rs.Offset)
	if err != nil {
		return nil, rs, atField(err, field+".offset")
	}
	position, err := m.settingSymbol(rs.Position)
	if err != nil {
		return nil, rs, atField(err, field+".position")
	}

	rotor, err := NewRotor(m.alphabet, kind, offset, position)
	if err != nil {
		return nil, rs, atField(err, field+".type")
	}
	return rotor, RotorSettings{
		Type:     kind.Name,
		Offset:   string(m.alphabet.Symbol(offset)),
		Position: string(m.alphabet.Symbol(position)),
	}, nil
}

// settingSymbol converts a one-symbol ring or position setting. Empty
// means the first symbol.
func (m *Machine) settingSymbol(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	runes := []rune(v)
	if len(runes) != 1 {
		return 0, &Error{
			Code:    ErrCodeInvalidSymbol,
			Message: fmt.Sprintf("setting %q must be a single symbol", v),
		}
	}
	i, ok := m.alphabet.Index(runes[0])
	if !ok {
		return 0, newSymbolError(runes[0])
	}
	return i, nil
}

// Reset re-applies the settings of the last successful Setup, returning
// the rotors to their start positions and the plugboard to its configured
// wiring.
func (m *Machine) Reset() {
	if err := m.Setup(m.settings); err != nil {
		panic(fmt.Sprintf("applied settings rejected on reset: %v", err))
	}
}

// Process enciphers one symbol and advances the machine.
// A symbol outside the alphabet fails without moving any rotor.
func (m *Machine) Process(sym rune) (rune, error) {
	i, ok := m.alphabet.Index(sym)
	if !ok {
		return 0, newSymbolError(sym)
	}
	m.step()
	return m.alphabet.Symbol(m.signal(i, nil)), nil
}

// ProcessTrace is like Process and also returns the symbol seen at every
// stage of the signal path.
func (m *Machine) ProcessTrace(sym rune) (Trace, error) {
	i, ok := m.alphabet.Index(sym)
	if !ok {
		return Trace{}, newSymbolError(sym)
	}
	m.step()
	t := Trace{Input: string(sym)}
	m.signal(i, &t)
	t.Window = m.Window()
	return t, nil
}

// Transform processes every symbol of text in order. On error the result
// holds the symbols enciphered before the failing one.
func (m *Machine) Transform(text string) (string, error) {
	var b strings.Builder
	b.Grow(len(text))
	for pos, r := range []rune(text) {
		out, err := m.Process(r)
		if err != nil {
			return b.String(), fmt.Errorf("symbol %d: %w", pos, err)
		}
		b.WriteRune(out)
	}
	return b.String(), nil
}

// TraceText is like Transform and returns one Trace per symbol.
func (m *Machine) TraceText(text string) ([]Trace, error) {
	runes := []rune(text)
	traces := make([]Trace, 0, len(runes))
	for pos, r := range runes {
		t, err := m.ProcessTrace(r)
		if err != nil {
			return traces, fmt.Errorf("symbol %d: %w", pos, err)
		}
		traces = append(traces, t)
	}
	return traces, nil
}

// step advances the rotors for one keypress.
func (m *Machine) step() {
	// Double step: a middle rotor about to reach its notch moves together
	// with the left rotor, in addition to the cascade below.
	middle := m.rotors[Middle]
	if middle.notchAhead() {
		middle.Rotate()
		m.rotors[Left].Rotate()
	}

	// The right rotor always moves; each notch hit carries one slot left.
	for _, slot := range Slots {
		if !m.rotors[slot].Rotate() {
			break
		}
	}
}

// signal runs position i through the wiring. If t is non-nil every stage
// is recorded in it.
func (m *Machine) signal(i int, t *Trace) int {
	i = m.plugboard.feed(i)
	if t != nil {
		t.Plugboard = m.symbol(i)
	}

	for n, slot := range Slots {
		i = m.rotors[slot].feed(i, Forward)
		if t != nil {
			t.Forward[n] = m.symbol(i)
		}
	}

	i = m.reflector.feed(i)
	if t != nil {
		t.Reflector = m.symbol(i)
	}

	for n := len(Slots) - 1; n >= 0; n-- {
		i = m.rotors[Slots[n]].feed(i, Backward)
		if t != nil {
			t.Backward[len(Slots)-1-n] = m.symbol(i)
		}
	}

	i = m.plugboard.feed(i)
	if t != nil {
		t.Output = m.symbol(i)
	}
	return i
}

func (m *Machine) symbol(i int) string {
	return string(m.alphabet.Symbol(i))
}

// Window returns the rotor positions as seen through the machine's
// windows, left to right.
func (m *Machine) Window() string {
	return string([]rune{
		m.alphabet.Symbol(m.rotors[Left].position),
		m.alphabet.Symbol(m.rotors[Middle].position),
		m.alphabet.Symbol(m.rotors[Right].position),
	})
}

// Positions returns the rotor positions indexed by Slot.
func (m *Machine) Positions() [len(Slots)]int {
	var p [len(Slots)]int
	for _, slot := range Slots {
		p[slot] = m.rotors[slot].position
	}
	return p
}

// Settings returns the settings applied by the last successful Setup in
// canonical form: full plugboard wiring, catalogue type names and explicit
// offset and position symbols. Positions are the start positions, not the
// current ones.
func (m *Machine) Settings() Settings {
	return m.settings
}

// Alphabet returns the machine alphabet.
func (m *Machine) Alphabet() *alphabet.Alphabet {
	return m.alphabet
}

// Plugboard returns the live plugboard. Rewiring it changes the machine.
func (m *Machine) Plugboard() *Plugboard {
	return m.plugboard
}

// Rotor returns the rotor in slot.
func (m *Machine) Rotor(slot Slot) *Rotor {
	return m.rotors[slot]
}

// Reflector returns the reflector.
func (m *Machine) Reflector() *Mapping {
	return m.reflector
}
