package alphabet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Standard(t *testing.T) {
	a, err := New(Standard)
	require.NoError(t, err)

	assert.Equal(t, Standard, a.String())
	for i, r := range Standard {
		idx, ok := a.Index(r)
		require.True(t, ok, "symbol %q", r)
		assert.Equal(t, i, idx)
		assert.Equal(t, r, a.Symbol(i))
	}
}

func TestNew_WrongLength(t *testing.T) {
	_, err := New("abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must have 26 symbols")
}

func TestNew_RepeatedSymbol(t *testing.T) {
	_, err := New("abcdefghijklmnopqrstuvwxya")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repeated")
}

func TestNew_NonLatinSymbols(t *testing.T) {
	a, err := New("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	require.NoError(t, err)
	assert.True(t, a.Contains('Q'))
	assert.False(t, a.Contains('q'))
}

func TestIndex_NotMember(t *testing.T) {
	a := Latin()
	_, ok := a.Index('!')
	assert.False(t, ok)
	assert.False(t, a.Contains('A'))
}

func TestSymbol_Wraps(t *testing.T) {
	a := Latin()
	assert.Equal(t, 'a', a.Symbol(26))
	assert.Equal(t, 'z', a.Symbol(-1))
	assert.Equal(t, 'b', a.Symbol(53))
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{25, 25},
		{26, 0},
		{-1, 25},
		{-27, 25},
		{52, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Wrap(tt.in), "Wrap(%d)", tt.in)
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew("short") })
}
