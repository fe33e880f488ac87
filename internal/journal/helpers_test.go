package journal

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/enigma/internal/engine"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func standardSession(id string, seq int64) Session {
	return Session{
		ID:          id,
		Seq:         seq,
		Label:       "encode",
		Alphabet:    "abcdefghijklmnopqrstuvwxyz",
		Settings:    engine.StandardSettings(),
		Fingerprint: "336124f56245e9418131198d3648bb7b0743083ee0dd231ad8fb9e9f565d1308",
	}
}
