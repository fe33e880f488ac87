package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/enigma/internal/engine"
	"github.com/roach88/enigma/internal/journal"
)

func TestSessionsJournalNotFound(t *testing.T) {
	_, err := execute(t, NewSessionsCommand(&RootOptions{Format: "text"}), "--db", filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "journal not found")
}

func TestSessionsEmpty(t *testing.T) {
	dbPath := newJournal(t)

	out, err := execute(t, NewSessionsCommand(&RootOptions{Format: "text"}), "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions found in journal.")

	out, err = execute(t, NewSessionsCommand(&RootOptions{Format: "json"}), "--db", dbPath)
	require.NoError(t, err)
	var sessions []journal.Session
	decodeResponse(t, out, &sessions)
	assert.Empty(t, sessions)
}

func TestSessionsListsInOrder(t *testing.T) {
	dbPath := newJournal(t)
	recordSession(t, dbPath, "first", engine.StandardSettings(), "abc", false)
	recordSession(t, dbPath, "second", engine.StandardSettings(), "abc", false)

	out, err := execute(t, NewSessionsCommand(&RootOptions{Format: "text"}), "--db", dbPath)
	require.NoError(t, err)
	assert.Regexp(t, `(?s)first.*second`, out)
	assert.Contains(t, out, "   1  first  encode")
}

func TestSessionsFingerprintFilter(t *testing.T) {
	dbPath := newJournal(t)
	recordSession(t, dbPath, "standard", engine.StandardSettings(), "abc", false)
	other := engine.StandardSettings()
	other.Reflector.Type = "C"
	recordSession(t, dbPath, "other", other, "abc", false)

	out, err := execute(t, NewSessionsCommand(&RootOptions{Format: "json"}), "--db", dbPath, "--fingerprint", standardFingerprint)
	require.NoError(t, err)

	var sessions []journal.Session
	decodeResponse(t, out, &sessions)
	require.Len(t, sessions, 1)
	assert.Equal(t, "standard", sessions[0].ID)
	assert.Equal(t, "I", sessions[0].Settings.RotorLeft.Type)
}
