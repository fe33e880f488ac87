package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/enigma/internal/config"
	"github.com/roach88/enigma/internal/engine"
	"github.com/roach88/enigma/internal/journal"
)

func TestEncodeStandardSettings(t *testing.T) {
	out, err := execute(t, NewEncodeCommand(&RootOptions{Format: "text"}), "helloworld")
	require.NoError(t, err)
	assert.Equal(t, "ilbdaamtaz\n", out)
}

func TestEncodeJoinsArguments(t *testing.T) {
	out, err := execute(t, NewEncodeCommand(&RootOptions{Format: "text"}), "hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "ilbdaamtaz\n", out)
}

func TestEncodeFromStdin(t *testing.T) {
	cmd := NewEncodeCommand(&RootOptions{Format: "text"})
	cmd.SetIn(strings.NewReader("aaaaa\n"))
	out, err := execute(t, cmd)
	require.NoError(t, err)
	assert.Equal(t, "bdzgo\n", out)
}

func TestEncodeNormalizesInput(t *testing.T) {
	out, err := execute(t, NewEncodeCommand(&RootOptions{Format: "json"}), "Hello, World!")
	require.NoError(t, err)

	var result EncodeResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "helloworld", result.Input)
	assert.Equal(t, "ilbdaamtaz", result.Output)
	assert.Equal(t, "aak", result.Window)
	assert.Equal(t, 3, result.Dropped)
	assert.Len(t, resp.Fingerprint, 64)
}

func TestEncodeUppercaseAlphabet(t *testing.T) {
	out, err := execute(t, NewEncodeCommand(&RootOptions{Format: "json"}),
		"--alphabet", "ABCDEFGHIJKLMNOPQRSTUVWXYZ", "HELLOWORLD")
	require.NoError(t, err)

	var result EncodeResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ILBDAAMTAZ", result.Output)
	assert.Equal(t, "AAK", result.Window)

	// Lowercase input is folded into the alphabet.
	out, err = execute(t, NewEncodeCommand(&RootOptions{Format: "text"}),
		"--alphabet", "ABCDEFGHIJKLMNOPQRSTUVWXYZ", "--positions", "ADU", "aaa")
	require.NoError(t, err)
	assert.Equal(t, "EQI\n", out)
}

func TestEncodePermutedAlphabetRoundTrip(t *testing.T) {
	flags := []string{"--alphabet", "zyxwvutsrqponmlkjihgfedcba"}

	out, err := execute(t, NewEncodeCommand(&RootOptions{Format: "json"}), append(flags, "attackatdawn")...)
	require.NoError(t, err)
	var result EncodeResult
	decodeResponse(t, out, &result)
	require.Len(t, result.Output, 12)
	assert.NotEqual(t, "attackatdawn", result.Output)

	out, err = execute(t, NewEncodeCommand(&RootOptions{Format: "text"}), append(flags, result.Output)...)
	require.NoError(t, err)
	assert.Equal(t, "attackatdawn\n", out)
}

func TestEncodeRawRejectsSymbol(t *testing.T) {
	out, err := execute(t, NewEncodeCommand(&RootOptions{Format: "json"}), "--raw", "Hello")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, engine.ErrInvalidSymbol)

	resp := decodeResponse(t, out, nil)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeSymbol, resp.Error.Code)
}

func TestEncodeRawUngroups(t *testing.T) {
	out, err := execute(t, NewEncodeCommand(&RootOptions{Format: "text"}), "--raw", "ilbda amtaz")
	require.NoError(t, err)
	assert.Equal(t, "helloworld\n", out)
}

func TestEncodeGroups(t *testing.T) {
	out, err := execute(t, NewEncodeCommand(&RootOptions{Format: "text"}), "--group", "5", "helloworld")
	require.NoError(t, err)
	assert.Equal(t, "ilbda amtaz\n", out)
}

func TestEncodeDoubleStepTrace(t *testing.T) {
	out, err := execute(t, NewEncodeCommand(&RootOptions{Format: "text"}),
		"--positions", "adu", "--trace", "aaa")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(lines[0], "| adv"), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "| aew"), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], "| bfx"), lines[2])
	assert.Equal(t, "eqi", lines[3])
}

func TestEncodeTraceJSON(t *testing.T) {
	out, err := execute(t, NewEncodeCommand(&RootOptions{Format: "json"}),
		"--positions", "a,d,u", "--trace", "aaa")
	require.NoError(t, err)

	var result EncodeResult
	decodeResponse(t, out, &result)
	require.Len(t, result.Trace, 3)
	assert.Equal(t, "eqi", engine.Outputs(result.Trace))
	assert.Equal(t, "bfx", result.Window)
}

func TestEncodeFlagOverrides(t *testing.T) {
	// Decoding with the same flags gives the plaintext back.
	flags := []string{"--rotors", "IV,V,VI", "--rings", "bcd", "--positions", "xyz", "--reflector", "C", "--plugboard", "ah co de"}

	out, err := execute(t, NewEncodeCommand(&RootOptions{Format: "text"}), append(flags, "attackatdawn")...)
	require.NoError(t, err)
	cipher := strings.TrimSpace(out)
	assert.NotEqual(t, "attackatdawn", cipher)

	out, err = execute(t, NewEncodeCommand(&RootOptions{Format: "text"}), append(flags, cipher)...)
	require.NoError(t, err)
	assert.Equal(t, "attackatdawn\n", out)
}

func TestEncodeSettingsFile(t *testing.T) {
	path := filepath.Join("..", "config", "testdata", "valid.yaml")
	out, err := execute(t, NewEncodeCommand(&RootOptions{Format: "text"}), "--settings", path, "helloworld")
	require.NoError(t, err)
	cipher := strings.TrimSpace(out)

	out, err = execute(t, NewEncodeCommand(&RootOptions{Format: "text"}), "-s", path, cipher)
	require.NoError(t, err)
	assert.Equal(t, "helloworld\n", out)
}

func TestEncodeInvalidSettings(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		code  string
		field string
	}{
		{"unknown rotor", []string{"--rotors", "I,II,IX"}, config.ErrCodeInvalid, "rotor_left.type"},
		{"short rotor list", []string{"--rotors", "I,II"}, config.ErrCodeFlag, "rotors"},
		{"bad alphabet", []string{"--alphabet", "abc"}, config.ErrCodeFlag, "alphabet"},
		{"missing file", []string{"--settings", "nope.yaml"}, config.ErrCodeNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewEncodeCommand(&RootOptions{Format: "json"}), append(tt.args, "abc")...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			resp := decodeResponse(t, out, nil)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.field, resp.Error.Field)
		})
	}
}

func TestEncodeJournal(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "enigma.db")
	opts := &EncodeOptions{
		RootOptions: &RootOptions{Format: "json"},
		IDGenerator: journal.NewFixedGenerator("session-1"),
	}

	out, err := execute(t, newEncodeCommand(opts), "--journal", dbPath, "--trace", "aaaaa")
	require.NoError(t, err)

	var result EncodeResult
	decodeResponse(t, out, &result)
	assert.Equal(t, "session-1", result.SessionID)
	assert.Equal(t, "bdzgo", result.Output)

	st, err := journal.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	sess, err := st.ReadSession(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, "encode", sess.Label)

	steps, err := st.ReadSteps(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, steps, 5)
	assert.Equal(t, "bdzgo", journal.Output(steps))
	assert.Equal(t, "aaf", steps[4].Window)
	assert.NotNil(t, steps[0].Trace)
}

func TestEncodeJournalRejectedSymbolWritesNothing(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "enigma.db")
	opts := &EncodeOptions{
		RootOptions: &RootOptions{Format: "text"},
		IDGenerator: journal.NewFixedGenerator("session-1"),
	}

	_, err := execute(t, newEncodeCommand(opts), "--journal", dbPath, "--raw", "ab1")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	st, err := journal.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	sessions, err := st.ListSessions(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestEncodeVerboseDiagnosticsOnStderr(t *testing.T) {
	cmd := NewEncodeCommand(&RootOptions{Format: "text", Verbose: true})
	out := &strings.Builder{}
	errOut := &strings.Builder{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"helloworld"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "ilbdaamtaz\n", out.String())
	assert.Contains(t, errOut.String(), "Window: aak")
	assert.Contains(t, errOut.String(), "machine ready")
}
