package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/enigma/internal/config"
)

const standardFingerprint = "336124f56245e9418131198d3648bb7b0743083ee0dd231ad8fb9e9f565d1308"

func configTestdata(name string) string {
	return filepath.Join("..", "config", "testdata", name)
}

func TestValidateMissingArgs(t *testing.T) {
	_, err := execute(t, NewValidateCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestValidateValidFileText(t *testing.T) {
	path := configTestdata("valid.yaml")
	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "text"}), path)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ "+path+" is valid")
	assert.Contains(t, out, "Rotors:      III VII VIII")
	assert.Contains(t, out, "Rings:       cgn")
	assert.Contains(t, out, "Positions:   oid")
	assert.Contains(t, out, "Reflector:   C")
	assert.Contains(t, out, "Fingerprint: ")
}

func TestValidateStandardFingerprint(t *testing.T) {
	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "json"}), configTestdata("valid.json"))
	require.NoError(t, err)

	var result ValidationResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, result.Valid)
	assert.Equal(t, standardFingerprint, result.Fingerprint)
	assert.Equal(t, standardFingerprint, resp.Fingerprint)
	require.NotNil(t, result.Settings)
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", result.Settings.Plugboard.Wiring)
}

func TestValidateCUE(t *testing.T) {
	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "json"}), configTestdata("valid.cue"))
	require.NoError(t, err)

	var result ValidationResult
	decodeResponse(t, out, &result)
	require.NotNil(t, result.Settings)
	assert.Equal(t, "c", result.Settings.RotorLeft.Position)
	assert.Equal(t, "a", result.Settings.RotorLeft.Offset, "offset defaults to the first symbol")
	assert.Equal(t, "hboedfzajimqkycslrpwuvtxng", result.Settings.Plugboard.Wiring)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		code  string
		field string
		exit  int
	}{
		{"unknown rotor yaml", "bad_rotor.yaml", config.ErrCodeInvalid, "rotor_left.type", ExitFailure},
		{"unknown field", "typo.yaml", config.ErrCodeParse, "", ExitFailure},
		{"unsupported extension", "settings.toml", config.ErrCodeUnsupported, "", ExitCommandError},
		{"missing file", "missing.yaml", config.ErrCodeNotFound, "", ExitCommandError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewValidateCommand(&RootOptions{Format: "json"}), configTestdata(tt.file))
			require.Error(t, err)
			assert.Equal(t, tt.exit, GetExitCode(err))

			resp := decodeResponse(t, out, nil)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
			assert.Equal(t, tt.field, resp.Error.Field)
		})
	}
}

func TestValidateUnknownRotorCUE(t *testing.T) {
	_, err := execute(t, NewValidateCommand(&RootOptions{Format: "text"}), configTestdata("bad_rotor.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestValidateErrorText(t *testing.T) {
	out, err := execute(t, NewValidateCommand(&RootOptions{Format: "text"}), configTestdata("bad_rotor.yaml"))
	require.Error(t, err)
	assert.Contains(t, out, "Error [E201]")
	assert.Contains(t, out, "rotor_left.type")
}
