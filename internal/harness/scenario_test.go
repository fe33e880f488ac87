package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalSettings = `
settings:
  rotor_right: {type: III}
  rotor_middle: {type: II}
  rotor_left: {type: I}
  reflector: {type: B}
`

// writeScenario writes content to dir/name and returns the path.
func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "test.yaml", `
name: test_scenario
description: "Test scenario for validation"
`+minimalSettings+`
input: helloworld
expect:
  output: ilbdaamtaz
  window: aak
round_trip: true
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	require.NotNil(t, scenario.Settings)
	assert.Equal(t, "III", scenario.Settings.RotorRight.Type)
	assert.Equal(t, "B", scenario.Settings.Reflector.Type)
	assert.Equal(t, "helloworld", scenario.Input)
	require.NotNil(t, scenario.Expect)
	assert.Equal(t, "ilbdaamtaz", scenario.Expect.Output)
	assert.Equal(t, "aak", scenario.Expect.Window)
	assert.True(t, scenario.RoundTrip)
	assert.False(t, scenario.Trace)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{
			name:    "missing name",
			content: "description: x\n" + minimalSettings + "input: a\nround_trip: true\n",
			message: "name is required",
		},
		{
			name:    "missing description",
			content: "name: x\n" + minimalSettings + "input: a\nround_trip: true\n",
			message: "description is required",
		},
		{
			name:    "missing settings",
			content: "name: x\ndescription: x\ninput: a\nround_trip: true\n",
			message: "one of settings or settings_file is required",
		},
		{
			name:    "both settings forms",
			content: "name: x\ndescription: x\nsettings_file: s.yaml\n" + minimalSettings + "input: a\nround_trip: true\n",
			message: "mutually exclusive",
		},
		{
			name:    "missing settings file",
			content: "name: x\ndescription: x\nsettings_file: nope.yaml\ninput: a\nround_trip: true\n",
			message: "settings file not found",
		},
		{
			name:    "missing input",
			content: "name: x\ndescription: x\n" + minimalSettings + "round_trip: true\n",
			message: "input is required",
		},
		{
			name:    "nothing to check",
			content: "name: x\ndescription: x\n" + minimalSettings + "input: a\n",
			message: "nothing to check",
		},
		{
			name:    "bad alphabet",
			content: "name: x\ndescription: x\nalphabet: abc\n" + minimalSettings + "input: a\nround_trip: true\n",
			message: "alphabet",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), "test.yaml", tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid scenario")
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadScenario_MalformedYAML(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "test.yaml", "name: [unclosed\n")
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadScenario_UnknownFieldsRejected(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"top level typo", "name: x\ndescription: x\n" + minimalSettings + "input: a\nroundtrip: true\n"},
		{"settings typo", "name: x\ndescription: x\nsettings:\n  rotor_rigth: {type: III}\ninput: a\nround_trip: true\n"},
		{"expect typo", "name: x\ndescription: x\n" + minimalSettings + "input: a\nexpect:\n  outptu: b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), "test.yaml", tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to parse YAML")
		})
	}
}

func TestLoadScenario_SettingsFileRelativeToScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "settings"), 0755))
	writeScenario(t, filepath.Join(dir, "settings"), "std.yaml", `
rotor_right: {type: III}
rotor_middle: {type: II}
rotor_left: {type: I}
reflector: {type: B}
`)
	path := writeScenario(t, dir, "test.yaml", `
name: from_file
description: "Settings from a file"
settings_file: settings/std.yaml
input: a
round_trip: true
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "settings", "std.yaml"), scenario.SettingsFile)
	assert.Nil(t, scenario.Settings)
}

func TestLoadScenario_AssertionTypes(t *testing.T) {
	tests := []struct {
		name      string
		assertion string
		wantErr   string
	}{
		{"output_at valid", "{type: output_at, step: 1, symbol: b}", ""},
		{"output_at missing step", "{type: output_at, symbol: b}", "step must be at least 1"},
		{"output_at long symbol", "{type: output_at, step: 1, symbol: bc}", "single symbol"},
		{"window_at valid", "{type: window_at, step: 1, window: aab}", ""},
		{"window_at short window", "{type: window_at, step: 1, window: ab}", "3 symbols"},
		{"window_at missing step", "{type: window_at, window: aab}", "step must be at least 1"},
		{"no_self_encipher valid", "{type: no_self_encipher}", ""},
		{"journal_steps zero allowed", "{type: journal_steps, count: 0}", ""},
		{"journal_steps negative", "{type: journal_steps, count: -1}", "count must be non-negative"},
		{"missing type", "{step: 1}", "type is required"},
		{"unknown type", "{type: bogus}", `unknown assertion type "bogus"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), "test.yaml",
				"name: x\ndescription: x\n"+minimalSettings+"input: a\nassertions:\n  - "+tt.assertion+"\n")
			_, err := LoadScenario(path)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenarios_SortedAndUnique(t *testing.T) {
	dir := t.TempDir()
	body := "description: x\n" + minimalSettings + "input: a\nround_trip: true\n"
	writeScenario(t, dir, "b.yaml", "name: second\n"+body)
	writeScenario(t, dir, "a.yml", "name: first\n"+body)
	writeScenario(t, dir, "notes.txt", "not a scenario")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0755))

	scenarios, err := LoadScenarios(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "first", scenarios[0].Name)
	assert.Equal(t, "second", scenarios[1].Name)

	writeScenario(t, dir, "c.yaml", "name: first\n"+body)
	_, err = LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `scenario name "first" already used by a.yml`)
}

func TestLoadScenarios_ReportsFile(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "broken.yaml", "name: x\n")

	_, err := LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestLoadScenarios_MissingDir(t *testing.T) {
	_, err := LoadScenarios("/nonexistent/scenarios")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario directory")
}

func TestAssertionConstants(t *testing.T) {
	assert.Equal(t, "output_at", AssertOutputAt)
	assert.Equal(t, "window_at", AssertWindowAt)
	assert.Equal(t, "no_self_encipher", AssertNoSelfEncipher)
	assert.Equal(t, "journal_steps", AssertJournalSteps)
}

func TestLoadExampleScenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	assert.Len(t, scenarios, 9)
	for _, s := range scenarios {
		assert.NotEmpty(t, s.Description, s.Name)
	}
}
