package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"gopkg.in/yaml.v3"

	"github.com/roach88/enigma/internal/engine"
)

//go:embed schema.cue
var schemaCUE string

// LoadSettings reads a settings file, choosing the decoder by extension,
// and validates the result.
func LoadSettings(path string) (engine.Settings, error) {
	var (
		s   engine.Settings
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		s, err = loadYAML(path)
	case ".cue":
		s, err = loadCUE(path)
	default:
		return engine.Settings{}, &LoadError{
			Code:    ErrCodeUnsupported,
			Message: fmt.Sprintf("unsupported settings file extension %q (want .yaml, .yml, .json or .cue)", ext),
		}
	}
	if err != nil {
		return engine.Settings{}, err
	}

	v, err := NewValidator()
	if err != nil {
		return engine.Settings{}, err
	}
	if err := Validate(v, s); err != nil {
		return engine.Settings{}, err
	}
	return s, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("settings file not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading settings file: %v", err)}
	}
	return data, nil
}

// loadYAML decodes YAML or JSON; JSON documents are valid YAML.
func loadYAML(path string) (engine.Settings, error) {
	data, err := readFile(path)
	if err != nil {
		return engine.Settings{}, err
	}
	return DecodeYAML(data)
}

// DecodeYAML decodes settings from YAML or JSON, rejecting unknown fields.
func DecodeYAML(data []byte) (engine.Settings, error) {
	var s engine.Settings
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return engine.Settings{}, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("failed to parse settings: %v", err)}
	}
	return s, nil
}

func loadCUE(path string) (engine.Settings, error) {
	if _, err := readFile(path); err != nil {
		return engine.Settings{}, err
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: filepath.Dir(path)}
	instances := load.Instances([]string{filepath.Base(path)}, cfg)
	if len(instances) == 0 {
		return engine.Settings{}, &LoadError{Code: ErrCodeParse, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return engine.Settings{}, fromCUEError(ErrCodeParse, inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return engine.Settings{}, fromCUEError(ErrCodeParse, err)
	}
	return decodeCUE(ctx, value)
}

// DecodeCUE decodes settings from CUE source. filename is used in error
// positions.
func DecodeCUE(filename string, src []byte) (engine.Settings, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return engine.Settings{}, fromCUEError(ErrCodeParse, err)
	}
	return decodeCUE(ctx, value)
}

func decodeCUE(ctx *cue.Context, value cue.Value) (engine.Settings, error) {
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return engine.Settings{}, fmt.Errorf("compiling embedded schema: %w", err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Settings")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return engine.Settings{}, fromCUEError(ErrCodeSchema, err)
	}

	var s engine.Settings
	if err := unified.Decode(&s); err != nil {
		return engine.Settings{}, fromCUEError(ErrCodeSchema, err)
	}
	return s, nil
}
