package journal

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/enigma/internal/engine"
	"github.com/roach88/enigma/internal/ir"
)

// marshalSettings converts settings to canonical JSON TEXT for storage.
func marshalSettings(s engine.Settings) (string, error) {
	data, err := ir.MarshalCanonical(s.Map())
	if err != nil {
		return "", fmt.Errorf("marshal settings: %w", err)
	}
	return string(data), nil
}

func unmarshalSettings(text string) (engine.Settings, error) {
	var s engine.Settings
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return engine.Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return s, nil
}

// marshalTrace converts a trace to canonical JSON, or NULL when absent.
func marshalTrace(t *engine.Trace) (sql.NullString, error) {
	if t == nil {
		return sql.NullString{}, nil
	}
	data, err := ir.MarshalCanonical(t.Map())
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshal trace: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func unmarshalTrace(ns sql.NullString) (*engine.Trace, error) {
	if !ns.Valid {
		return nil, nil
	}
	var t engine.Trace
	if err := json.Unmarshal([]byte(ns.String), &t); err != nil {
		return nil, fmt.Errorf("unmarshal trace: %w", err)
	}
	return &t, nil
}
