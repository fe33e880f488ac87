package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ReadSession retrieves a session by ID.
// Returns an error wrapping ErrSessionNotFound if it does not exist.
func (s *Store) ReadSession(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, label, alphabet, settings, fingerprint
		FROM sessions
		WHERE id = ?
	`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("read session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session %s: %w", id, err)
	}
	return sess, nil
}

// ReadSteps returns the steps of a session in keypress order.
//
// Returns an empty slice (not nil) if the session has no steps.
func (s *Store) ReadSteps(ctx context.Context, sessionID string) ([]Step, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, input, output, rotor_window, trace
		FROM steps
		WHERE session_id = ?
		ORDER BY seq ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	steps := []Step{}
	for rows.Next() {
		var (
			step  Step
			trace sql.NullString
		)
		if err := rows.Scan(&step.Seq, &step.Input, &step.Output, &step.Window, &trace); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		if step.Trace, err = unmarshalTrace(trace); err != nil {
			return nil, fmt.Errorf("step %d: %w", step.Seq, err)
		}
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}

// ListSessions returns sessions in seq order. A non-empty fingerprint
// restricts the list to sessions started from those settings.
//
// Returns an empty slice (not nil) if there are none.
func (s *Store) ListSessions(ctx context.Context, fingerprint string) ([]Session, error) {
	query := `
		SELECT id, seq, label, alphabet, settings, fingerprint
		FROM sessions
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`
	var args []any
	if fingerprint != "" {
		query = `
		SELECT id, seq, label, alphabet, settings, fingerprint
		FROM sessions
		WHERE fingerprint = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`
		args = append(args, fingerprint)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var (
		sess     Session
		settings string
	)
	if err := row.Scan(&sess.ID, &sess.Seq, &sess.Label, &sess.Alphabet, &settings, &sess.Fingerprint); err != nil {
		return Session{}, err
	}
	s, err := unmarshalSettings(settings)
	if err != nil {
		return Session{}, fmt.Errorf("session %s: %w", sess.ID, err)
	}
	sess.Settings = s
	return sess, nil
}
