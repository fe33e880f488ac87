package journal

import (
	"context"
	"database/sql"
	"fmt"
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// WriteSession inserts a session record. A zero Seq is replaced by the
// next free seq. Uses ON CONFLICT(id) DO NOTHING for idempotency -
// duplicate IDs are silently ignored.
func (s *Store) WriteSession(ctx context.Context, sess Session) error {
	if err := writeSession(ctx, s.db, sess); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// WriteStep appends a step to an existing session.
// The session must exist (foreign key constraint).
func (s *Store) WriteStep(ctx context.Context, sessionID string, step Step) error {
	if err := writeStep(ctx, s.db, sessionID, step); err != nil {
		return fmt.Errorf("write step: %w", err)
	}
	return nil
}

// WriteRun writes a session and all its steps in one transaction and
// returns the session with its stored seq. If any write fails, none
// persist.
//
// A zero Seq is assigned by the insert itself, so several stores or
// processes may append to one journal without colliding.
func (s *Store) WriteRun(ctx context.Context, sess Session, steps []Step) (Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := writeSession(ctx, tx, sess); err != nil {
		return Session{}, fmt.Errorf("write run: %w", err)
	}
	if err := tx.QueryRowContext(ctx, "SELECT seq FROM sessions WHERE id = ?", sess.ID).Scan(&sess.Seq); err != nil {
		return Session{}, fmt.Errorf("write run: read seq: %w", err)
	}
	for _, step := range steps {
		if err := writeStep(ctx, tx, sess.ID, step); err != nil {
			return Session{}, fmt.Errorf("write run: step %d: %w", step.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("write run: commit: %w", err)
	}
	return sess, nil
}

func writeSession(ctx context.Context, db execer, sess Session) error {
	if sess.ID == "" {
		return fmt.Errorf("session id is required")
	}
	settings, err := marshalSettings(sess.Settings)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO sessions (id, seq, label, alphabet, settings, fingerprint)
		VALUES (?, COALESCE(NULLIF(?, 0), (SELECT COALESCE(MAX(seq), 0) + 1 FROM sessions)), ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		sess.ID,
		sess.Seq,
		sess.Label,
		sess.Alphabet,
		settings,
		sess.Fingerprint,
	)
	return err
}

func writeStep(ctx context.Context, db execer, sessionID string, step Step) error {
	trace, err := marshalTrace(step.Trace)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO steps (session_id, seq, input, output, rotor_window, trace)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		sessionID,
		step.Seq,
		step.Input,
		step.Output,
		step.Window,
		trace,
	)
	return err
}
