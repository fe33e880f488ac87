package journal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/enigma/internal/alphabet"
	"github.com/roach88/enigma/internal/engine"
	"github.com/roach88/enigma/internal/testutil"
)

func TestRun(t *testing.T) {
	steps, err := Run(engine.NewStandard(), "hello", false)
	require.NoError(t, err)
	require.Len(t, steps, 5)
	assert.Equal(t, "ilbda", Output(steps))
	assert.Equal(t, Step{Seq: 5, Input: "o", Output: "a", Window: "aaf"}, steps[4])
	assert.Nil(t, steps[0].Trace)
}

func TestRun_PartialOnError(t *testing.T) {
	steps, err := Run(engine.NewStandard(), "ab!", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInvalidSymbol)
	require.Len(t, steps, 2)
	assert.NotNil(t, steps[1].Trace)
}

func TestRecord(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	m := engine.NewStandard()

	// Record starts from the settings even after the machine has moved.
	_, err := m.Transform("zzz")
	require.NoError(t, err)

	sess, steps, err := s.Record(ctx, NewFixedGenerator("s-1"), "encode", m, "helloworld", true)
	require.NoError(t, err)

	assert.Equal(t, "s-1", sess.ID)
	assert.Equal(t, int64(1), sess.Seq)
	assert.Equal(t, "336124f56245e9418131198d3648bb7b0743083ee0dd231ad8fb9e9f565d1308", sess.Fingerprint)
	assert.Equal(t, "ilbdaamtaz", Output(steps))

	stored, err := s.ReadSteps(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, steps, stored)
}

func TestRecord_WritesNothingOnInvalidSymbol(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, _, err := s.Record(ctx, NewFixedGenerator("s-1"), "encode", engine.NewStandard(), "hello world", false)
	require.Error(t, err)

	sessions, err := s.ListSessions(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRecord_SeqIncreases(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	gen := NewFixedGenerator("s-1", "s-2")

	first, _, err := s.Record(ctx, gen, "encode", engine.NewStandard(), "abc", false)
	require.NoError(t, err)
	second, _, err := s.Record(ctx, gen, "decode", engine.NewStandard(), "abc", false)
	require.NoError(t, err)
	assert.Less(t, first.Seq, second.Seq)
}

func TestReplay_Deterministic(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	for _, v := range testutil.Vectors() {
		t.Run(v.Name, func(t *testing.T) {
			m, err := engine.New(alphabet.Latin(), v.Settings)
			require.NoError(t, err)

			sess, _, err := s.Record(ctx, NewFixedGenerator(v.Name), "encode", m, testutil.ReferenceInput, true)
			require.NoError(t, err)

			result, err := Replay(ctx, s, sess.ID)
			require.NoError(t, err)
			assert.True(t, result.Deterministic, "mismatches: %v", result.Mismatches)
			assert.Equal(t, len(testutil.ReferenceInput), result.Steps)
			assert.Equal(t, v.Output, result.Output)
		})
	}
}

func TestReplay_DetectsTamperedStep(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, _, err := s.Record(ctx, NewFixedGenerator("s-1"), "encode", engine.NewStandard(), "aaaaa", false)
	require.NoError(t, err)

	_, err = s.db.Exec(`UPDATE steps SET output = 'x', rotor_window = 'zzz' WHERE session_id = 's-1' AND seq = 3`)
	require.NoError(t, err)

	result, err := Replay(ctx, s, "s-1")
	require.NoError(t, err)
	assert.False(t, result.Deterministic)
	assert.Equal(t, []Mismatch{
		{Step: 3, Field: "output", Expected: "x", Actual: "z"},
		{Step: 3, Field: "window", Expected: "zzz", Actual: "aad"},
	}, result.Mismatches)
	assert.Equal(t, "bdzgo", result.Output)
}

func TestReplay_DetectsTamperedFingerprint(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	_, _, err := s.Record(ctx, NewFixedGenerator("s-1"), "encode", engine.NewStandard(), "abc", false)
	require.NoError(t, err)
	_, err = s.db.Exec(`UPDATE sessions SET fingerprint = 'forged' WHERE id = 's-1'`)
	require.NoError(t, err)

	result, err := Replay(ctx, s, "s-1")
	require.NoError(t, err)
	assert.False(t, result.Deterministic)
	require.Len(t, result.Mismatches, 1)
	assert.Equal(t, "fingerprint", result.Mismatches[0].Field)
}

func TestReplay_UnknownSession(t *testing.T) {
	_, err := Replay(context.Background(), createTestStore(t), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestReplay_CanceledContext(t *testing.T) {
	s := createTestStore(t)
	_, _, err := s.Record(context.Background(), NewFixedGenerator("s-1"), "encode", engine.NewStandard(), "abc", false)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Replay(ctx, s, "s-1")
	assert.ErrorIs(t, err, context.Canceled)
}
