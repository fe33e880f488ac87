// Package journal provides SQLite-backed storage for cipher sessions.
//
// A session is one run of the machine: the settings it started from, and
// one step per keypress with the input, output and rotor window. Steps may
// carry the full signal trace. The engine itself keeps no history; the
// journal is written by callers that want a durable record.
//
// # Ordering
//
// Sessions are ordered by a logical seq, never by wall time. The seq is
// allocated by the insert that stores the session, so writers sharing a
// journal file never hand out the same seq twice.
// Steps are ordered by their keypress index. All queries use
// ORDER BY seq ASC so reads are identical across runs.
//
// # Replay
//
// Replay rebuilds a machine from a stored session and re-enciphers the
// stored inputs. Because the machine is deterministic, every output and
// window must match; any difference is reported as a Mismatch.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait on lock contention
//   - foreign_keys=ON: Steps reference their session
package journal
