// Package ir provides the canonical serialization used for content identity.
//
// Settings and traces are converted to plain maps by their owners and
// serialized here with MarshalCanonical. The fingerprints computed from that
// form are stable across runs and machines, so they can key journal
// sessions and golden snapshots.
//
// Key design constraints:
//   - NO float types anywhere; numbers are int or int64
//   - NO null; absent fields are omitted by the caller
//   - Strings are NFC normalized at the serialization boundary
//
// ir imports nothing internal.
package ir
