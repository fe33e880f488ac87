package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content identity.
// Version suffix enables future algorithm migration.
const (
	DomainSettings = "enigma/settings/v1"
	DomainTrace    = "enigma/trace/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data) as hex.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SettingsFingerprint identifies a machine configuration. Two settings with
// the same canonical form share a fingerprint, so a journal session and a
// golden snapshot can be matched to the key that produced them.
func SettingsFingerprint(settings map[string]any) (string, error) {
	canonical, err := MarshalCanonical(settings)
	if err != nil {
		return "", fmt.Errorf("SettingsFingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSettings, canonical), nil
}

// TraceDigest summarizes an ordered list of keypress traces.
func TraceDigest(traces []map[string]any) (string, error) {
	items := make([]any, len(traces))
	for i, t := range traces {
		items[i] = t
	}
	canonical, err := MarshalCanonical(items)
	if err != nil {
		return "", fmt.Errorf("TraceDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTrace, canonical), nil
}

// MustSettingsFingerprint is like SettingsFingerprint but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustSettingsFingerprint(settings map[string]any) string {
	id, err := SettingsFingerprint(settings)
	if err != nil {
		panic(err)
	}
	return id
}

// Short returns the first 12 hex digits of a fingerprint for display.
func Short(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12]
}
