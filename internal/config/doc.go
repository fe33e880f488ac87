// Package config loads machine settings from files and command-line flags.
//
// Settings files may be YAML (.yaml, .yml), JSON (.json) or CUE (.cue).
// YAML and JSON are decoded strictly: unknown fields are errors. CUE files
// are unified with the embedded #Settings schema before decoding, so type
// and shape errors carry file positions.
//
// Every loaded value passes through Validate, which checks rotor and
// reflector names against the catalogue and the length of every symbol
// field. Membership of symbols in the machine alphabet is left to the
// engine, which knows the alphabet.
package config
