// Package message prepares free text for the machine and formats its output.
//
// The machine only accepts alphabet symbols. Normalize reduces arbitrary
// text to those symbols: accents are stripped, case is folded to whichever
// case the alphabet uses, and everything else (spaces, digits, punctuation)
// is dropped and counted.
package message

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/enigma/internal/alphabet"
)

// Normalized is the result of Normalize.
type Normalized struct {
	// Text holds only alphabet symbols.
	Text string
	// Dropped counts input runes with no alphabet equivalent.
	Dropped int
}

var (
	fold  = cases.Fold()
	upper = cases.Upper(language.Und)
)

// Normalize reduces text to symbols of a.
func Normalize(a *alphabet.Alphabet, text string) (Normalized, error) {
	stripped, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		text,
	)
	if err != nil {
		return Normalized{}, fmt.Errorf("strip diacritics: %w", err)
	}

	var b strings.Builder
	b.Grow(len(stripped))
	var dropped int
	for _, r := range stripped {
		if a.Contains(r) {
			b.WriteRune(r)
			continue
		}
		if s, ok := mapCase(a, r); ok {
			b.WriteString(s)
			continue
		}
		dropped++
	}
	return Normalized{Text: b.String(), Dropped: dropped}, nil
}

// mapCase tries the folded and then the upper case form of r. A form may
// expand to several runes (ß folds to ss); all must be alphabet symbols.
func mapCase(a *alphabet.Alphabet, r rune) (string, bool) {
	for _, c := range []cases.Caser{fold, upper} {
		s := c.String(string(r))
		if allIn(a, s) {
			return s, true
		}
	}
	return "", false
}

func allIn(a *alphabet.Alphabet, s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !a.Contains(r) {
			return false
		}
	}
	return true
}

// Group splits text into blocks of n symbols separated by single spaces,
// the traditional layout for ciphertext. n <= 0 returns text unchanged.
func Group(text string, n int) string {
	if n <= 0 {
		return text
	}
	symbols := []rune(text)
	var b strings.Builder
	b.Grow(len(text) + len(text)/n)
	for i, r := range symbols {
		if i > 0 && i%n == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Ungroup removes all whitespace from text.
func Ungroup(text string) string {
	return strings.Join(strings.FieldsFunc(text, unicode.IsSpace), "")
}
