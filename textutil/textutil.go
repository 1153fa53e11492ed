// Package textutil provides the text normalization primitives shared
// by fusion and propagation: accent stripping, whitespace collapse,
// quote neutralization, and digit counting.
//
// Normalization is comparison-only. Stored region text is always the
// verbatim page substring; these helpers exist so that "Société
// Générale" and "Societe Generale" compare equal during template
// keying and page search.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// accentStripper decomposes to NFD, removes combining marks, and
// recomposes. "é" → "e", "ü" → "u".
var accentStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// StripAccents removes diacritic marks from text, preserving length
// for any input whose accented characters decompose to a single base
// character.
func StripAccents(s string) string {
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}

// quoteRunes are quotation characters treated as transparent during
// entity matching: they wrap entity names in running text without
// being part of the entity.
var quoteRunes = map[rune]bool{
	'"': true, '\'': true,
	'‘': true, '’': true, '‚': true, '‛': true,
	'“': true, '”': true, '„': true, '‟': true,
	'«': true, '»': true, // «»
	'‹': true, '›': true, // ‹›
	'「': true, '」': true, '『': true, '』': true, // CJK brackets
}

// NeutralizeQuotes replaces quotation marks with spaces, preserving
// string length so character offsets survive the substitution.
func NeutralizeQuotes(s string) string {
	return strings.Map(func(r rune) rune {
		if quoteRunes[r] {
			return ' '
		}
		return r
	}, s)
}

// StripQuotes removes quotation marks entirely.
func StripQuotes(s string) string {
	return strings.Map(func(r rune) rune {
		if quoteRunes[r] {
			return -1
		}
		return r
	}, s)
}

// CollapseWhitespace replaces runs of whitespace with a single space
// and trims the ends.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeKey produces the canonical comparison form used for
// template keying: quote-neutralized, accent-stripped,
// whitespace-collapsed, lowercased.
func NormalizeKey(s string) string {
	return strings.ToLower(CollapseWhitespace(StripAccents(NeutralizeQuotes(s))))
}

// CountDigits returns the number of decimal digit runes in s.
func CountDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

// HasLetter reports whether s contains at least one letter.
func HasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// IsDigitsOnly reports whether the trimmed text consists entirely of
// digits (with at least one digit).
func IsDigitsOnly(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
