package propagate

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/redacta/textutil"
)

// normPage pairs an accent-stripped, quote-neutralized rendering of a
// page's text with a byte-offset map back to the original. Stripping
// changes byte widths ("é" is two bytes, "e" is one), so matches found
// in the normalized text need translation before slicing the original.
type normPage struct {
	text   string
	toOrig []int // normalized byte offset to original byte offset
}

func normalizePage(fullText string) *normPage {
	var b strings.Builder
	b.Grow(len(fullText))
	toOrig := make([]int, 0, len(fullText)+1)
	cache := make(map[rune]rune)

	for off, r := range fullText {
		nr, ok := cache[r]
		if !ok {
			nr = normalizeRune(r)
			cache[r] = nr
		}
		for i := 0; i < utf8.RuneLen(nr); i++ {
			toOrig = append(toOrig, off)
		}
		b.WriteRune(nr)
	}
	toOrig = append(toOrig, len(fullText))
	return &normPage{text: b.String(), toOrig: toOrig}
}

// normalizeRune strips one rune's diacritics and turns quotation marks
// into spaces. Runes that do not reduce to a single rune are kept
// verbatim so the offset map stays rune-aligned.
func normalizeRune(r rune) rune {
	s := textutil.StripAccents(textutil.NeutralizeQuotes(string(r)))
	nr, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || nr == utf8.RuneError {
		return r
	}
	return nr
}

// buildFlexPattern compiles a case-insensitive pattern for a
// normalized key in which any space matches a whitespace run, so the
// key finds occurrences broken across lines.
func buildFlexPattern(normKey string) (*regexp.Regexp, error) {
	pat := strings.ReplaceAll(regexp.QuoteMeta(normKey), " ", `\s+`)
	return regexp.Compile(`(?i)` + pat)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// boundedMatch reports whether the match at [start, end) in s sits on
// word boundaries. Keys ending in punctuation ("inc.", "S.A.") still
// bound correctly because only the adjacent characters are examined.
func boundedMatch(s string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(s[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(s) {
		if r, _ := utf8.DecodeRuneInString(s[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

// pageIntervals tracks claimed character spans on one page, sorted by
// start for binary-search overlap checks.
type pageIntervals struct {
	starts []int
	ends   []int
}

// hasOverlap reports whether an existing interval overlaps [cs, ce) by
// at least minRatio of the query's length. Starts are sorted but ends
// are not monotone, so the backward walk cannot stop at the first
// non-overlapping interval.
func (p *pageIntervals) hasOverlap(cs, ce int, minRatio float64) bool {
	threshold := minRatio * float64(ce-cs)
	idx := sort.SearchInts(p.starts, ce)
	for i := idx - 1; i >= 0; i-- {
		if p.ends[i] <= cs {
			continue
		}
		os := cs
		if p.starts[i] > os {
			os = p.starts[i]
		}
		oe := ce
		if p.ends[i] < oe {
			oe = p.ends[i]
		}
		if float64(oe-os) >= threshold {
			return true
		}
	}
	return false
}

func (p *pageIntervals) add(cs, ce int) {
	i := sort.SearchInts(p.starts, cs)
	p.starts = append(p.starts, 0)
	copy(p.starts[i+1:], p.starts[i:])
	p.starts[i] = cs
	p.ends = append(p.ends, 0)
	copy(p.ends[i+1:], p.ends[i:])
	p.ends[i] = ce
}
