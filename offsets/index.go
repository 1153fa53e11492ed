// Package offsets maps character ranges in a page's full text to the
// spatial fragments that produced them.
//
// Construction walks an ordered list of pure strategy functions, each
// re-verified against the full text by sampling, and falls back to the
// least-bad strategy when none verifies rather than failing the page.
// Lookups use binary search over fragment end offsets.
package offsets

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/tsawler/redacta/model"
)

// Entry maps one fragment to its half-open character range in the
// page full text.
type Entry struct {
	Start    int
	End      int
	Fragment model.TextFragment
}

// Index is the derived character-offset to fragment mapping for one
// page, built once and queried many times.
type Index struct {
	entries  []Entry
	ends     []int // entry end offsets, ascending, for binary search
	strategy string
	verified bool
}

// verifySampleCount limits how many entries the verification pass
// re-derives; page prefixes catch construction drift early.
const verifySampleCount = 20

type strategy struct {
	name string
	fn   func([]model.TextFragment) []Entry
}

// Build constructs the offset index for a page. It never fails: when
// no strategy verifies against fullText, the legacy construction is
// used best-effort and the condition is logged.
func Build(fragments []model.TextFragment, fullText string) *Index {
	if len(fragments) == 0 || fullText == "" {
		return &Index{strategy: "empty", verified: true}
	}

	strategies := []strategy{
		{"clustered", clusteredStrategy},
		{"legacy", legacyStrategy},
	}

	var lastEntries []Entry
	for _, s := range strategies {
		entries := s.fn(fragments)
		if verify(entries, fullText, verifySampleCount) {
			return newIndex(entries, s.name, true)
		}
		lastEntries = entries
	}

	// Global shift correction: if the first fragment is findable at a
	// constant displacement, shift every entry and re-verify.
	if shifted, ok := shiftCorrect(lastEntries, fullText); ok {
		if verify(shifted, fullText, verifySampleCount) {
			return newIndex(shifted, "shift", true)
		}
	}

	slog.Debug("offset index: no strategy verified, using legacy best-effort",
		"fragments", len(fragments))
	return newIndex(legacyStrategy(fragments), "legacy-unverified", false)
}

func newIndex(entries []Entry, name string, verified bool) *Index {
	ends := make([]int, len(entries))
	for i, e := range entries {
		ends[i] = e.End
	}
	return &Index{entries: entries, ends: ends, strategy: name, verified: verified}
}

// Entries returns the offset entries in text order.
func (ix *Index) Entries() []Entry {
	return ix.entries
}

// Strategy reports which construction strategy produced the index.
func (ix *Index) Strategy() string {
	return ix.strategy
}

// Verified reports whether the chosen strategy passed verification.
func (ix *Index) Verified() bool {
	return ix.verified
}

// clusteredStrategy assigns offsets walking fragments in visual
// reading order (line clustering, then left to right), advancing one
// position per fragment boundary. The full-text builder inserts
// exactly one separator character (space or newline) between
// fragments, so only the position matters here, not which separator
// was chosen. Verifies whenever the page text was built by
// model.BuildFullText.
func clusteredStrategy(fragments []model.TextFragment) []Entry {
	lines := model.ClusterLines(fragments)

	var entries []Entry
	pos := 0
	havePrev := false

	for _, line := range lines {
		for i, frag := range line {
			if havePrev || i > 0 {
				pos++ // separator
			}
			entries = append(entries, Entry{Start: pos, End: pos + len(frag.Text), Fragment: frag})
			pos += len(frag.Text)
			havePrev = true
		}
	}
	return entries
}

// legacyStrategy is the original sort-based construction: fragments
// ordered by (y0, x0) with one separator character between each pair.
// Kept as the fallback for pages whose full text predates the
// clustered builder.
func legacyStrategy(fragments []model.TextFragment) []Entry {
	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].BBox.Y0 != sorted[j].BBox.Y0 {
			return sorted[i].BBox.Y0 < sorted[j].BBox.Y0
		}
		return sorted[i].BBox.X0 < sorted[j].BBox.X0
	})

	entries := make([]Entry, 0, len(sorted))
	pos := 0
	for i, frag := range sorted {
		if i > 0 {
			pos++ // separator, space or newline
		}
		entries = append(entries, Entry{Start: pos, End: pos + len(frag.Text), Fragment: frag})
		pos += len(frag.Text)
	}
	return entries
}

// shiftCorrect attempts a constant-displacement fix: when the first
// fragment's text occurs in fullText at a different position, every
// entry is shifted by the difference.
func shiftCorrect(entries []Entry, fullText string) ([]Entry, bool) {
	if len(entries) == 0 {
		return nil, false
	}
	first := entries[0]
	idx := strings.Index(fullText, first.Fragment.Text)
	if idx < 0 || idx == first.Start {
		return nil, false
	}
	shift := first.Start - idx
	shifted := make([]Entry, len(entries))
	for i, e := range entries {
		shifted[i] = Entry{Start: e.Start - shift, End: e.End - shift, Fragment: e.Fragment}
	}
	return shifted, true
}

// verify re-derives fragment text from fullText at the computed
// offsets for the first sampleCount entries.
func verify(entries []Entry, fullText string, sampleCount int) bool {
	if len(entries) == 0 {
		return false
	}
	n := len(entries)
	if n > sampleCount {
		n = sampleCount
	}
	for _, e := range entries[:n] {
		if e.Start < 0 || e.End > len(fullText) || e.Start >= e.End {
			return false
		}
		if fullText[e.Start:e.End] != e.Fragment.Text {
			return false
		}
	}
	return true
}
