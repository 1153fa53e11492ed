// Package detect holds the detection layers of the pipeline: the
// regex pattern bank with validation and context boosting, the
// heuristic name fallback, the cross-line organization scanner, and
// stop-word language detection.
//
// Every detector emits character-offset matches against the text it
// was given. Spatial resolution happens later, in fusion.
package detect

import (
	"context"
	"sort"

	"golang.org/x/text/language"

	"github.com/tsawler/redacta/model"
)

// Detector is one detection layer. Implementations must be safe for
// concurrent use; pages are processed in parallel.
type Detector interface {
	Name() string
	Detect(ctx context.Context, text string, lang language.Tag) ([]model.DetectionMatch, error)
}

// dedupeOverlaps sorts matches by position and drops any match that
// overlaps an earlier, higher-confidence one.
func dedupeOverlaps(matches []model.DetectionMatch) []model.DetectionMatch {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Start != matches[j].Start {
			return matches[i].Start < matches[j].Start
		}
		return matches[i].Confidence > matches[j].Confidence
	})
	var out []model.DetectionMatch
	lastEnd := -1
	for _, m := range matches {
		if m.Start >= lastEnd {
			out = append(out, m)
			lastEnd = m.End
		}
	}
	return out
}

// NonOverlapping reports whether candidate shares no characters with
// any match already accepted.
func NonOverlapping(candidate model.DetectionMatch, accepted []model.DetectionMatch) bool {
	for _, m := range accepted {
		if candidate.Start < m.End && m.Start < candidate.End {
			return false
		}
	}
	return true
}
