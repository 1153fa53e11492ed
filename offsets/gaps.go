package offsets

import (
	"sort"

	"github.com/tsawler/redacta/model"
)

// Spatial thresholds for gap splitting. The effective threshold scales
// with detection fuzziness between the min and max ratios of line
// height and never exceeds the absolute cap.
const (
	minGapLineRatio  = 0.5
	maxGapLineRatio  = 1.25
	absoluteMaxGapPt = 20.0

	// A gap must be at least this multiple of the smallest same-line
	// gap in the group before it splits. Keeps unusually loose but
	// uniform word spacing (stretched headings, tabular company names)
	// in one group.
	gapOutlierFactor = 3.0

	// More than this many whitespace characters between consecutive
	// entries in the full text forces a split regardless of geometry.
	maxWordGapWS = 3
)

// EffectiveGapThreshold computes the spatial split threshold in page
// points for a given line height. fuzziness in [0,1] interpolates
// between the strict and permissive ratios.
func EffectiveGapThreshold(lineHeight, fuzziness float64) float64 {
	if fuzziness < 0 {
		fuzziness = 0
	} else if fuzziness > 1 {
		fuzziness = 1
	}
	ratio := minGapLineRatio + (maxGapLineRatio-minGapLineRatio)*fuzziness
	t := lineHeight * ratio
	if t > absoluteMaxGapPt {
		return absoluteMaxGapPt
	}
	return t
}

// SplitAtGaps partitions entries into visually coherent groups. A
// split happens between consecutive entries when their horizontal gap
// both exceeds the font-relative threshold and stands out as an
// outlier against the group's own spacing, or when the full text
// between them contains more whitespace than a normal word boundary.
func SplitAtGaps(entries []Entry, fullText string, fuzziness float64) [][]Entry {
	if len(entries) == 0 {
		return nil
	}
	if len(entries) == 1 {
		return [][]Entry{entries}
	}

	maxH := 0.0
	minYC := entries[0].Fragment.BBox.CenterY()
	maxYC := minYC
	for _, e := range entries {
		if h := e.Fragment.BBox.Height(); h > maxH {
			maxH = h
		}
		yc := e.Fragment.BBox.CenterY()
		if yc < minYC {
			minYC = yc
		}
		if yc > maxYC {
			maxYC = yc
		}
	}
	singleLine := maxYC-minYC <= maxH*0.5

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	if singleLine {
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Fragment.BBox.X0 < sorted[j].Fragment.BBox.X0
		})
	} else {
		sort.SliceStable(sorted, func(i, j int) bool {
			yi, yj := sorted[i].Fragment.BBox.CenterY(), sorted[j].Fragment.BBox.CenterY()
			if yi != yj {
				return yi < yj
			}
			return sorted[i].Fragment.BBox.X0 < sorted[j].Fragment.BBox.X0
		})
	}

	// First pass: same-line gap statistics for the outlier check.
	var sameLineGaps []float64
	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1].Fragment, sorted[i].Fragment
		if onSameLine(prev, curr) {
			if gap := curr.BBox.X0 - prev.BBox.X1; gap > 0 {
				sameLineGaps = append(sameLineGaps, gap)
			}
		}
	}
	minGap := 0.0
	if len(sameLineGaps) > 0 {
		minGap = sameLineGaps[0]
		for _, g := range sameLineGaps[1:] {
			if g < minGap {
				minGap = g
			}
		}
	}

	groups := [][]Entry{{sorted[0]}}
	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		lineH := maxFloat(prev.Fragment.BBox.Height(), curr.Fragment.BBox.Height())

		gapPt := 0.0
		if onSameLine(prev.Fragment, curr.Fragment) {
			gapPt = curr.Fragment.BBox.X0 - prev.Fragment.BBox.X1
		}
		threshold := EffectiveGapThreshold(lineH, fuzziness)

		wsCount := 0
		if prev.End <= curr.Start && curr.Start <= len(fullText) {
			for _, ch := range fullText[prev.End:curr.Start] {
				switch ch {
				case ' ', '\t', '\n', '\r':
					wsCount++
				}
			}
		}

		exceeded := gapPt > threshold
		outlier := true
		if len(sameLineGaps) >= 2 && minGap > 0 {
			outlier = gapPt >= minGap*gapOutlierFactor
		}

		if (exceeded && outlier) || wsCount > maxWordGapWS {
			groups = append(groups, []Entry{curr})
		} else {
			groups[len(groups)-1] = append(groups[len(groups)-1], curr)
		}
	}
	return groups
}

// EntriesBBox merges the fragment boxes of a group of entries.
func EntriesBBox(entries []Entry) model.BBox {
	boxes := make([]model.BBox, len(entries))
	for i, e := range entries {
		boxes[i] = e.Fragment.BBox
	}
	return model.UnionAll(boxes)
}

// EntriesSpan returns the covered character range of a group.
func EntriesSpan(entries []Entry) (start, end int) {
	if len(entries) == 0 {
		return 0, 0
	}
	start, end = entries[0].Start, entries[0].End
	for _, e := range entries[1:] {
		if e.Start < start {
			start = e.Start
		}
		if e.End > end {
			end = e.End
		}
	}
	return start, end
}

func onSameLine(a, b model.TextFragment) bool {
	lineH := maxFloat(a.BBox.Height(), b.BBox.Height())
	return absFloat(b.BBox.CenterY()-a.BBox.CenterY()) < lineH*0.5
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
