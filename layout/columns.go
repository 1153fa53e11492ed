// Package layout analyzes the column structure of a page and builds a
// detection text that rejoins entity names split across visual lines.
//
// A page is divided into vertical x-bands. Two signals drive band
// detection: wide horizontal gaps inside visual lines vote for a
// gutter at their midpoint, and the words to the right of a confirmed
// gutter must share a tight left edge. Single-occurrence wide gaps
// (one long word, missing text) never create a column.
package layout

import (
	"log/slog"
	"math"
	"sort"

	"github.com/tsawler/redacta/offsets"
)

const (
	// A horizontal gap within a visual line must exceed this multiple
	// of the average word height to be a candidate column gutter.
	colGapLineRatio = 2.5

	// A candidate gap is confirmed only when at least this many
	// distinct page lines show a gap at approximately the same x.
	colMinLineVotes = 2

	// The std-dev of x0 values for words immediately right of a
	// candidate gutter must stay within avgHeight times this ratio.
	colLeftAlignStdRatio = 0.6

	// Gap votes within this many points are merged into one cluster.
	colGapMergeTolerance = 12.0

	// Consecutive lines in a column are joined with a space when
	// their y-gap is at most this multiple of the average word
	// height. Larger gaps keep the newline.
	colLineJoinRatio = 2.0

	// Words wider than this fraction of the page width are treated
	// as full-width headings and excluded from gap analysis.
	fullWidthRatio = 0.55
)

// Band is a vertical x-band holding the entries of one logical column.
type Band struct {
	Left    float64
	Right   float64
	Entries []offsets.Entry
}

func avgEntryHeight(entries []offsets.Entry) float64 {
	if len(entries) == 0 {
		return 10.0
	}
	sum := 0.0
	for _, e := range entries {
		sum += e.Fragment.BBox.Height()
	}
	return sum / float64(len(entries))
}

func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0.0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// clusterEntryLines groups entries into visual lines by vertical
// centre, tolerance half the taller fragment, then orders each line
// left to right.
func clusterEntryLines(entries []offsets.Entry) [][]offsets.Entry {
	if len(entries) == 0 {
		return nil
	}

	sorted := make([]offsets.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Fragment.BBox.CenterY() < sorted[j].Fragment.BBox.CenterY()
	})

	type lineAcc struct {
		entries []offsets.Entry
		sumYC   float64
	}
	var lines []*lineAcc
	for _, e := range sorted {
		yc := e.Fragment.BBox.CenterY()
		placed := false
		if len(lines) > 0 {
			last := lines[len(lines)-1]
			meanYC := last.sumYC / float64(len(last.entries))
			maxH := e.Fragment.BBox.Height()
			for _, le := range last.entries {
				if h := le.Fragment.BBox.Height(); h > maxH {
					maxH = h
				}
			}
			if math.Abs(yc-meanYC) <= maxH*0.5 {
				last.entries = append(last.entries, e)
				last.sumYC += yc
				placed = true
			}
		}
		if !placed {
			lines = append(lines, &lineAcc{entries: []offsets.Entry{e}, sumYC: yc})
		}
	}

	out := make([][]offsets.Entry, len(lines))
	for i, l := range lines {
		sort.SliceStable(l.entries, func(a, b int) bool {
			return l.entries[a].Fragment.BBox.X0 < l.entries[b].Fragment.BBox.X0
		})
		out[i] = l.entries
	}
	return out
}

// DetectBands finds the column x-bands of a page from word positions.
// Always returns at least one band for a non-empty page, with every
// entry assigned to exactly one band.
func DetectBands(entries []offsets.Entry, pageWidth float64) []Band {
	if len(entries) == 0 {
		return nil
	}

	// Full-width spans (titles, rules) do not vote for gutters but are
	// assigned to bands afterwards.
	var colEntries []offsets.Entry
	for _, e := range entries {
		if e.Fragment.BBox.Width() <= pageWidth*fullWidthRatio {
			colEntries = append(colEntries, e)
		}
	}
	if len(colEntries) == 0 {
		colEntries = entries
	}

	avgH := avgEntryHeight(colEntries)
	gapThreshold := math.Max(avgH*colGapLineRatio, 15.0)

	lines := clusterEntryLines(colEntries)

	var gapVotes []float64
	for _, line := range lines {
		for i := 1; i < len(line); i++ {
			prev, curr := line[i-1].Fragment.BBox, line[i].Fragment.BBox
			if curr.X0-prev.X1 >= gapThreshold {
				gapVotes = append(gapVotes, (prev.X1+curr.X0)/2.0)
			}
		}
	}

	singleBand := func() []Band {
		left, right := colEntries[0].Fragment.BBox.X0, colEntries[0].Fragment.BBox.X1
		for _, e := range colEntries[1:] {
			if e.Fragment.BBox.X0 < left {
				left = e.Fragment.BBox.X0
			}
			if e.Fragment.BBox.X1 > right {
				right = e.Fragment.BBox.X1
			}
		}
		return []Band{{Left: left, Right: right, Entries: entries}}
	}

	if len(gapVotes) == 0 {
		return singleBand()
	}

	// Cluster votes by x position, confirm by vote count.
	sort.Float64s(gapVotes)
	clusters := [][]float64{{gapVotes[0]}}
	for _, gx := range gapVotes[1:] {
		last := clusters[len(clusters)-1]
		if gx-last[len(last)-1] <= colGapMergeTolerance {
			clusters[len(clusters)-1] = append(last, gx)
		} else {
			clusters = append(clusters, []float64{gx})
		}
	}

	var confirmed []float64
	for _, c := range clusters {
		if len(c) >= colMinLineVotes {
			sum := 0.0
			for _, v := range c {
				sum += v
			}
			confirmed = append(confirmed, sum/float64(len(c)))
		}
	}
	if len(confirmed) == 0 {
		return singleBand()
	}

	// Validate each gutter by the left-edge alignment of the words
	// just to its right. A scattered right edge means the "gutter" is
	// an accident of ragged text, not a column boundary.
	var validated []float64
	for _, gx := range confirmed {
		var rightX0 []float64
		for _, e := range colEntries {
			x0 := e.Fragment.BBox.X0
			if gx-5.0 < x0 && x0 <= gx+avgH*4.0 {
				rightX0 = append(rightX0, x0)
			}
		}
		if len(rightX0) < 2 {
			validated = append(validated, gx)
			continue
		}
		std := stdDev(rightX0)
		alignScore := 1.0 / (1.0 + std)
		neededScore := 1.0 / (1.0 + avgH*colLeftAlignStdRatio)
		if alignScore >= neededScore {
			validated = append(validated, gx)
		} else {
			slog.Debug("column gutter rejected", "x", gx, "right_x0_std", std)
		}
	}
	if len(validated) == 0 {
		return singleBand()
	}

	sort.Float64s(validated)
	bounds := append(append([]float64{0.0}, validated...), pageWidth)
	bands := make([]Band, len(bounds)-1)
	for i := range bands {
		bands[i] = Band{Left: bounds[i], Right: bounds[i+1]}
	}

	// Assign every entry, full-width ones included, to the band whose
	// range contains its horizontal centre, or the nearest band.
	for _, e := range entries {
		cx := e.Fragment.BBox.Center().X
		assigned := false
		for i := range bands {
			if bands[i].Left <= cx && cx <= bands[i].Right {
				bands[i].Entries = append(bands[i].Entries, e)
				assigned = true
				break
			}
		}
		if !assigned {
			best, bestDist := 0, math.Inf(1)
			for i := range bands {
				d := math.Min(math.Abs(cx-bands[i].Left), math.Abs(cx-bands[i].Right))
				if d < bestDist {
					best, bestDist = i, d
				}
			}
			bands[best].Entries = append(bands[best].Entries, e)
		}
	}

	out := bands[:0]
	for _, b := range bands {
		if len(b.Entries) > 0 {
			out = append(out, b)
		}
	}
	slog.Debug("page column layout", "bands", len(out))
	return out
}
