package offsets

import (
	"sort"

	"github.com/tsawler/redacta/model"
)

// Overlapping returns the entries whose character range intersects
// [start, end), in text order. The initial position is found by
// binary search over entry end offsets.
func (ix *Index) Overlapping(start, end int) []Entry {
	if len(ix.entries) == 0 || start >= end {
		return nil
	}

	// First entry whose end > start.
	lo := sort.SearchInts(ix.ends, start+1)
	var out []Entry
	for i := lo; i < len(ix.entries); i++ {
		e := ix.entries[i]
		if e.Start >= end {
			break
		}
		if e.End > start {
			out = append(out, e)
		}
	}
	return out
}

// Nearest returns the entry closest to [start, end) by offset
// distance. Used as the fallback when a span covers no fragment (for
// example a span consisting only of separator characters).
func (ix *Index) Nearest(start, end int) (Entry, bool) {
	if len(ix.entries) == 0 {
		return Entry{}, false
	}
	best := ix.entries[0]
	bestDist := offsetDistance(best, start, end)
	for _, e := range ix.entries[1:] {
		if d := offsetDistance(e, start, end); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, true
}

func offsetDistance(e Entry, start, end int) int {
	d1 := absInt(e.Start - start)
	d2 := absInt(e.End - end)
	if d1 < d2 {
		return d1
	}
	return d2
}

// BBoxFor maps a character range to the merged bounding box of the
// fragments it covers. For a valid position on a non-empty page it
// never fails: when the span covers no fragment, the nearest fragment
// by offset distance is used. The second return is false only for an
// empty index.
func (ix *Index) BBoxFor(start, end int) (model.BBox, bool) {
	covering := ix.Overlapping(start, end)
	if len(covering) == 0 {
		nearest, ok := ix.Nearest(start, end)
		if !ok {
			return model.BBox{}, false
		}
		covering = []Entry{nearest}
	}
	boxes := make([]model.BBox, len(covering))
	for i, e := range covering {
		boxes[i] = e.Fragment.BBox
	}
	return model.UnionAll(boxes), true
}

// LineBBoxesFor maps a character range to one bounding box per visual
// line crossed, using vertical-centre clustering. When the covered
// fragments all sit within one line height of each other they are
// collapsed to a single line even if clustering split them, which
// absorbs subscript/superscript jitter.
func (ix *Index) LineBBoxesFor(start, end int) []model.BBox {
	covering := ix.Overlapping(start, end)
	if len(covering) == 0 {
		nearest, ok := ix.Nearest(start, end)
		if !ok {
			return nil
		}
		covering = []Entry{nearest}
	}

	frags := make([]model.TextFragment, len(covering))
	for i, e := range covering {
		frags[i] = e.Fragment
	}

	lines := model.ClusterLines(frags)

	if len(lines) > 1 {
		maxH, minYC, maxYC := 0.0, frags[0].BBox.CenterY(), frags[0].BBox.CenterY()
		for _, f := range frags {
			if h := f.BBox.Height(); h > maxH {
				maxH = h
			}
			yc := f.BBox.CenterY()
			if yc < minYC {
				minYC = yc
			}
			if yc > maxYC {
				maxYC = yc
			}
		}
		if maxYC-minYC <= maxH {
			lines = [][]model.TextFragment{frags}
		}
	}

	boxes := make([]model.BBox, 0, len(lines))
	for _, line := range lines {
		boxes = append(boxes, model.FragmentsBBox(line))
	}
	return boxes
}

// OverlappingBBox returns entries whose fragment spatially intersects
// the given box. Used when a region carries no usable character span.
func (ix *Index) OverlappingBBox(bbox model.BBox) []Entry {
	var out []Entry
	for _, e := range ix.entries {
		if e.Fragment.BBox.Intersects(bbox) {
			out = append(out, e)
		}
	}
	return out
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
