package model

// TextFragment is the smallest extracted text unit: one word (or word
// piece) with its own bounding box. Fragments are produced by
// ingestion and treated as immutable by everything downstream.
type TextFragment struct {
	Text string `json:"text"`
	BBox BBox   `json:"bbox"`

	// Confidence is 1.0 for native digital text, lower for OCR output.
	Confidence float64 `json:"confidence,omitempty"`

	// IsOCR marks fragments recovered by OCR rather than extracted
	// from a digital text layer.
	IsOCR bool `json:"is_ocr,omitempty"`

	// Style hints from ingestion. FontSize 0 means unknown.
	FontSize float64 `json:"font_size,omitempty"`
	Bold     bool    `json:"bold,omitempty"`
	Italic   bool    `json:"italic,omitempty"`
}

// ClusterLines groups fragments into visual lines by vertical-centre
// proximity, then sorts each line left to right.
//
// A plain sort by (y0, x0) can mis-order words on the same visual line
// when their y0 values differ slightly, which is common with
// ascenders, descenders, and OCR jitter. Clustering by vertical centre
// with a half-line-height tolerance avoids this.
func ClusterLines(fragments []TextFragment) [][]TextFragment {
	if len(fragments) == 0 {
		return nil
	}

	byY := make([]TextFragment, len(fragments))
	copy(byY, fragments)
	sortFragments(byY, func(a, b TextFragment) bool {
		return a.BBox.CenterY() < b.BBox.CenterY()
	})

	var lines [][]TextFragment
	var cur []TextFragment
	var lineYC, lineH float64

	for _, frag := range byY {
		fh := frag.BBox.Height()
		fyc := frag.BBox.CenterY()

		if len(cur) == 0 {
			cur = []TextFragment{frag}
			lineYC = fyc
			lineH = fh
			continue
		}

		tolerance := maxFloat(lineH, fh) * 0.5
		if absFloat(fyc-lineYC) <= tolerance {
			cur = append(cur, frag)
			lineH = maxFloat(lineH, fh)
			n := float64(len(cur))
			lineYC = (lineYC*(n-1) + fyc) / n
		} else {
			lines = append(lines, sortedByX(cur))
			cur = []TextFragment{frag}
			lineYC = fyc
			lineH = fh
		}
	}
	if len(cur) > 0 {
		lines = append(lines, sortedByX(cur))
	}
	return lines
}

// FragmentsBBox returns the merged bounding box of a fragment set.
func FragmentsBBox(fragments []TextFragment) BBox {
	if len(fragments) == 0 {
		return BBox{}
	}
	out := fragments[0].BBox
	for _, f := range fragments[1:] {
		out = out.Union(f.BBox)
	}
	return out
}

// AvgFragmentHeight returns the mean fragment height, or a 10pt
// fallback for an empty set so thresholds stay finite.
func AvgFragmentHeight(fragments []TextFragment) float64 {
	if len(fragments) == 0 {
		return 10.0
	}
	sum := 0.0
	for _, f := range fragments {
		sum += f.BBox.Height()
	}
	return sum / float64(len(fragments))
}

func sortedByX(frags []TextFragment) []TextFragment {
	out := make([]TextFragment, len(frags))
	copy(out, frags)
	sortFragments(out, func(a, b TextFragment) bool {
		return a.BBox.X0 < b.BBox.X0
	})
	return out
}

// sortFragments is a stable insertion sort; fragment lines are short
// and stability preserves ingestion order for ties.
func sortFragments(frags []TextFragment, less func(a, b TextFragment) bool) {
	for i := 1; i < len(frags); i++ {
		for j := i; j > 0 && less(frags[j], frags[j-1]); j-- {
			frags[j], frags[j-1] = frags[j-1], frags[j]
		}
	}
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
