package model

import "strings"

// PageText is one page of a document: its dimensions, the word-level
// fragments from ingestion, and the concatenated full text used as the
// canonical coordinate space for character offsets.
type PageText struct {
	Number    int            `json:"page_number"`
	Width     float64        `json:"width"`
	Height    float64        `json:"height"`
	Fragments []TextFragment `json:"fragments"`
	FullText  string         `json:"full_text"`
}

// NewPageText builds a page from ingestion fragments, deriving the
// full text deterministically.
func NewPageText(number int, width, height float64, fragments []TextFragment) *PageText {
	return &PageText{
		Number:    number,
		Width:     width,
		Height:    height,
		Fragments: fragments,
		FullText:  BuildFullText(fragments),
	}
}

// BuildFullText concatenates fragments into the canonical page string.
//
// Fragments are clustered into visual lines and ordered left to right
// within each line. Between lines, a newline is inserted when the
// vertical gap exceeds 60% of the previous line height, otherwise a
// space (tightly stacked lines often continue a sentence). Within a
// line, a horizontal gap larger than 3x the average fragment height is
// treated as a column boundary and produces a newline, so detectors
// never see text from separate columns as one phrase.
func BuildFullText(fragments []TextFragment) string {
	if len(fragments) == 0 {
		return ""
	}

	lines := ClusterLines(fragments)

	var sb strings.Builder
	havePrev := false
	prevY := 0.0
	lineHeight := 0.0

	for _, line := range lines {
		lineTop := line[0].BBox.Y0
		lh := 0.0
		avgH := 0.0
		for _, f := range line {
			if f.BBox.Y0 < lineTop {
				lineTop = f.BBox.Y0
			}
			avgH += f.BBox.Height()
		}
		for _, f := range line {
			if f.BBox.Y1-lineTop > lh {
				lh = f.BBox.Y1 - lineTop
			}
		}
		avgH /= float64(len(line))
		colGapThreshold := maxFloat(avgH*3, 15.0)

		for i, frag := range line {
			if havePrev || i > 0 {
				if i == 0 {
					gap := lineTop - prevY
					if lineHeight > 0 && gap > lineHeight*0.6 {
						sb.WriteByte('\n')
					} else {
						sb.WriteByte(' ')
					}
				} else {
					hGap := frag.BBox.X0 - line[i-1].BBox.X1
					if hGap > colGapThreshold {
						sb.WriteByte('\n')
					} else {
						sb.WriteByte(' ')
					}
				}
			}
			sb.WriteString(frag.Text)
			havePrev = true
		}

		prevY = lineTop
		lineHeight = lh
	}

	return strings.TrimSpace(sb.String())
}
