package layout

import (
	"strings"

	"github.com/tsawler/redacta/offsets"
)

// sentinel marks detection-text positions produced by inserted
// separators that have no counterpart in the page full text.
const sentinel = -1

// DetectionText is the reflowed text detectors run against, with a
// parallel byte map back to the page full text. ToFull[i] is the full
// text position that produced Text[i], or -1 for inserted separators.
type DetectionText struct {
	Text   string
	ToFull []int
}

// Build reflows a page for detection. Within each column band, lines
// whose vertical gap is small are joined with a space instead of a
// newline, so detectors see "Acme International\nInc" as one phrase.
// Paragraph breaks and column boundaries keep their newlines.
func Build(ix *offsets.Index, fullText string, pageWidth float64) DetectionText {
	entries := ix.Entries()
	if len(entries) == 0 || fullText == "" {
		toFull := make([]int, len(fullText))
		for i := range toFull {
			toFull[i] = i
		}
		return DetectionText{Text: fullText, ToFull: toFull}
	}

	avgH := avgEntryHeight(entries)
	bands := DetectBands(entries, pageWidth)

	var sb strings.Builder
	var toFull []int

	sep := func(ch byte) {
		sb.WriteByte(ch)
		toFull = append(toFull, sentinel)
	}
	appendEntry := func(e offsets.Entry) {
		sb.WriteString(e.Fragment.Text)
		for i := 0; i < len(e.Fragment.Text); i++ {
			toFull = append(toFull, e.Start+i)
		}
	}

	for bandIdx, band := range bands {
		if bandIdx > 0 {
			sep('\n')
		}

		lines := clusterEntryLines(band.Entries)
		prevBottom := 0.0
		havePrev := false

		for _, line := range lines {
			top, bottom := line[0].Fragment.BBox.Y0, line[0].Fragment.BBox.Y1
			for _, e := range line[1:] {
				if e.Fragment.BBox.Y0 < top {
					top = e.Fragment.BBox.Y0
				}
				if e.Fragment.BBox.Y1 > bottom {
					bottom = e.Fragment.BBox.Y1
				}
			}

			if havePrev {
				if top-prevBottom > avgH*colLineJoinRatio {
					sep('\n')
				} else {
					sep(' ')
				}
			}

			for wordIdx, e := range line {
				if wordIdx > 0 {
					sep(' ')
				}
				appendEntry(e)
			}

			prevBottom = bottom
			havePrev = true
		}
	}

	return DetectionText{Text: sb.String(), ToFull: toFull}
}

// Translate maps a [start, end) span in the detection text back to
// full-text coordinates and returns the recovered text with embedded
// newlines flattened to spaces. The second return is false when the
// span covers only inserted separators.
func (dt DetectionText) Translate(start, end int, fullText string) (ftStart, ftEnd int, text string, ok bool) {
	n := len(dt.ToFull)
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}

	ftStart = sentinel
	for i := start; i < end; i++ {
		if dt.ToFull[i] >= 0 {
			ftStart = dt.ToFull[i]
			break
		}
	}
	if ftStart < 0 {
		return 0, 0, "", false
	}

	ftEndChar := sentinel
	for i := end - 1; i >= start; i-- {
		if dt.ToFull[i] >= 0 {
			ftEndChar = dt.ToFull[i]
			break
		}
	}
	if ftEndChar < 0 {
		return 0, 0, "", false
	}

	ftEnd = ftEndChar + 1
	text = strings.ReplaceAll(fullText[ftStart:ftEnd], "\n", " ")
	return ftStart, ftEnd, text, true
}
