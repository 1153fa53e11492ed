package detect

import (
	"context"
	"strings"

	"golang.org/x/text/language"

	"github.com/tsawler/redacta/model"
)

// Organization names wrap across lines in narrow columns, so the
// line-local layers never see them whole. CrossLineOrgScanner builds a
// small word window around each line break, joins it into one line,
// and reruns the organization patterns over the joined text. Only
// matches that actually straddle the break are kept; everything else
// was already visible to the regex layer.
type CrossLineOrgScanner struct {
	// WordWindow is the number of words taken on each side of a
	// line break.
	WordWindow int
}

const defaultWordWindow = 8

func NewCrossLineOrgScanner() *CrossLineOrgScanner {
	return &CrossLineOrgScanner{WordWindow: defaultWordWindow}
}

func (s *CrossLineOrgScanner) Name() string { return "crossline" }

func (s *CrossLineOrgScanner) Detect(ctx context.Context, text string, _ language.Tag) ([]model.DetectionMatch, error) {
	window := s.WordWindow
	if window <= 0 {
		window = defaultWordWindow
	}
	patterns := orgPatterns()

	seen := make(map[[2]int]bool)
	var matches []model.DetectionMatch
	for i := 0; i < len(text); i++ {
		if text[i] != '\n' {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ws, leftWords := expandLeft(text, i, window)
		we, rightWords := expandRight(text, i, window)
		if leftWords == 0 || rightWords == 0 || leftWords+rightWords < 2 {
			continue
		}

		joined := strings.Replace(text[ws:we], "\n", " ", 1)
		nlRel := i - ws
		for _, p := range patterns {
			for _, loc := range p.re.FindAllStringIndex(joined, -1) {
				if loc[0] >= nlRel || loc[1] <= nlRel {
					continue
				}
				start, end := ws+loc[0], ws+loc[1]
				key := [2]int{start, end}
				if seen[key] {
					continue
				}
				seen[key] = true
				matches = append(matches, model.DetectionMatch{
					Start: start, End: end, Text: text[start:end],
					Category: p.category, Confidence: p.conf, Source: model.SourceRegex,
				})
			}
		}
	}
	return dedupeOverlaps(matches), nil
}

// expandLeft walks backwards from the newline at nl, collecting up to
// maxWords words and stopping at the previous line break. It returns
// the window start offset and the word count.
func expandLeft(text string, nl, maxWords int) (int, int) {
	words := 0
	i := nl
	for words < maxWords {
		for i > 0 && text[i-1] == ' ' {
			i--
		}
		if i == 0 || text[i-1] == '\n' {
			break
		}
		for i > 0 && text[i-1] != ' ' && text[i-1] != '\n' {
			i--
		}
		words++
	}
	return i, words
}

// expandRight mirrors expandLeft on the far side of the break.
func expandRight(text string, nl, maxWords int) (int, int) {
	words := 0
	i := nl + 1
	for words < maxWords {
		for i < len(text) && text[i] == ' ' {
			i++
		}
		if i == len(text) || text[i] == '\n' {
			break
		}
		for i < len(text) && text[i] != ' ' && text[i] != '\n' {
			i++
		}
		words++
	}
	return i, words
}
