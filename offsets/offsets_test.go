package offsets

import (
	"testing"

	"github.com/tsawler/redacta/model"
)

func frag(x0, y0, x1, y1 float64, text string) model.TextFragment {
	return model.TextFragment{
		Text:       text,
		BBox:       model.NewBBox(x0, y0, x1, y1),
		Confidence: 1.0,
	}
}

// twoLinePage returns fragments and the full text built from them.
func twoLinePage() ([]model.TextFragment, string) {
	frags := []model.TextFragment{
		frag(10, 100, 50, 112, "John"),
		frag(55, 100, 100, 112, "Smith"),
		frag(10, 130, 80, 142, "Montreal"),
	}
	return frags, model.BuildFullText(frags)
}

func TestBuildVerifiesAgainstFullText(t *testing.T) {
	frags, fullText := twoLinePage()
	ix := Build(frags, fullText)

	if !ix.Verified() {
		t.Fatalf("index not verified, strategy=%s", ix.Strategy())
	}
	for _, e := range ix.Entries() {
		if got := fullText[e.Start:e.End]; got != e.Fragment.Text {
			t.Errorf("entry [%d:%d] = %q, want %q", e.Start, e.End, got, e.Fragment.Text)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	ix := Build(nil, "")
	if !ix.Verified() || len(ix.Entries()) != 0 {
		t.Errorf("empty build: verified=%v entries=%d", ix.Verified(), len(ix.Entries()))
	}
	if _, ok := ix.BBoxFor(0, 5); ok {
		t.Error("empty index should report no bbox")
	}
}

func TestBuildShiftCorrection(t *testing.T) {
	frags := []model.TextFragment{
		frag(10, 100, 50, 112, "John"),
		frag(55, 100, 100, 112, "Smith"),
	}
	// Full text carries a two-character prefix the fragments do not
	// cover, displacing every offset by a constant.
	fullText := "> John Smith"

	ix := Build(frags, fullText)
	if !ix.Verified() {
		t.Fatalf("shifted text not recovered, strategy=%s", ix.Strategy())
	}
	if ix.Strategy() != "shift" {
		t.Errorf("strategy = %s, want shift", ix.Strategy())
	}
	for _, e := range ix.Entries() {
		if fullText[e.Start:e.End] != e.Fragment.Text {
			t.Errorf("entry [%d:%d] does not match after shift", e.Start, e.End)
		}
	}
}

func TestBuildFallsBackUnverified(t *testing.T) {
	frags := []model.TextFragment{
		frag(10, 100, 50, 112, "John"),
	}
	ix := Build(frags, "completely different text")

	if ix.Verified() {
		t.Error("mismatched text should not verify")
	}
	if len(ix.Entries()) == 0 {
		t.Error("fallback should still produce entries")
	}
}

func TestOverlapping(t *testing.T) {
	frags, fullText := twoLinePage()
	ix := Build(frags, fullText)

	// "John Smith\nMontreal": span covering "Smith".
	got := ix.Overlapping(5, 10)
	if len(got) != 1 || got[0].Fragment.Text != "Smith" {
		t.Fatalf("Overlapping(5,10) = %v", texts(got))
	}

	// Span across the line break covers Smith and Montreal.
	got = ix.Overlapping(5, 15)
	if len(got) != 2 {
		t.Fatalf("Overlapping(5,15) = %v", texts(got))
	}

	if got := ix.Overlapping(3, 3); got != nil {
		t.Errorf("empty span should return nil, got %v", texts(got))
	}
}

func TestBBoxForUnion(t *testing.T) {
	frags, fullText := twoLinePage()
	ix := Build(frags, fullText)

	bbox, ok := ix.BBoxFor(0, 10) // "John Smith"
	if !ok {
		t.Fatal("expected bbox")
	}
	if bbox.X0 != 10 || bbox.X1 != 100 {
		t.Errorf("bbox = %+v, want x 10..100", bbox)
	}
}

func TestBBoxForSeparatorFallsBackToNearest(t *testing.T) {
	frags, fullText := twoLinePage()
	ix := Build(frags, fullText)

	// Position 4 is the space between John and Smith: no fragment
	// covers it, so the nearest fragment stands in.
	bbox, ok := ix.BBoxFor(4, 5)
	if !ok {
		t.Fatal("separator span should still resolve")
	}
	if bbox.Width() <= 0 {
		t.Errorf("fallback bbox is empty: %+v", bbox)
	}
}

func TestLineBBoxesForMultiLine(t *testing.T) {
	frags, fullText := twoLinePage()
	ix := Build(frags, fullText)

	boxes := ix.LineBBoxesFor(0, len(fullText))
	if len(boxes) != 2 {
		t.Fatalf("expected 2 line boxes, got %d", len(boxes))
	}
	if boxes[0].Y0 >= boxes[1].Y0 {
		t.Error("line boxes not in top-down order")
	}
}

func TestLineBBoxesForJitterCollapses(t *testing.T) {
	// Slight vertical jitter within one line height collapses back to
	// a single line box.
	frags := []model.TextFragment{
		frag(10, 100, 50, 112, "Dr."),
		frag(55, 104, 100, 116, "Smith"),
	}
	fullText := model.BuildFullText(frags)
	ix := Build(frags, fullText)

	boxes := ix.LineBBoxesFor(0, len(fullText))
	if len(boxes) != 1 {
		t.Errorf("expected jitter collapse to 1 line, got %d", len(boxes))
	}
}

func TestOverlappingBBox(t *testing.T) {
	frags, fullText := twoLinePage()
	ix := Build(frags, fullText)

	got := ix.OverlappingBBox(model.NewBBox(0, 125, 200, 150))
	if len(got) != 1 || got[0].Fragment.Text != "Montreal" {
		t.Errorf("OverlappingBBox = %v", texts(got))
	}
}

func TestEffectiveGapThreshold(t *testing.T) {
	tests := []struct {
		lineH, fuzz, want float64
	}{
		{12.0, 0.0, 6.0},
		{12.0, 1.0, 15.0},
		{12.0, 0.5, 10.5},
		{30.0, 1.0, absoluteMaxGapPt},
	}
	for _, tt := range tests {
		got := EffectiveGapThreshold(tt.lineH, tt.fuzz)
		if absFloat(got-tt.want) > 0.01 {
			t.Errorf("EffectiveGapThreshold(%v, %v) = %v, want %v",
				tt.lineH, tt.fuzz, got, tt.want)
		}
	}
}

func TestSplitAtGapsNoSplitCloseWords(t *testing.T) {
	entries := []Entry{
		{0, 4, frag(10, 10, 40, 20, "John")},
		{5, 10, frag(44, 10, 80, 20, "Smith")},
	}
	groups := SplitAtGaps(entries, "John Smith", 0.5)
	if len(groups) != 1 || len(groups[0]) != 2 {
		t.Errorf("close words split: %d groups", len(groups))
	}
}

func TestSplitAtGapsLargeSpatialGap(t *testing.T) {
	entries := []Entry{
		{0, 4, frag(10, 10, 40, 20, "John")},
		{5, 10, frag(50, 10, 80, 20, "Smith")}, // 10pt gap, threshold 8.75pt
	}
	groups := SplitAtGaps(entries, "John Smith", 0.5)
	if len(groups) != 2 {
		t.Errorf("expected spatial split, got %d groups", len(groups))
	}
}

func TestSplitAtGapsWhitespaceRun(t *testing.T) {
	entries := []Entry{
		{0, 4, frag(10, 10, 40, 20, "John")},
		{8, 13, frag(44, 10, 80, 20, "Smith")},
	}
	groups := SplitAtGaps(entries, "John    Smith", 0.5)
	if len(groups) != 2 {
		t.Errorf("expected whitespace split, got %d groups", len(groups))
	}
}

func TestSplitAtGapsUniformGapsKeptTogether(t *testing.T) {
	// All gaps slightly above the strict threshold but uniform: the
	// outlier check keeps stretched company names in one group.
	entries := []Entry{
		{0, 8, frag(10, 10, 60, 20, "91269270")},
		{9, 15, frag(66, 10, 100, 20, "Canada")},
		{16, 19, frag(107, 10, 125, 20, "Inc")},
	}
	groups := SplitAtGaps(entries, "91269270 Canada Inc", 0.0)
	if len(groups) != 1 || len(groups[0]) != 3 {
		t.Errorf("uniform gaps split: %d groups", len(groups))
	}
}

func TestSplitAtGapsOutlierSplits(t *testing.T) {
	entries := []Entry{
		{0, 4, frag(10, 10, 40, 20, "John")},
		{5, 10, frag(45, 10, 80, 20, "Smith")},
		{11, 14, frag(120, 10, 145, 20, "DOB")}, // 40pt column gap
	}
	groups := SplitAtGaps(entries, "John Smith DOB", 0.0)
	if len(groups) != 2 {
		t.Fatalf("expected outlier split, got %d groups", len(groups))
	}
	if len(groups[0]) != 2 || len(groups[1]) != 1 {
		t.Errorf("group sizes = %d,%d want 2,1", len(groups[0]), len(groups[1]))
	}
}

func TestSplitAtGapsEmpty(t *testing.T) {
	if groups := SplitAtGaps(nil, "", 0.5); groups != nil {
		t.Errorf("expected nil for empty input, got %v", groups)
	}
}

func TestEntriesSpanAndBBox(t *testing.T) {
	entries := []Entry{
		{5, 10, frag(44, 10, 80, 20, "Smith")},
		{0, 4, frag(10, 10, 40, 20, "John")},
	}
	start, end := EntriesSpan(entries)
	if start != 0 || end != 10 {
		t.Errorf("span = [%d,%d), want [0,10)", start, end)
	}
	bbox := EntriesBBox(entries)
	if bbox.X0 != 10 || bbox.X1 != 80 {
		t.Errorf("bbox = %+v", bbox)
	}
}

func texts(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Fragment.Text
	}
	return out
}
