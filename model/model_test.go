package model

import (
	"strings"
	"testing"
)

// Helper to create a word fragment from corner coordinates.
func frag(x0, y0, x1, y1 float64, text string) TextFragment {
	return TextFragment{
		Text:       text,
		BBox:       NewBBox(x0, y0, x1, y1),
		Confidence: 1.0,
	}
}

func TestBBoxBasics(t *testing.T) {
	b := NewBBox(10, 20, 110, 40)

	if b.Width() != 100 {
		t.Errorf("Width() = %f, want 100", b.Width())
	}
	if b.Height() != 20 {
		t.Errorf("Height() = %f, want 20", b.Height())
	}
	if b.Area() != 2000 {
		t.Errorf("Area() = %f, want 2000", b.Area())
	}
	if b.CenterY() != 30 {
		t.Errorf("CenterY() = %f, want 30", b.CenterY())
	}
	if !b.IsValid() {
		t.Error("expected valid box")
	}
}

func TestNewBBoxNormalizes(t *testing.T) {
	b := NewBBox(110, 40, 10, 20)
	if b.X0 != 10 || b.Y0 != 20 || b.X1 != 110 || b.Y1 != 40 {
		t.Errorf("NewBBox did not normalize corners: %+v", b)
	}
}

func TestBBoxIntersectionUnion(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(5, 5, 15, 15)

	inter := a.Intersection(b)
	if inter.Width() != 5 || inter.Height() != 5 {
		t.Errorf("Intersection = %+v, want 5x5", inter)
	}

	u := a.Union(b)
	if u.X0 != 0 || u.Y0 != 0 || u.X1 != 15 || u.Y1 != 15 {
		t.Errorf("Union = %+v, want (0,0,15,15)", u)
	}

	c := NewBBox(20, 20, 30, 30)
	if a.Intersects(c) {
		t.Error("disjoint boxes reported as intersecting")
	}
	if a.Intersection(c).Area() != 0 {
		t.Error("disjoint intersection should have zero area")
	}
}

func TestBBoxOverlapRatio(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)
	b := NewBBox(0, 0, 5, 10) // fully inside a

	if r := a.OverlapRatio(b); r != 1.0 {
		t.Errorf("OverlapRatio = %f, want 1.0 (contained box)", r)
	}

	c := NewBBox(50, 50, 60, 60)
	if r := a.OverlapRatio(c); r != 0 {
		t.Errorf("OverlapRatio = %f, want 0 for disjoint", r)
	}
}

func TestBBoxClamp(t *testing.T) {
	b := NewBBox(-10, -5, 700, 900)
	clamped := b.Clamp(612, 792)

	if clamped.X0 != 0 || clamped.Y0 != 0 {
		t.Errorf("clamp origin: %+v", clamped)
	}
	if clamped.X1 != 612 || clamped.Y1 != 792 {
		t.Errorf("clamp extent: %+v", clamped)
	}
}

func TestBBoxDegenerate(t *testing.T) {
	b := NewBBox(10, 10, 10.5, 40)
	if !b.IsDegenerate(1.0) {
		t.Error("0.5pt-wide box should be degenerate at 1pt minimum")
	}
	if b.IsDegenerate(0.1) {
		t.Error("box should pass a 0.1pt minimum")
	}
}

func TestClusterLinesJitter(t *testing.T) {
	// Three words on one visual line with y jitter, one word below.
	frags := []TextFragment{
		frag(10, 100, 50, 112, "John"),
		frag(55, 101.5, 95, 113, "Q"),
		frag(100, 99, 160, 111, "Public"),
		frag(10, 130, 80, 142, "below"),
	}

	lines := ClusterLines(frags)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if len(lines[0]) != 3 {
		t.Errorf("first line has %d words, want 3", len(lines[0]))
	}
	if lines[0][0].Text != "John" || lines[0][2].Text != "Public" {
		t.Errorf("first line not sorted left-to-right: %v", lineTexts(lines[0]))
	}
	if lines[1][0].Text != "below" {
		t.Errorf("second line = %v", lineTexts(lines[1]))
	}
}

func TestClusterLinesEmpty(t *testing.T) {
	if lines := ClusterLines(nil); lines != nil {
		t.Errorf("expected nil for empty input, got %v", lines)
	}
}

func TestBuildFullTextReadingOrder(t *testing.T) {
	frags := []TextFragment{
		// Deliberately out of ingestion order.
		frag(10, 130, 60, 142, "Second"),
		frag(10, 100, 60, 112, "First"),
		frag(65, 100, 110, 112, "line"),
	}

	text := BuildFullText(frags)
	if text != "First line\nSecond" {
		t.Errorf("BuildFullText = %q", text)
	}
}

func TestBuildFullTextColumnGap(t *testing.T) {
	// Two words on the same visual line separated by a huge gap:
	// column boundary, so a newline must separate them.
	frags := []TextFragment{
		frag(10, 100, 60, 112, "left"),
		frag(400, 100, 460, 112, "right"),
	}

	text := BuildFullText(frags)
	if !strings.Contains(text, "\n") {
		t.Errorf("expected column newline in %q", text)
	}
}

func TestBuildFullTextTightLinesJoinWithSpace(t *testing.T) {
	// Vertical gap below 60% of line height: fragments continue the
	// same sentence and are joined by a space.
	frags := []TextFragment{
		frag(10, 100, 90, 112, "Acme"),
		frag(10, 113, 110, 125, "International"),
	}

	text := BuildFullText(frags)
	if text != "Acme International" {
		t.Errorf("BuildFullText = %q, want space join", text)
	}
}

func TestCategoryTuning(t *testing.T) {
	if got := CatEmail.MaxWords(); got != 1 {
		t.Errorf("EMAIL MaxWords = %d, want 1", got)
	}
	if got := CatOrg.MaxWords(); got != 8 {
		t.Errorf("ORG MaxWords = %d, want 8", got)
	}
	if got := CatUnknown.MaxWords(); got != 4 {
		t.Errorf("UNKNOWN MaxWords = %d, want default 4", got)
	}
	if got := CatAddress.MaxLines(); got != 4 {
		t.Errorf("ADDRESS MaxLines = %d, want 4", got)
	}
	if got := CatSSN.MaxLines(); got != 1 {
		t.Errorf("SSN MaxLines = %d, want 1", got)
	}

	if min, ok := CatSSN.MinDigits(); !ok || min != 7 {
		t.Errorf("SSN MinDigits = %d,%v want 7,true", min, ok)
	}
	if _, ok := CatPerson.MinDigits(); ok {
		t.Error("PERSON should have no digit requirement")
	}
}

func TestCategoryClasses(t *testing.T) {
	for _, c := range []Category{CatSSN, CatEmail, CatPhone, CatCreditCard, CatIBAN, CatDate} {
		if !c.IsStructured() {
			t.Errorf("%s should be structured", c)
		}
	}
	if !CatOrg.IsSemiStructured() || !CatAddress.IsSemiStructured() {
		t.Error("ORG and ADDRESS should be semi-structured")
	}
	if CatPerson.IsStructured() || CatPerson.IsSemiStructured() {
		t.Error("PERSON should be freeform")
	}
}

func TestNewRegionIDUnique(t *testing.T) {
	a, b := NewRegionID(), NewRegionID()
	if a == b {
		t.Error("region ids should be unique")
	}
	if len(a) != 12 {
		t.Errorf("region id length = %d, want 12", len(a))
	}
}

func lineTexts(line []TextFragment) []string {
	out := make([]string, len(line))
	for i, f := range line {
		out[i] = f.Text
	}
	return out
}
