package layout

import (
	"strings"
	"testing"

	"github.com/tsawler/redacta/model"
	"github.com/tsawler/redacta/offsets"
)

func frag(x0, y0, x1, y1 float64, text string) model.TextFragment {
	return model.TextFragment{
		Text:       text,
		BBox:       model.NewBBox(x0, y0, x1, y1),
		Confidence: 1.0,
	}
}

// twoColumnPage lays out two left-aligned columns with two lines each
// plus a full-width title.
func twoColumnPage() []model.TextFragment {
	return []model.TextFragment{
		frag(50, 40, 550, 54, "Quarterly Financial Report"),
		frag(10, 100, 80, 112, "Name:"),
		frag(85, 100, 200, 112, "John"),
		frag(320, 100, 390, 112, "Phone:"),
		frag(395, 100, 500, 112, "555-0199"),
		frag(10, 130, 80, 142, "Addr:"),
		frag(85, 130, 200, 142, "Main"),
		frag(320, 130, 390, 142, "Email:"),
		frag(395, 130, 500, 142, "j@x.com"),
	}
}

func indexFor(frags []model.TextFragment) (*offsets.Index, string) {
	fullText := model.BuildFullText(frags)
	return offsets.Build(frags, fullText), fullText
}

func TestDetectBandsTwoColumns(t *testing.T) {
	ix, _ := indexFor(twoColumnPage())

	bands := DetectBands(ix.Entries(), 612)
	if len(bands) != 2 {
		t.Fatalf("expected 2 bands, got %d", len(bands))
	}
	if bands[0].Left >= bands[0].Right || bands[0].Right >= bands[1].Right {
		t.Errorf("bands not ordered: %+v", bands)
	}

	total := 0
	for _, b := range bands {
		total += len(b.Entries)
	}
	if total != len(ix.Entries()) {
		t.Errorf("entries assigned = %d, want %d", total, len(ix.Entries()))
	}
}

func TestDetectBandsSingleColumn(t *testing.T) {
	frags := []model.TextFragment{
		frag(10, 100, 60, 112, "John"),
		frag(65, 100, 120, 112, "Smith"),
		frag(10, 130, 90, 142, "Montreal"),
	}
	ix, _ := indexFor(frags)

	bands := DetectBands(ix.Entries(), 612)
	if len(bands) != 1 {
		t.Fatalf("expected 1 band, got %d", len(bands))
	}
	if len(bands[0].Entries) != 3 {
		t.Errorf("band holds %d entries, want 3", len(bands[0].Entries))
	}
}

func TestDetectBandsOneWideGapIsNotAColumn(t *testing.T) {
	// A single line with one wide gap: one vote is below the minimum,
	// so no gutter is confirmed.
	frags := []model.TextFragment{
		frag(10, 100, 60, 112, "total"),
		frag(400, 100, 460, 112, "42.00"),
		frag(10, 130, 200, 142, "continued"),
	}
	ix, _ := indexFor(frags)

	bands := DetectBands(ix.Entries(), 612)
	if len(bands) != 1 {
		t.Errorf("single vote produced %d bands, want 1", len(bands))
	}
}

func TestBuildJoinsTightLinesWithinColumn(t *testing.T) {
	// Two lines whose vertical gap produces a newline in the full text
	// but a space join in the detection text.
	frags := []model.TextFragment{
		frag(10, 100, 50, 112, "Acme"),
		frag(10, 122, 110, 134, "International"),
		frag(10, 300, 60, 312, "Footer"),
	}
	ix, fullText := indexFor(frags)

	if !strings.Contains(fullText, "Acme\nInternational") {
		t.Fatalf("full text should keep the line break: %q", fullText)
	}

	dt := Build(ix, fullText, 612)
	if !strings.Contains(dt.Text, "Acme International") {
		t.Errorf("detection text should join tight lines: %q", dt.Text)
	}
	if !strings.Contains(dt.Text, "\nFooter") {
		t.Errorf("paragraph break lost: %q", dt.Text)
	}
	if len(dt.ToFull) != len(dt.Text) {
		t.Fatalf("offset map length %d != text length %d", len(dt.ToFull), len(dt.Text))
	}
}

func TestBuildMapRoundTrip(t *testing.T) {
	frags := []model.TextFragment{
		frag(10, 100, 50, 112, "Acme"),
		frag(10, 122, 110, 134, "International"),
	}
	ix, fullText := indexFor(frags)
	dt := Build(ix, fullText, 612)

	idx := strings.Index(dt.Text, "Acme International")
	if idx < 0 {
		t.Fatalf("joined phrase missing from %q", dt.Text)
	}
	ftStart, ftEnd, text, ok := dt.Translate(idx, idx+len("Acme International"), fullText)
	if !ok {
		t.Fatal("translate failed")
	}
	if text != "Acme International" {
		t.Errorf("translated text = %q", text)
	}
	if fullText[ftStart:ftEnd] != "Acme\nInternational" {
		t.Errorf("full-text span = %q", fullText[ftStart:ftEnd])
	}
}

func TestTranslateSeparatorOnlySpan(t *testing.T) {
	frags := []model.TextFragment{
		frag(10, 100, 50, 112, "John"),
		frag(55, 100, 100, 112, "Smith"),
	}
	ix, fullText := indexFor(frags)
	dt := Build(ix, fullText, 612)

	// Position 4 is the inserted space between the words.
	if _, _, _, ok := dt.Translate(4, 5, fullText); ok {
		t.Error("separator-only span should not translate")
	}
}

func TestBuildEmptyPagePassesTextThrough(t *testing.T) {
	ix := offsets.Build(nil, "")
	dt := Build(ix, "", 612)
	if dt.Text != "" || len(dt.ToFull) != 0 {
		t.Errorf("empty page: %+v", dt)
	}
}

func TestBuildColumnBoundaryIsNewline(t *testing.T) {
	ix, fullText := indexFor(twoColumnPage())
	dt := Build(ix, fullText, 612)

	// Content of the two columns must not be joined by a space across
	// the gutter.
	if strings.Contains(dt.Text, "John Phone:") {
		t.Errorf("columns merged across gutter: %q", dt.Text)
	}
	if !strings.Contains(dt.Text, "\n") {
		t.Errorf("expected column separator newline: %q", dt.Text)
	}
}
