package fusion

import (
	"math"
	"testing"

	"github.com/tsawler/redacta/model"
	"github.com/tsawler/redacta/offsets"
)

func frag(x0, y0, x1, y1 float64, text string) model.TextFragment {
	return model.TextFragment{
		Text:       text,
		BBox:       model.BBox{X0: x0, Y0: y0, X1: x1, Y1: y1},
		Confidence: 1.0,
	}
}

func pageFor(frags ...model.TextFragment) (*model.PageText, *offsets.Index) {
	page := model.NewPageText(1, 612, 792, frags)
	return page, offsets.Build(frags, page.FullText)
}

func match(src model.Source, cat model.Category, start, end int, text string, conf float64) model.DetectionMatch {
	return model.DetectionMatch{
		Start: start, End: end, Text: text,
		Category: cat, Confidence: conf, Source: src,
	}
}

func newTestEngine() *Engine {
	return NewEngine(0.55, 0, 28, nil)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMergeStructuredRegexOutranksLLM(t *testing.T) {
	// "SSN 123-45-6789" on one line; both layers flag the number.
	page, ix := pageFor(
		frag(10, 100, 28, 110, "SSN"),
		frag(32, 100, 110, 110, "123-45-6789"),
	)

	e := newTestEngine()
	out := e.Merge([]model.DetectionMatch{
		match(model.SourceRegex, model.CatSSN, 4, 15, "123-45-6789", 0.8),
		match(model.SourceLLM, model.CatSSN, 4, 15, "123-45-6789", 0.7),
	}, page, ix)

	if len(out) != 1 {
		t.Fatalf("expected 1 region, got %d", len(out))
	}
	r := out[0]
	if r.Category != model.CatSSN || r.Source != model.SourceRegex {
		t.Errorf("pattern layer should win structured overlap, got %v from %v", r.Category, r.Source)
	}
	// Two agreeing layers lift the winner by 0.10.
	if !almostEqual(r.Confidence, 0.9) {
		t.Errorf("confidence = %v, want 0.9", r.Confidence)
	}
	if r.CharStart != 4 || r.CharEnd != 15 || r.Text != "123-45-6789" {
		t.Errorf("unexpected span: %+v", r)
	}
}

func TestMergeCrossLayerBoost(t *testing.T) {
	page, ix := pageFor(
		frag(10, 100, 28, 110, "Ref"),
		frag(32, 100, 60, 110, "2024"),
		frag(64, 100, 84, 110, "for"),
		frag(88, 100, 116, 110, "John"),
		frag(120, 100, 155, 110, "Smith"),
	)

	e := newTestEngine()
	out := e.Merge([]model.DetectionMatch{
		match(model.SourceNER, model.CatPerson, 13, 23, "John Smith", 0.6),
		match(model.SourceHeuristic, model.CatPerson, 13, 23, "John Smith", 0.5),
	}, page, ix)

	if len(out) != 1 {
		t.Fatalf("expected 1 region, got %d", len(out))
	}
	r := out[0]
	if r.Category != model.CatPerson || r.Source != model.SourceNER {
		t.Errorf("got %v from %v, want PERSON from NER", r.Category, r.Source)
	}
	if !almostEqual(r.Confidence, 0.7) {
		t.Errorf("confidence = %v, want boosted 0.7", r.Confidence)
	}
}

func TestMergeBoostsAgreeingSSNLayers(t *testing.T) {
	page, ix := pageFor(
		frag(10, 100, 28, 110, "SSN"),
		frag(32, 100, 110, 110, "123-45-6789"),
	)

	e := newTestEngine()
	out := e.Merge([]model.DetectionMatch{
		match(model.SourceRegex, model.CatSSN, 4, 15, "123-45-6789", 0.95),
		match(model.SourceNER, model.CatSSN, 4, 15, "123-45-6789", 0.70),
	}, page, ix)

	if len(out) != 1 {
		t.Fatalf("expected 1 region, got %d", len(out))
	}
	r := out[0]
	if r.Category != model.CatSSN || r.Source != model.SourceRegex {
		t.Errorf("got %v from %v, want SSN from the pattern layer", r.Category, r.Source)
	}
	if r.Confidence < 0.95 {
		t.Errorf("confidence = %v, want at least the pattern layer's 0.95", r.Confidence)
	}
	// 0.95 + 0.10 caps at 1.0.
	if r.Confidence != 1.0 {
		t.Errorf("confidence = %v, want capped 1.0", r.Confidence)
	}
	if r.CharStart != 4 || r.CharEnd != 15 {
		t.Errorf("span = [%d,%d), want [4,15)", r.CharStart, r.CharEnd)
	}
}

func TestMergeLinksMultiLineAddress(t *testing.T) {
	page, ix := pageFor(
		frag(10, 100, 28, 110, "42"),
		frag(32, 100, 58, 110, "rue"),
		frag(62, 100, 80, 110, "de"),
		frag(84, 100, 100, 110, "la"),
		frag(10, 115, 50, 125, "Paix,"),
		frag(54, 115, 95, 125, "Paris"),
		frag(10, 130, 55, 140, "75002"),
	)
	fullText := "42 rue de la\nPaix, Paris\n75002"
	if page.FullText != fullText {
		t.Fatalf("page text = %q", page.FullText)
	}

	e := newTestEngine()
	out := e.Merge([]model.DetectionMatch{
		match(model.SourceNER, model.CatAddress, 0, 30, fullText, 0.8),
	}, page, ix)

	if len(out) != 3 {
		t.Fatalf("expected one region per line, got %d", len(out))
	}
	group := out[0].LinkedGroup
	if group == "" {
		t.Fatal("multi-line siblings should carry a group id")
	}
	for _, r := range out {
		if r.LinkedGroup != group {
			t.Errorf("sibling group = %q, want shared %q", r.LinkedGroup, group)
		}
		if r.Text != fullText || r.Category != model.CatAddress {
			t.Errorf("sibling identity broken: %+v", r)
		}
		if r.Confidence != 0.8 || r.Source != model.SourceNER {
			t.Errorf("sibling provenance broken: conf=%v source=%v", r.Confidence, r.Source)
		}
	}

	wantSpans := [][2]int{{0, 12}, {13, 24}, {25, 30}}
	wantBoxes := []model.BBox{
		{X0: 10, Y0: 100, X1: 100, Y1: 110},
		{X0: 10, Y0: 115, X1: 95, Y1: 125},
		{X0: 10, Y0: 130, X1: 55, Y1: 140},
	}
	for i, r := range out {
		if r.CharStart != wantSpans[i][0] || r.CharEnd != wantSpans[i][1] {
			t.Errorf("line %d span = [%d,%d), want %v", i, r.CharStart, r.CharEnd, wantSpans[i])
		}
		if r.BBox != wantBoxes[i] {
			t.Errorf("line %d bbox = %+v, want %+v", i, r.BBox, wantBoxes[i])
		}
	}
}

func TestMergeChunksLinesPastCap(t *testing.T) {
	// Five address lines against the four-line cap: the first four link
	// into one group, the leftover line stands alone.
	page, ix := pageFor(
		frag(10, 100, 50, 110, "Legal"),
		frag(54, 100, 88, 110, "Dept"),
		frag(10, 115, 50, 125, "Suite"),
		frag(54, 115, 62, 125, "9"),
		frag(10, 130, 46, 140, "Acme"),
		frag(50, 130, 84, 140, "Corp"),
		frag(10, 145, 60, 155, "Harbor"),
		frag(64, 145, 100, 155, "Road"),
		frag(10, 160, 54, 170, "Dover"),
	)
	fullText := "Legal Dept\nSuite 9\nAcme Corp\nHarbor Road\nDover"
	if page.FullText != fullText {
		t.Fatalf("page text = %q", page.FullText)
	}

	e := newTestEngine()
	out := e.Merge([]model.DetectionMatch{
		match(model.SourceNER, model.CatAddress, 0, 46, fullText, 0.8),
	}, page, ix)

	if len(out) != 5 {
		t.Fatalf("expected 5 regions, got %d", len(out))
	}
	group := out[0].LinkedGroup
	if group == "" {
		t.Fatal("first chunk should carry a group id")
	}
	for i, r := range out[:4] {
		if r.LinkedGroup != group {
			t.Errorf("line %d group = %q, want shared %q", i, r.LinkedGroup, group)
		}
	}
	if out[4].LinkedGroup != "" {
		t.Errorf("single-line leftover chunk should be ungrouped, got %q", out[4].LinkedGroup)
	}
	for _, r := range out {
		if r.Text != fullText || r.Category != model.CatAddress ||
			r.Confidence != 0.8 || r.Source != model.SourceNER {
			t.Errorf("chunked region identity broken: %+v", r)
		}
	}
}

func TestMergeDropsBelowThreshold(t *testing.T) {
	page, ix := pageFor(
		frag(10, 100, 28, 110, "Ref"),
		frag(32, 100, 60, 110, "2024"),
		frag(64, 100, 84, 110, "for"),
		frag(88, 100, 116, 110, "John"),
		frag(120, 100, 155, 110, "Smith"),
	)

	e := newTestEngine()
	out := e.Merge([]model.DetectionMatch{
		match(model.SourceHeuristic, model.CatPerson, 13, 23, "John Smith", 0.5),
	}, page, ix)

	if len(out) != 0 {
		t.Fatalf("sub-threshold match should produce no region, got %d", len(out))
	}
}

func TestMergeDropsOrgNoise(t *testing.T) {
	page, ix := pageFor(
		frag(10, 100, 70, 110, "Revenue"),
		frag(74, 100, 90, 110, "of"),
		frag(94, 100, 118, 110, "the"),
		frag(122, 100, 165, 110, "Group"),
	)

	e := newTestEngine()
	out := e.Merge([]model.DetectionMatch{
		match(model.SourceNER, model.CatOrg, 8, 14, "of the", 0.9),
	}, page, ix)

	if len(out) != 0 {
		t.Fatalf("vocabulary ORG should be filtered, got %d regions", len(out))
	}
}

func TestMergeDropsHeaderPerson(t *testing.T) {
	page, ix := pageFor(
		frag(10, 40, 70, 50, "Annual"),
		frag(74, 40, 130, 50, "Report"),
		frag(134, 40, 170, 50, "2024"),
	)

	e := newTestEngine()
	out := e.Merge([]model.DetectionMatch{
		match(model.SourceNER, model.CatPerson, 0, 13, "Annual Report", 0.9),
	}, page, ix)

	if len(out) != 0 {
		t.Fatalf("page-header PERSON should be filtered, got %d regions", len(out))
	}
}

func TestMergeJoinsAdjacentAddressAndLocation(t *testing.T) {
	page, ix := pageFor(
		frag(10, 100, 28, 110, "123"),
		frag(32, 100, 60, 110, "Main"),
		frag(64, 100, 76, 110, "St"),
		frag(80, 100, 150, 110, "Springfield"),
	)

	e := newTestEngine()
	out := e.Merge([]model.DetectionMatch{
		match(model.SourceRegex, model.CatAddress, 0, 11, "123 Main St", 0.8),
		match(model.SourceNER, model.CatLocation, 12, 23, "Springfield", 0.7),
	}, page, ix)

	if len(out) != 1 {
		t.Fatalf("expected 1 joined region, got %d", len(out))
	}
	r := out[0]
	if r.Category != model.CatAddress {
		t.Errorf("joined region should be ADDRESS, got %v", r.Category)
	}
	if r.Text != "123 Main St Springfield" {
		t.Errorf("joined text = %q", r.Text)
	}
	if r.CharStart != 0 || r.CharEnd != 23 {
		t.Errorf("joined span = [%d,%d), want [0,23)", r.CharStart, r.CharEnd)
	}
	if r.Confidence != 0.8 {
		t.Errorf("joined confidence = %v, want max of the pair", r.Confidence)
	}
}

func TestMergeRejectsSpacedAmountAsSSN(t *testing.T) {
	page, ix := pageFor(
		frag(10, 100, 28, 110, "12"),
		frag(32, 100, 60, 110, "345"),
		frag(64, 100, 92, 110, "678"),
	)

	e := newTestEngine()
	out := e.Merge([]model.DetectionMatch{
		match(model.SourceRegex, model.CatSSN, 0, 10, "12 345 678", 0.95),
	}, page, ix)

	if len(out) != 0 {
		t.Fatalf("formatted amount should not survive as SSN, got %d regions", len(out))
	}
}

func TestMergeGatesUnderdigitedNERPhone(t *testing.T) {
	page, ix := pageFor(frag(10, 100, 60, 110, "555-12"))

	e := newTestEngine()
	out := e.Merge([]model.DetectionMatch{
		match(model.SourceNER, model.CatPhone, 0, 6, "555-12", 0.9),
	}, page, ix)

	if len(out) != 0 {
		t.Fatalf("five-digit phone should be gated, got %d regions", len(out))
	}
}

func TestGLiNERGateRejectsCurrency(t *testing.T) {
	e := newTestEngine()

	m := match(model.SourceGLiNER, model.CatSSN, 0, 12, "1.234.567,89", 0.8)
	if !e.glinerGateRejects(m) {
		t.Error("decimal amount with thousands separators should be gated")
	}
	m = match(model.SourceGLiNER, model.CatPhone, 0, 8, "123.4567", 0.8)
	if e.glinerGateRejects(m) {
		t.Error("dotted seven-digit phone should pass the gate")
	}
}

func TestSweepExtendsSpanOverLoser(t *testing.T) {
	fullText := "abcdefghij"
	cands := []*candidate{
		{start: 0, end: 5, text: "abcde", cat: model.CatEmail, conf: 0.9, source: model.SourceRegex, priority: 3},
		{start: 3, end: 10, text: "defghij", cat: model.CatEmail, conf: 0.9, source: model.SourceLLM, priority: 1},
	}

	out := sweepOverlaps(cands, fullText)
	if len(out) != 1 {
		t.Fatalf("expected 1 merged candidate, got %d", len(out))
	}
	c := out[0]
	if c.source != model.SourceRegex {
		t.Errorf("higher priority should win, got %v", c.source)
	}
	if c.start != 0 || c.end != 10 || c.text != "abcdefghij" {
		t.Errorf("winner should absorb the loser's span and re-slice: %+v", c)
	}
}

func TestBoostThreeLayers(t *testing.T) {
	cands := []*candidate{
		{start: 0, end: 10, conf: 0.5, source: model.SourceRegex},
		{start: 0, end: 10, conf: 0.5, source: model.SourceNER},
		{start: 2, end: 10, conf: 0.5, source: model.SourceGLiNER},
	}

	boostAgreement(cands)
	if !almostEqual(cands[0].conf, 0.65) {
		t.Errorf("first candidate conf = %v, want 0.65 with three agreeing layers", cands[0].conf)
	}
}

func TestLineCharRanges(t *testing.T) {
	got := lineCharRanges("John\nSmith", 13, 23, 2)
	want := [][2]int{{13, 17}, {18, 23}}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ranges = %v, want %v", got, want)
	}

	// Line structure and box count disagree: every range covers the span.
	got = lineCharRanges("John Smith", 13, 23, 2)
	if len(got) != 2 || got[0] != [2]int{13, 23} || got[1] != [2]int{13, 23} {
		t.Errorf("mismatched ranges = %v", got)
	}
}

func TestSuppressContainedOrgs(t *testing.T) {
	linked := func(cs, ce int) model.PIIRegion {
		return model.PIIRegion{
			ID: model.NewRegionID(), Category: model.CatAddress,
			CharStart: cs, CharEnd: ce, LinkedGroup: "g1",
		}
	}
	standalone := func(cat model.Category, cs, ce int) model.PIIRegion {
		return model.PIIRegion{
			ID: model.NewRegionID(), Category: cat,
			CharStart: cs, CharEnd: ce,
		}
	}

	out := suppressContainedOrgs([]model.PIIRegion{
		linked(0, 10),
		linked(11, 20),
		standalone(model.CatOrg, 2, 8),
		standalone(model.CatPerson, 3, 9),
	})

	if len(out) != 3 {
		t.Fatalf("expected contained ORG suppressed, got %d regions", len(out))
	}
	for _, r := range out {
		if r.Category == model.CatOrg && r.LinkedGroup == "" {
			t.Errorf("standalone ORG inside linked span survived: %+v", r)
		}
	}
}
