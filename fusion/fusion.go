// Package fusion combines the matches of all detection layers into
// unified PIIRegions: cross-layer confidence boosting, priority-based
// overlap merging, noise filtering, adjacent-address joining,
// conversion to per-line rectangles, and shape enforcement.
package fusion

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/tsawler/redacta/model"
	"github.com/tsawler/redacta/offsets"
	"github.com/tsawler/redacta/shape"
	"github.com/tsawler/redacta/textutil"
)

// Engine merges per-page detection matches into regions.
type Engine struct {
	// Threshold is the minimum confidence a merged candidate needs
	// to become a region.
	Threshold float64

	// MaxFontSizePt drops line boxes at least this tall (headings).
	// Zero disables the filter.
	MaxFontSizePt float64

	Enforcer *shape.Enforcer
	Logger   *slog.Logger
}

// NewEngine returns an Engine wired to a shape enforcer sharing the
// same threshold and fuzziness.
func NewEngine(threshold, fuzziness, maxFontSizePt float64, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		Threshold:     threshold,
		MaxFontSizePt: maxFontSizePt,
		Enforcer:      shape.NewEnforcer(threshold, fuzziness, logger),
		Logger:        logger,
	}
}

// Merge priorities. Pattern layers are authoritative for rigidly
// formatted categories; language-model layers are authoritative for
// freeform ones.
var structuredPriorityCats = map[model.Category]bool{
	model.CatSSN: true, model.CatEmail: true, model.CatPhone: true,
	model.CatCreditCard: true, model.CatIBAN: true,
	model.CatIPAddress: true, model.CatDate: true,
}

var semiStructuredPriorityCats = map[model.Category]bool{
	model.CatOrg: true, model.CatAddress: true,
}

// Cross-layer agreement boosts.
const (
	boostTwoLayers   = 0.10
	boostThreeLayers = 0.15
)

// Digit-bearing categories checked by the post-merge filter. Narrower
// than the full tuning table: card and IBAN matches already passed
// checksum validation upstream.
var mergeDigitCats = []model.Category{
	model.CatPhone, model.CatSSN, model.CatDriverLicense,
}

type candidate struct {
	start, end int
	text       string
	cat        model.Category
	conf       float64
	source     model.Source
	priority   int
}

// Merge runs the full fusion pipeline for one page. Match offsets
// must be in full-text coordinates.
func (e *Engine) Merge(matches []model.DetectionMatch, page *model.PageText, ix *offsets.Index) []model.PIIRegion {
	candidates := e.collect(matches)
	boostAgreement(candidates)
	merged := sweepOverlaps(candidates, page.FullText)
	merged = e.filterNoise(merged, page.Number)
	merged = mergeAdjacentAddresses(merged, page.FullText)
	regions := e.toRegions(merged, page, ix)
	regions = suppressContainedOrgs(regions)
	regions = e.Enforcer.Enforce(regions, page, ix)
	regions = shape.ResolveOverlaps(regions)
	return e.safetyNet(regions, page.Number)
}

// collect converts matches to prioritized candidates, applying the
// per-source sanity gates.
func (e *Engine) collect(matches []model.DetectionMatch) []*candidate {
	out := make([]*candidate, 0, len(matches))
	for _, m := range matches {
		var prio int
		switch m.Source {
		case model.SourceRegex:
			switch {
			case structuredPriorityCats[m.Category]:
				prio = 3
			case semiStructuredPriorityCats[m.Category]:
				prio = 2
			default:
				prio = 1
			}
		case model.SourceNER:
			if e.nerGateRejects(m) {
				continue
			}
			prio = 2
		case model.SourceGLiNER:
			if e.glinerGateRejects(m) {
				continue
			}
			prio = 2
		case model.SourceLLM:
			if structuredPriorityCats[m.Category] {
				prio = 1
			} else {
				prio = 3
			}
		default:
			prio = 2
		}
		out = append(out, &candidate{
			start: m.Start, end: m.End, text: m.Text,
			cat: m.Category, conf: m.Confidence, source: m.Source,
			priority: prio,
		})
	}
	return out
}

// nerGateRejects drops NER matches that structural layers know to be
// impossible: too few digits, decimal points in identifiers, phone
// formatting in passports.
func (e *Engine) nerGateRejects(m model.DetectionMatch) bool {
	switch m.Category {
	case model.CatPhone, model.CatSSN, model.CatDriverLicense:
		minD, _ := m.Category.MinDigits()
		if countDigits(m.Text) < minD {
			e.Logger.Debug("dropping underdigited match",
				"source", m.Source, "category", m.Category, "text", m.Text)
			return true
		}
		if m.Category != model.CatDriverLicense &&
			(strings.Contains(m.Text, ".") || strings.Contains(m.Text, "_")) {
			return true
		}
	case model.CatPassport:
		if strings.ContainsAny(m.Text, "-()") {
			return true
		}
	}
	return false
}

// glinerGateRejects mirrors nerGateRejects for the GLiNER layer,
// which additionally mistakes currency amounts for identifiers.
func (e *Engine) glinerGateRejects(m model.DetectionMatch) bool {
	switch m.Category {
	case model.CatPhone, model.CatSSN, model.CatDriverLicense:
		digits := countDigits(m.Text)
		if strings.Contains(m.Text, ".") && digits > 0 {
			nonDigit := len(strings.TrimSpace(m.Text)) - digits
			if strings.Contains(m.Text, ",") || nonDigit > 2 {
				e.Logger.Debug("dropping currency-like match",
					"category", m.Category, "text", m.Text)
				return true
			}
		}
		minD, _ := m.Category.MinDigits()
		if digits < minD {
			return true
		}
	}
	return false
}

// boostAgreement raises confidence when independent layers flag
// overlapping spans: +0.10 for two layers, +0.15 for three or more,
// capped at 1.0. Agreement means at least half of the shorter span is
// shared.
func boostAgreement(candidates []*candidate) {
	order := make([]int, len(candidates))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return candidates[order[a]].start < candidates[order[b]].start
	})

	// The scan looks forward only: of two candidates covering the same
	// span, only the earlier-sorted one sees the other and takes the
	// boost. The later one keeps its raw confidence.
	for oi, i := range order {
		c := candidates[i]
		sources := map[model.Source]bool{c.source: true}
		for _, j := range order[oi+1:] {
			other := candidates[j]
			if other.start >= c.end {
				break
			}
			os := maxInt(c.start, other.start)
			oe := minIntF(c.end, other.end)
			if oe <= os {
				continue
			}
			cLen, otherLen := c.end-c.start, other.end-other.start
			if cLen <= 0 || otherLen <= 0 {
				continue
			}
			shorter := minIntF(cLen, otherLen)
			if float64(oe-os)/float64(shorter) >= 0.5 {
				sources[other.source] = true
			}
		}
		switch {
		case len(sources) >= 3:
			c.conf = capConf(c.conf + boostThreeLayers)
		case len(sources) == 2:
			c.conf = capConf(c.conf + boostTwoLayers)
		}
	}
}

// sweepOverlaps merges overlapping candidates left to right. The
// higher-priority candidate wins an overlap; at equal priority the
// higher confidence wins. The winner's span extends over the loser
// and its text is re-sliced from the page.
func sweepOverlaps(candidates []*candidate, fullText string) []*candidate {
	sorted := make([]*candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].start != sorted[j].start {
			return sorted[i].start < sorted[j].start
		}
		return sorted[i].priority > sorted[j].priority
	})

	var merged []*candidate
	for _, cand := range sorted {
		if len(merged) == 0 {
			merged = append(merged, cand)
			continue
		}
		last := merged[len(merged)-1]
		if cand.start >= last.end {
			merged = append(merged, cand)
			continue
		}
		if cand.priority > last.priority ||
			(cand.priority == last.priority && cand.conf > last.conf) {
			merged[len(merged)-1] = cand
			last = cand
		}
		if cand.end > last.end {
			last.end = cand.end
			if last.start >= 0 && last.end <= len(fullText) {
				last.text = fullText[last.start:last.end]
			}
		}
	}
	return merged
}

// filterNoise applies the per-category noise predicates plus the
// page-header PERSON filter and the structured digit filter.
func (e *Engine) filterNoise(merged []*candidate, pageNum int) []*candidate {
	kept := merged[:0]
	var orgDrop, locDrop, perDrop, addrDrop, structDrop int
	for _, c := range merged {
		switch {
		case c.cat == model.CatOrg && OrgNoise(c.text):
			orgDrop++
		case c.cat == model.CatLocation && LocNoise(c.text):
			locDrop++
		case c.cat == model.CatPerson && PersonNoise(c.text):
			perDrop++
		case c.cat == model.CatPerson && isHeaderPerson(c):
			perDrop++
		case c.cat == model.CatAddress && AddressNumberOnly(c.text):
			addrDrop++
		case !validStructured(c.cat, c.text):
			structDrop++
		default:
			kept = append(kept, c)
		}
	}
	if n := orgDrop + locDrop + perDrop + addrDrop + structDrop; n > 0 {
		e.Logger.Info("noise filters dropped candidates",
			"page", pageNum, "org", orgDrop, "location", locDrop,
			"person", perDrop, "address", addrDrop, "structured", structDrop)
	}
	return kept
}

// isHeaderPerson flags name-layer PERSON matches sitting at the very
// top of the page text: multi-word spans there are page headers, not
// people.
func isHeaderPerson(c *candidate) bool {
	switch c.source {
	case model.SourceNER, model.SourceGLiNER, model.SourceHeuristic:
	default:
		return false
	}
	return c.start <= 5 && len(strings.Fields(c.text)) >= 2
}

var spacedTripletRe = regexp.MustCompile(`^\d{1,2}\s+\d{3}\s+\d{3}$`)

// validStructured rejects digit-bearing matches that cannot be the
// identifier they claim to be.
func validStructured(cat model.Category, text string) bool {
	checked := false
	for _, c := range mergeDigitCats {
		if cat == c {
			checked = true
			break
		}
	}
	if !checked {
		return true
	}
	minD, _ := cat.MinDigits()
	if countDigits(text) < minD {
		return false
	}
	if cat == model.CatSSN {
		for _, r := range text {
			if model.CurrencyRunes[r] {
				return false
			}
		}
		// "1 234 567" is a formatted amount, not an SSN.
		if spacedTripletRe.MatchString(strings.TrimSpace(text)) {
			return false
		}
	}
	if (cat == model.CatSSN || cat == model.CatPhone) && strings.Contains(text, "\n") {
		return false
	}
	return true
}

// mergeAdjacentAddresses joins an ADDRESS with a following ADDRESS or
// LOCATION (or LOCATION then ADDRESS) when they sit within 60
// characters and at most 3 line breaks of each other. City and postal
// lines are usually detected separately from the street line.
func mergeAdjacentAddresses(merged []*candidate, fullText string) []*candidate {
	var out []*candidate
	for _, c := range merged {
		if len(out) > 0 {
			prev := out[len(out)-1]
			joinable := (prev.cat == model.CatAddress &&
				(c.cat == model.CatAddress || c.cat == model.CatLocation)) ||
				(prev.cat == model.CatLocation && c.cat == model.CatAddress)
			if joinable {
				gap := c.start - prev.end
				if gap >= 0 && gap <= 60 && c.end <= len(fullText) {
					combined := fullText[prev.start:c.end]
					if strings.Count(combined, "\n") <= 3 {
						prev.end = c.end
						prev.text = combined
						prev.cat = model.CatAddress
						if c.conf > prev.conf {
							prev.conf = c.conf
						}
						continue
					}
				}
			}
		}
		out = append(out, c)
	}
	return out
}

// toRegions converts surviving candidates to PIIRegions with one
// rectangle per visual line, linking multi-line detections into
// groups and chunking past the per-category line cap.
func (e *Engine) toRegions(merged []*candidate, page *model.PageText, ix *offsets.Index) []model.PIIRegion {
	var regions []model.PIIRegion
	largeFontSkipped := 0

	for _, c := range merged {
		if c.conf < e.Threshold {
			continue
		}
		if c.cat == model.CatCustom {
			continue
		}

		lineBoxes := ix.LineBBoxesFor(c.start, c.end)
		if len(lineBoxes) == 0 {
			bbox, ok := ix.BBoxFor(c.start, c.end)
			if !ok {
				continue
			}
			lineBoxes = []model.BBox{bbox}
		}

		if e.MaxFontSizePt > 0 {
			filtered := lineBoxes[:0]
			for _, b := range lineBoxes {
				if b.Height() < e.MaxFontSizePt {
					filtered = append(filtered, b)
				}
			}
			lineBoxes = filtered
			if len(lineBoxes) == 0 {
				largeFontSkipped++
				continue
			}
		}

		matchText := sliceText(page.FullText, c.start, c.end)

		// A multi-line address whose first line has no letters is a
		// table row leaking into the street-number position.
		if len(lineBoxes) > 1 && c.cat == model.CatAddress {
			firstLine := strings.TrimSpace(strings.SplitN(matchText, "\n", 2)[0])
			if firstLine != "" && !addrAlphaRe.MatchString(firstLine) {
				continue
			}
		}

		maxLines := c.cat.MaxLines()

		switch {
		case len(lineBoxes) == 1:
			regions = append(regions, e.region(c, page.Number, lineBoxes[0], c.text, c.start, c.end, ""))

		case len(lineBoxes) <= maxLines:
			groupID := model.NewGroupID()
			ranges := lineCharRanges(matchText, c.start, c.end, len(lineBoxes))
			for i, lb := range lineBoxes {
				regions = append(regions, e.region(c, page.Number, lb, c.text, ranges[i][0], ranges[i][1], groupID))
			}

		default:
			ranges := lineCharRanges(matchText, c.start, c.end, len(lineBoxes))
			for i := 0; i < len(lineBoxes); i += maxLines {
				hi := minIntF(i+maxLines, len(lineBoxes))
				groupID := ""
				if hi-i > 1 {
					groupID = model.NewGroupID()
				}
				for k := i; k < hi; k++ {
					regions = append(regions, e.region(c, page.Number, lineBoxes[k], c.text, ranges[k][0], ranges[k][1], groupID))
				}
			}
		}
	}

	if largeFontSkipped > 0 {
		e.Logger.Info("filtered large-font candidates",
			"page", page.Number, "count", largeFontSkipped,
			"max_height_pt", e.MaxFontSizePt)
	}
	return regions
}

func (e *Engine) region(c *candidate, pageNum int, bbox model.BBox, text string, cs, ce int, group string) model.PIIRegion {
	return model.PIIRegion{
		ID:          model.NewRegionID(),
		Page:        pageNum,
		BBox:        bbox,
		Text:        text,
		Category:    c.cat,
		Confidence:  c.conf,
		Source:      c.source,
		CharStart:   cs,
		CharEnd:     ce,
		Action:      model.ActionPending,
		LinkedGroup: group,
	}
}

// lineCharRanges splits a match's span into one character range per
// line box. When line structure and box count disagree every range
// covers the whole span.
func lineCharRanges(matchText string, start, end, boxes int) [][2]int {
	parts := strings.Split(matchText, "\n")
	ranges := make([][2]int, 0, boxes)
	if len(parts) == boxes {
		pos := start
		for _, p := range parts {
			ranges = append(ranges, [2]int{pos, pos + len(p)})
			pos += len(p) + 1
		}
		return ranges
	}
	for i := 0; i < boxes; i++ {
		ranges = append(ranges, [2]int{start, end})
	}
	return ranges
}

// suppressContainedOrgs drops standalone ORG regions whose span falls
// entirely inside a linked group's span; the group already covers the
// text.
func suppressContainedOrgs(regions []model.PIIRegion) []model.PIIRegion {
	var intervals [][2]int
	for _, r := range regions {
		if r.LinkedGroup != "" {
			intervals = append(intervals, [2]int{r.CharStart, r.CharEnd})
		}
	}
	if len(intervals) == 0 {
		return regions
	}
	kept := regions[:0]
	for _, r := range regions {
		if r.LinkedGroup == "" && r.Category == model.CatOrg {
			contained := false
			for _, iv := range intervals {
				if r.CharStart >= iv[0] && r.CharEnd <= iv[1] {
					contained = true
					break
				}
			}
			if contained {
				continue
			}
		}
		kept = append(kept, r)
	}
	return kept
}

// safetyNet re-runs the noise predicates on final regions. Shape
// enforcement can re-slice text, so a region that passed the merge
// filters may be noise now.
func (e *Engine) safetyNet(regions []model.PIIRegion, pageNum int) []model.PIIRegion {
	kept := regions[:0]
	dropped := 0
	for _, r := range regions {
		if regionNoise(r) {
			dropped++
			continue
		}
		kept = append(kept, r)
	}
	if dropped > 0 {
		e.Logger.Info("final safety net dropped regions",
			"page", pageNum, "count", dropped)
	}
	return kept
}

func regionNoise(r model.PIIRegion) bool {
	trimmed := strings.TrimSpace(r.Text)
	switch r.Category {
	case model.CatOrg:
		if len(trimmed) <= 2 || isDigits(trimmed) || OrgNoise(r.Text) {
			return true
		}
	case model.CatLocation:
		if LocNoise(r.Text) {
			return true
		}
	case model.CatPerson:
		if PersonNoise(r.Text) {
			return true
		}
	case model.CatAddress:
		if AddressNumberOnly(r.Text) {
			return true
		}
	}
	return !validStructured(r.Category, r.Text)
}

func sliceText(fullText string, start, end int) string {
	if start < 0 || end > len(fullText) || start >= end {
		return ""
	}
	return fullText[start:end]
}

func countDigits(s string) int { return textutil.CountDigits(s) }

func capConf(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minIntF(a, b int) int {
	if a < b {
		return a
	}
	return b
}
