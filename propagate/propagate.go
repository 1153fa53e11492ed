// Package propagate flags every occurrence of detected PII across all
// pages, not just the page where a detector first found it. Detected
// texts become search templates; additional occurrences inherit the
// template's category, confidence (scaled down), and review action.
//
// Matching is accent-agnostic, case-insensitive, and whitespace
// flexible, so "Société Générale" detected on page one also flags
// "SOCIETE GENERALE" split across a line break on page nine.
package propagate

import (
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/tsawler/redacta/fusion"
	"github.com/tsawler/redacta/model"
	"github.com/tsawler/redacta/offsets"
	"github.com/tsawler/redacta/shape"
	"github.com/tsawler/redacta/textutil"
)

// Propagation defaults.
const (
	// DefaultOverlapRatio suppresses a found occurrence when an
	// existing region already covers at least this share of it.
	DefaultOverlapRatio = 0.5

	// DefaultConfFactor scales template confidence for regions created
	// by propagation: a text match is weaker evidence than a detector
	// hit.
	DefaultConfFactor = 0.85

	minBBoxDimensionPt = 1.0
)

// Propagator creates regions for repeat occurrences of detected PII.
type Propagator struct {
	OverlapRatio float64
	ConfFactor   float64
	Logger       *slog.Logger
}

func NewPropagator(logger *slog.Logger) *Propagator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Propagator{
		OverlapRatio: DefaultOverlapRatio,
		ConfFactor:   DefaultConfFactor,
		Logger:       logger,
	}
}

// Propagate searches every page for repeat occurrences of each
// detected text and returns the input regions plus the new ones, with
// per-page overlap resolution and bounds clamping applied to the
// combined set.
func (p *Propagator) Propagate(regions []model.PIIRegion, pages []*model.PageText) []model.PIIRegion {
	if len(regions) == 0 || len(pages) == 0 {
		return regions
	}

	pageMap := make(map[int]*model.PageText, len(pages))
	for _, pg := range pages {
		pageMap[pg.Number] = pg
	}

	// Best template per normalized text, in first-seen order.
	templates := make(map[string]model.PIIRegion)
	var order []string
	for _, r := range regions {
		key, ok := p.templateKey(r)
		if !ok {
			continue
		}
		norm := textutil.NormalizeKey(key)
		if norm == "" {
			continue
		}
		existing, seen := templates[norm]
		if !seen {
			order = append(order, norm)
		}
		if !seen || r.Confidence > existing.Confidence {
			templates[norm] = r
		}
	}
	if len(templates) == 0 {
		p.Logger.Debug("no propagatable texts")
		return regions
	}

	intervals := intervalsByPage(regions)
	norms := make(map[int]*normPage)
	indexes := make(map[int]*offsets.Index)

	var propagated []model.PIIRegion
	for _, norm := range order {
		tpl := templates[norm]
		pat, err := buildFlexPattern(norm)
		if err != nil {
			continue
		}
		for _, pg := range pages {
			if pg.FullText == "" {
				continue
			}
			iv := pageIntervalsFor(intervals, pg.Number)
			np := norms[pg.Number]
			if np == nil {
				np = normalizePage(pg.FullText)
				norms[pg.Number] = np
			}

			for _, loc := range pat.FindAllStringIndex(np.text, -1) {
				if !boundedMatch(np.text, loc[0], loc[1]) {
					continue
				}
				cs, ce := np.toOrig[loc[0]], np.toOrig[loc[1]]
				if iv.hasOverlap(cs, ce, p.OverlapRatio) {
					continue
				}
				propagated = append(propagated,
					p.regionsAt(tpl.Category, tpl.Confidence, tpl, pg, cs, ce, indexes)...)
				iv.add(cs, ce)
			}
		}
	}

	if len(propagated) > 0 {
		p.Logger.Info("propagated regions across pages",
			"added", len(propagated), "pages", len(pages), "texts", len(templates))
	}

	all := append(append([]model.PIIRegion(nil), regions...), propagated...)
	return p.finalize(all, pageMap)
}

// templateKey validates a region as a propagation source and returns
// the text to search for. Noise that slipped through fusion must not
// multiply across pages, so the noise predicates run again here.
func (p *Propagator) templateKey(r model.PIIRegion) (string, bool) {
	key := strings.TrimSpace(r.Text)
	if len(key) < 2 {
		return "", false
	}
	switch r.Category {
	case model.CatOrg:
		if len(key) <= 2 || textutil.IsDigitsOnly(key) {
			return "", false
		}
		if startsWithDigit(key) && !fusion.HasLegalSuffix(key) {
			return "", false
		}
	case model.CatLocation:
		if fusion.LocNoise(key) {
			return "", false
		}
	case model.CatPerson:
		if fusion.PersonNoise(key) {
			return "", false
		}
	case model.CatAddress:
		// An address region may have absorbed a phone label line;
		// search for the address itself.
		key = fusion.StripPhoneLabels(key)
	}
	if digitChecked(r.Category) {
		minD, _ := r.Category.MinDigits()
		if textutil.CountDigits(key) < minD {
			return "", false
		}
		if r.Category == model.CatSSN && containsCurrency(key) {
			return "", false
		}
	}
	return key, true
}

// regionsAt builds one region per visual line for the occurrence at
// [cs, ce) on pg, building and caching the page's offset index on
// first use.
func (p *Propagator) regionsAt(cat model.Category, conf float64, tpl model.PIIRegion,
	pg *model.PageText, cs, ce int, indexes map[int]*offsets.Index) []model.PIIRegion {

	ix := indexes[pg.Number]
	if ix == nil {
		ix = offsets.Build(pg.Fragments, pg.FullText)
		indexes[pg.Number] = ix
	}

	lineBoxes := ix.LineBBoxesFor(cs, ce)
	if len(lineBoxes) == 0 {
		bbox, ok := ix.BBoxFor(cs, ce)
		if !ok {
			return nil
		}
		lineBoxes = []model.BBox{bbox}
	}

	var out []model.PIIRegion
	for _, b := range lineBoxes {
		cb := b.Clamp(pg.Width, pg.Height)
		if cb.Width() < minBBoxDimensionPt || cb.Height() < minBBoxDimensionPt {
			continue
		}
		out = append(out, model.PIIRegion{
			ID:         model.NewRegionID(),
			Page:       pg.Number,
			BBox:       cb,
			Text:       pg.FullText[cs:ce],
			Category:   cat,
			Confidence: conf,
			Source:     tpl.Source,
			CharStart:  cs,
			CharEnd:    ce,
			Action:     tpl.Action,
		})
	}
	return out
}

// finalize resolves bbox overlaps page by page and clamps every region
// to its page bounds, dropping boxes that collapse.
func (p *Propagator) finalize(all []model.PIIRegion, pageMap map[int]*model.PageText) []model.PIIRegion {
	byPage := make(map[int][]model.PIIRegion)
	var nums []int
	for _, r := range all {
		if _, ok := byPage[r.Page]; !ok {
			nums = append(nums, r.Page)
		}
		byPage[r.Page] = append(byPage[r.Page], r)
	}
	sort.Ints(nums)

	var out []model.PIIRegion
	for _, pn := range nums {
		pg := pageMap[pn]
		for _, r := range shape.ResolveOverlaps(byPage[pn]) {
			if pg == nil {
				out = append(out, r)
				continue
			}
			cb := r.BBox.Clamp(pg.Width, pg.Height)
			if cb.Width() < minBBoxDimensionPt || cb.Height() < minBBoxDimensionPt {
				continue
			}
			r.BBox = cb
			out = append(out, r)
		}
	}
	return out
}

func intervalsByPage(regions []model.PIIRegion) map[int]*pageIntervals {
	m := make(map[int]*pageIntervals)
	for _, r := range regions {
		pageIntervalsFor(m, r.Page).add(r.CharStart, r.CharEnd)
	}
	return m
}

func pageIntervalsFor(m map[int]*pageIntervals, page int) *pageIntervals {
	iv := m[page]
	if iv == nil {
		iv = &pageIntervals{}
		m[page] = iv
	}
	return iv
}

// digitCheckedCats are the categories whose templates must meet the
// structural digit minimum before propagating.
var digitCheckedCats = []model.Category{
	model.CatPhone, model.CatSSN, model.CatDriverLicense,
}

func digitChecked(cat model.Category) bool {
	for _, c := range digitCheckedCats {
		if cat == c {
			return true
		}
	}
	return false
}

func containsCurrency(s string) bool {
	for _, r := range s {
		if model.CurrencyRunes[r] {
			return true
		}
	}
	return false
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}
