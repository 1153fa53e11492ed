package propagate

import (
	"sort"
	"strings"

	"github.com/tsawler/redacta/model"
	"github.com/tsawler/redacta/offsets"
	"github.com/tsawler/redacta/textutil"
)

// orgFunctionWords are articles, prepositions, and conjunctions in
// their accent-stripped form. A sub-phrase made only of these carries
// no identity and is not worth propagating.
var orgFunctionWords = stringSet(
	"the", "a", "an", "of", "and", "or", "for", "in", "on", "at", "to",
	"by", "with", "from", "as", "is", "are", "was", "were",
	"le", "la", "les", "de", "du", "des", "et", "ou", "en", "au", "aux",
	"un", "une", "sur", "dans", "pour", "par", "avec",
	"der", "die", "das", "den", "dem", "und", "oder", "fur", "fuer",
	"mit", "von", "zu", "auf", "ein", "eine", "am", "im", "an", "bei",
	"aus", "nach", "uber", "ueber",
	"el", "los", "las", "del", "y", "o", "para", "con", "por",
	"al", "una", "uno",
	"il", "lo", "gli", "della", "dello", "dei", "degli", "delle", "e",
	"di", "da", "alla", "alle", "ai", "nel", "nella",
	"sul", "sulla", "dal", "dalla",
	"het", "een", "van", "voor", "met", "op", "te", "bij", "uit",
	"os", "do", "dos", "das", "em", "no", "na",
	"nos", "nas", "ao", "aos", "um", "uma",
)

func stringSet(words ...string) map[string]bool {
	s := make(map[string]bool, len(words))
	for _, w := range words {
		s[w] = true
	}
	return s
}

// subphrases returns the contiguous sub-phrases of words with at least
// minWords words, excluding the full phrase itself.
func subphrases(words []string, minWords int) []string {
	var out []string
	for length := minWords; length < len(words); length++ {
		for start := 0; start+length <= len(words); start++ {
			out = append(out, strings.Join(words[start:start+length], " "))
		}
	}
	return out
}

func allFunctionWords(words []string) bool {
	for _, w := range words {
		if !orgFunctionWords[w] {
			return false
		}
	}
	return true
}

// PropagatePartialOrgs flags 2+-word sub-phrases of detected
// organization names. When "Deutsche Bank AG" has been detected, later
// mentions of just "Deutsche Bank" are organizations too. Existing
// LOCATION and PERSON regions whose text matches a known organization
// are retyped rather than duplicated.
func (p *Propagator) PropagatePartialOrgs(regions []model.PIIRegion, pages []*model.PageText) []model.PIIRegion {
	if len(regions) == 0 || len(pages) == 0 {
		return regions
	}

	out := append([]model.PIIRegion(nil), regions...)

	// Multi-word organization names, best confidence per normalized
	// text, in first-seen order.
	orgs := make(map[string]model.PIIRegion)
	var orgOrder []string
	for _, r := range out {
		if r.Category != model.CatOrg {
			continue
		}
		key := strings.TrimSpace(r.Text)
		if len(strings.Fields(key)) < 3 {
			continue
		}
		norm := textutil.NormalizeKey(key)
		existing, seen := orgs[norm]
		if !seen {
			orgOrder = append(orgOrder, norm)
		}
		if !seen || r.Confidence > existing.Confidence {
			orgs[norm] = r
		}
	}
	if len(orgs) == 0 {
		return regions
	}

	// Sub-phrase to best parent template.
	subs := make(map[string]model.PIIRegion)
	var subOrder []string
	for _, norm := range orgOrder {
		tpl := orgs[norm]
		for _, sub := range subphrases(strings.Fields(norm), 2) {
			if allFunctionWords(strings.Fields(sub)) {
				continue
			}
			existing, seen := subs[sub]
			if !seen {
				subOrder = append(subOrder, sub)
			}
			if !seen || tpl.Confidence > existing.Confidence {
				subs[sub] = tpl
			}
		}
	}

	// Sub-phrases identical to an already-detected text of any
	// category are handled by exact propagation.
	existingTexts := make(map[string]bool, len(out))
	for _, r := range out {
		existingTexts[textutil.NormalizeKey(strings.TrimSpace(r.Text))] = true
	}
	kept := subOrder[:0]
	for _, s := range subOrder {
		if existingTexts[s] {
			delete(subs, s)
			continue
		}
		kept = append(kept, s)
	}
	subOrder = kept

	// Retype LOCATION/PERSON regions matching a known organization
	// name or sub-phrase: name layers tag fragments of company names
	// as places or people.
	retyped := 0
	for i, r := range out {
		if r.Category != model.CatLocation && r.Category != model.CatPerson {
			continue
		}
		norm := textutil.NormalizeKey(strings.TrimSpace(r.Text))
		tpl, ok := subs[norm]
		if !ok {
			tpl, ok = orgs[norm]
		}
		if !ok {
			continue
		}
		out[i].Category = model.CatOrg
		if c := tpl.Confidence * p.ConfFactor; c > out[i].Confidence {
			out[i].Confidence = c
		}
		retyped++
	}
	if retyped > 0 {
		p.Logger.Info("retyped regions to organization", "count", retyped)
	}

	if len(subOrder) == 0 {
		return out
	}

	// Longer sub-phrases claim intervals before shorter overlapping
	// ones.
	sort.SliceStable(subOrder, func(i, j int) bool {
		return len(subOrder[i]) > len(subOrder[j])
	})

	intervals := intervalsByPage(out)
	norms := make(map[int]*normPage)
	indexes := make(map[int]*offsets.Index)

	var propagated []model.PIIRegion
	for _, sub := range subOrder {
		tpl := subs[sub]
		conf := tpl.Confidence * p.ConfFactor
		pat, err := buildFlexPattern(sub)
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
				if !boundedMatch(pg.FullText, cs, ce) {
					continue
				}
				if iv.hasOverlap(cs, ce, p.OverlapRatio) {
					continue
				}
				propagated = append(propagated,
					p.regionsAt(model.CatOrg, conf, tpl, pg, cs, ce, indexes)...)
				iv.add(cs, ce)
			}
		}
	}

	if len(propagated) == 0 {
		return out
	}
	p.Logger.Info("propagated partial organization names",
		"added", len(propagated), "subphrases", len(subOrder), "orgs", len(orgs))

	pageMap := make(map[int]*model.PageText, len(pages))
	for _, pg := range pages {
		pageMap[pg.Number] = pg
	}
	return p.finalize(append(out, propagated...), pageMap)
}
