// Package shape post-processes detected regions into well-formed
// highlight rectangles: clamped to the page, split at visual gaps,
// capped in word count, and clipped against each other so no two
// rectangles overlap.
package shape

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/tsawler/redacta/detect"
	"github.com/tsawler/redacta/model"
	"github.com/tsawler/redacta/offsets"
)

// RedetectFunc classifies a text chunk produced by splitting an
// oversized region. It returns the best category, confidence, and
// source, or ok=false when nothing clears the threshold.
type RedetectFunc func(text string) (model.Category, float64, model.Source, bool)

// Enforcer applies shape constraints to regions on one page.
type Enforcer struct {
	// Threshold is the minimum confidence for re-detected or
	// degraded chunks to survive.
	Threshold float64

	// Fuzziness tunes the spatial gap threshold, 0 strict to 1
	// permissive.
	Fuzziness float64

	// Redetect reclassifies chunks cut from oversized regions. When
	// nil, a regex plus heuristic-name pass is used.
	Redetect RedetectFunc

	Logger *slog.Logger
}

// NewEnforcer returns an Enforcer with the built-in lightweight
// re-detection chain.
func NewEnforcer(threshold, fuzziness float64, logger *slog.Logger) *Enforcer {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Enforcer{Threshold: threshold, Fuzziness: fuzziness, Logger: logger}
	e.Redetect = e.defaultRedetect
	return e
}

func (e *Enforcer) defaultRedetect(text string) (model.Category, float64, model.Source, bool) {
	ctx := context.Background()
	lang := detect.DetectLanguage(text)

	var (
		bestCat  model.Category
		bestConf float64
		bestSrc  model.Source
		found    bool
	)
	detectors := []detect.Detector{
		detect.NewRegexDetector(),
		detect.NewHeuristicNameDetector(),
	}
	for _, d := range detectors {
		matches, err := d.Detect(ctx, text, lang)
		if err != nil {
			continue
		}
		for _, m := range matches {
			if !found || m.Confidence > bestConf {
				bestCat, bestConf, bestSrc = m.Category, m.Confidence, m.Source
				found = true
			}
		}
	}
	if !found || bestConf < e.Threshold {
		return "", 0, "", false
	}
	return bestCat, bestConf, bestSrc, true
}

// Enforce applies, in order: page-bounds clamping, gap splitting, and
// the per-category word cap with re-validation of split chunks.
// Regions whose box degenerates below one point in either dimension
// are dropped.
func (e *Enforcer) Enforce(regions []model.PIIRegion, page *model.PageText, ix *offsets.Index) []model.PIIRegion {
	if ix == nil || len(ix.Entries()) == 0 {
		return regions
	}

	result := make([]model.PIIRegion, 0, len(regions))
	for _, region := range regions {
		clamped := region.BBox.Clamp(page.Width, page.Height)
		if clamped.IsDegenerate(1.0) {
			continue
		}
		region.BBox = clamped

		var covered []offsets.Entry
		if region.CharStart < region.CharEnd {
			covered = ix.Overlapping(region.CharStart, region.CharEnd)
		} else {
			covered = ix.OverlappingBBox(region.BBox)
		}
		if len(covered) == 0 {
			result = append(result, region)
			continue
		}

		limit := region.Category.MaxWords()

		// Addresses keep their internal gaps (street number, unit,
		// postal code); only the word cap applies.
		if region.Category == model.CatAddress {
			if len(covered) <= limit {
				result = append(result, region)
				continue
			}
			sortReadingOrder(covered)
			for ci := 0; ci < len(covered); ci += limit {
				chunk := covered[ci:minInt(ci+limit, len(covered))]
				if sub, ok := e.subRegion(region, chunk, page); ok {
					result = append(result, sub)
				}
			}
			continue
		}

		groups := offsets.SplitAtGaps(covered, page.FullText, e.Fuzziness)
		if len(groups) == 1 && len(groups[0]) <= limit {
			result = append(result, region)
			continue
		}

		for _, group := range groups {
			if len(group) <= limit {
				if sub, ok := e.subRegion(region, group, page); ok {
					result = append(result, sub)
				}
				continue
			}
			sortReadingOrder(group)
			for ci := 0; ci < len(group); ci += limit {
				chunk := group[ci:minInt(ci+limit, len(group))]
				sub, ok := e.subRegion(region, chunk, page)
				if !ok {
					continue
				}
				// A chunk cut from an oversized span may no longer be
				// the same kind of thing, or anything at all.
				if cat, conf, src, hit := e.Redetect(sub.Text); hit {
					sub.Category, sub.Confidence, sub.Source = cat, conf, src
				} else {
					sub.Confidence = region.Confidence * 0.5
					if sub.Confidence < e.Threshold {
						continue
					}
				}
				result = append(result, sub)
			}
		}
	}

	e.Logger.Debug("shape enforcement",
		"page", page.Number, "in", len(regions), "out", len(result))
	return result
}

// subRegion builds a new region covering one group of entries,
// inheriting everything but geometry and text from the parent. The
// second return is false when the clamped box degenerates.
func (e *Enforcer) subRegion(parent model.PIIRegion, group []offsets.Entry, page *model.PageText) (model.PIIRegion, bool) {
	bbox := offsets.EntriesBBox(group).Clamp(page.Width, page.Height)
	if bbox.IsDegenerate(1.0) {
		return model.PIIRegion{}, false
	}
	texts := make([]string, len(group))
	for i, en := range group {
		texts[i] = en.Fragment.Text
	}
	cs, ce := offsets.EntriesSpan(group)
	return model.PIIRegion{
		ID:          model.NewRegionID(),
		Page:        parent.Page,
		BBox:        bbox,
		Text:        strings.Join(texts, " "),
		Category:    parent.Category,
		Confidence:  parent.Confidence,
		Source:      parent.Source,
		CharStart:   cs,
		CharEnd:     ce,
		Action:      parent.Action,
		LinkedGroup: parent.LinkedGroup,
	}, true
}

func sortReadingOrder(entries []offsets.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		bi, bj := entries[i].Fragment.BBox, entries[j].Fragment.BBox
		if bi.Y0 != bj.Y0 {
			return bi.Y0 < bj.Y0
		}
		return bi.X0 < bj.X0
	})
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
