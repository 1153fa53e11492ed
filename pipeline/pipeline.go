// Package pipeline orchestrates detection end to end: per-page layout
// analysis, the detection layers, fusion into regions, and cross-page
// propagation. Pages run concurrently; propagation waits for every
// page so each detected text can be searched document-wide.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/tsawler/redacta/detect"
	"github.com/tsawler/redacta/fusion"
	"github.com/tsawler/redacta/layout"
	"github.com/tsawler/redacta/model"
	"github.com/tsawler/redacta/offsets"
	"github.com/tsawler/redacta/propagate"
)

// ProgressFunc reports page completion: done pages out of total.
// Called from worker goroutines; implementations must be safe for
// concurrent use.
type ProgressFunc func(done, total int)

// Pipeline runs the full detection flow over a document.
type Pipeline struct {
	// Progress, when set, is called after each page finishes.
	Progress ProgressFunc

	cfg       Config
	regex     detect.Detector
	crossLine detect.Detector
	heuristic detect.Detector
	extra     []detect.Detector
	engine    *fusion.Engine
	prop      *propagate.Propagator
	logger    *slog.Logger
}

// New builds a pipeline with the in-tree layers (regex bank,
// cross-line organization scan, heuristic names). Model-backed layers
// attach via AddDetector.
func New(cfg Config, logger *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:       cfg,
		regex:     detect.NewRegexDetector(),
		crossLine: detect.NewCrossLineOrgScanner(),
		heuristic: detect.NewHeuristicNameDetector(),
		engine:    fusion.NewEngine(cfg.ConfidenceThreshold, cfg.Fuzziness, cfg.MaxFontSizePt, logger),
		prop:      propagate.NewPropagator(logger),
		logger:    logger,
	}, nil
}

// AddDetector attaches an external detection layer (NER, GLiNER, LLM
// adapters). Matches from added detectors go through the same fusion
// gates as the built-in layers.
func (p *Pipeline) AddDetector(d detect.Detector) {
	p.extra = append(p.extra, d)
}

// ProcessDocument detects PII on every page and propagates results
// across pages. Regions come back ordered by page.
func (p *Pipeline) ProcessDocument(ctx context.Context, pages []*model.PageText) ([]model.PIIRegion, error) {
	if len(pages) == 0 {
		return nil, nil
	}

	start := time.Now()
	results := make([][]model.PIIRegion, len(pages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.MaxConcurrentPages)
	var done atomic.Int64

	for i, pg := range pages {
		i, pg := i, pg
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.processPage(gctx, pg)
			if p.Progress != nil {
				p.Progress(int(done.Add(1)), len(pages))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("page processing: %w", err)
	}

	// All pages done; propagation needs the complete region set.
	var all []model.PIIRegion
	for _, rs := range results {
		all = append(all, rs...)
	}
	if p.cfg.PropagationEnabled {
		all = p.prop.Propagate(all, pages)
	}
	if p.cfg.PartialOrgEnabled {
		all = p.prop.PropagatePartialOrgs(all, pages)
	}

	p.logger.Info("document processed",
		"pages", len(pages), "regions", len(all), "elapsed", time.Since(start))
	return all, nil
}

// processPage runs layout analysis, every enabled detection layer, and
// fusion for one page. Layer failures are logged and skipped; one bad
// model never aborts the document.
func (p *Pipeline) processPage(ctx context.Context, pg *model.PageText) []model.PIIRegion {
	stripped := strings.TrimSpace(pg.FullText)
	if len(stripped) < p.cfg.MinPageChars {
		if stripped != "" {
			p.logger.Info("skipping short page",
				"page", pg.Number, "chars", len(stripped))
		}
		return nil
	}

	pageStart := time.Now()
	lang := p.pageLanguage(pg.FullText)

	ix := offsets.Build(pg.Fragments, pg.FullText)
	dt := layout.Build(ix, pg.FullText, pg.Width)

	var matches []model.DetectionMatch
	if p.cfg.RegexEnabled {
		matches = append(matches, p.runLayer(ctx, p.regex, dt, pg, lang, nil)...)
	}
	if p.cfg.CrossLineOrgEnabled {
		// Supplemental scan: only spans the regex bank missed.
		matches = append(matches, p.runLayer(ctx, p.crossLine, dt, pg, lang, matches)...)
	}
	if p.cfg.HeuristicEnabled {
		matches = append(matches, p.runLayer(ctx, p.heuristic, dt, pg, lang, matches)...)
	}
	for _, d := range p.extra {
		matches = append(matches, p.runLayer(ctx, d, dt, pg, lang, nil)...)
	}

	regions := p.engine.Merge(matches, pg, ix)
	p.logger.Info("page processed",
		"page", pg.Number, "matches", len(matches), "regions", len(regions),
		"chars", len(stripped), "lang", lang, "elapsed", time.Since(pageStart))
	return regions
}

// runLayer runs one detector against the page's detection text and
// translates its matches to full-text coordinates. When existing is
// non-nil, matches overlapping an already-collected span are dropped.
func (p *Pipeline) runLayer(ctx context.Context, d detect.Detector, dt layout.DetectionText,
	pg *model.PageText, lang language.Tag, existing []model.DetectionMatch) []model.DetectionMatch {

	layerStart := time.Now()
	found, err := d.Detect(ctx, dt.Text, lang)
	if err != nil {
		p.logger.Error("detection layer failed",
			"page", pg.Number, "layer", d.Name(), "error", err)
		return nil
	}

	var out []model.DetectionMatch
	for _, m := range found {
		ftStart, ftEnd, text, ok := dt.Translate(m.Start, m.End, pg.FullText)
		if !ok {
			continue
		}
		m.Start, m.End, m.Text = ftStart, ftEnd, text
		if existing != nil && !detect.NonOverlapping(m, existing) {
			continue
		}
		out = append(out, m)
		if existing != nil {
			existing = append(existing, m)
		}
	}

	p.logger.Debug("detection layer finished",
		"page", pg.Number, "layer", d.Name(), "matches", len(out),
		"elapsed", time.Since(layerStart))
	return out
}

// pageLanguage resolves the detection language: the configured
// override when parseable, otherwise stop-word detection per page.
func (p *Pipeline) pageLanguage(text string) language.Tag {
	if p.cfg.Language != "" && p.cfg.Language != "auto" {
		if tag, err := language.Parse(p.cfg.Language); err == nil {
			return tag
		}
		p.logger.Warn("unparseable language override, detecting instead",
			"language", p.cfg.Language)
	}
	return detect.DetectLanguage(text)
}
