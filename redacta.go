// Package redacta provides a fluent API for detecting personally
// identifiable information in spatial text extracted from documents.
//
// Basic usage:
//
//	regions, err := redacta.Analyze(pages...).Detect(ctx)
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	regions, err := redacta.Analyze(pages...).
//	    Threshold(0.7).
//	    Language("fr").
//	    OnProgress(func(done, total int) { fmt.Printf("%d/%d\n", done, total) }).
//	    Detect(ctx)
//
// For advanced use cases, the lower-level pipeline, fusion, and
// propagate packages are also available.
package redacta

import (
	"context"
	"log/slog"

	"github.com/tsawler/redacta/detect"
	"github.com/tsawler/redacta/model"
	"github.com/tsawler/redacta/pipeline"
)

// Analyzer accumulates configuration for one detection run.
type Analyzer struct {
	pages     []*model.PageText
	cfg       pipeline.Config
	logger    *slog.Logger
	detectors []detect.Detector
	progress  pipeline.ProgressFunc
	err       error
}

// Analyze starts a fluent detection run over the given pages.
func Analyze(pages ...*model.PageText) *Analyzer {
	return &Analyzer{
		pages: pages,
		cfg:   pipeline.DefaultConfig(),
	}
}

// WithConfig replaces the full configuration.
func (a *Analyzer) WithConfig(cfg pipeline.Config) *Analyzer {
	a.cfg = cfg
	return a
}

// WithConfigFile loads configuration from a YAML file. A load error
// surfaces from Detect.
func (a *Analyzer) WithConfigFile(path string) *Analyzer {
	cfg, err := pipeline.LoadConfig(path)
	if err != nil {
		a.err = err
		return a
	}
	a.cfg = cfg
	return a
}

// Threshold sets the minimum confidence for reported regions.
func (a *Analyzer) Threshold(v float64) *Analyzer {
	a.cfg.ConfidenceThreshold = v
	return a
}

// Fuzziness sets how aggressively neighbouring words group into one
// region (0 strict, 1 permissive).
func (a *Analyzer) Fuzziness(v float64) *Analyzer {
	a.cfg.Fuzziness = v
	return a
}

// Language forces the detection language (BCP 47 tag); "auto" selects
// per page.
func (a *Analyzer) Language(tag string) *Analyzer {
	a.cfg.Language = tag
	return a
}

// WithLogger sets the logger for the run; nil means slog.Default.
func (a *Analyzer) WithLogger(l *slog.Logger) *Analyzer {
	a.logger = l
	return a
}

// WithDetector attaches an external detection layer (NER, GLiNER, LLM
// adapter).
func (a *Analyzer) WithDetector(d detect.Detector) *Analyzer {
	a.detectors = append(a.detectors, d)
	return a
}

// OnProgress registers a per-page completion callback. It may be
// called from multiple goroutines.
func (a *Analyzer) OnProgress(f pipeline.ProgressFunc) *Analyzer {
	a.progress = f
	return a
}

// Detect runs the pipeline and returns the detected regions ordered
// by page.
func (a *Analyzer) Detect(ctx context.Context) ([]model.PIIRegion, error) {
	if a.err != nil {
		return nil, a.err
	}
	p, err := pipeline.New(a.cfg, a.logger)
	if err != nil {
		return nil, err
	}
	for _, d := range a.detectors {
		p.AddDetector(d)
	}
	p.Progress = a.progress
	return p.ProcessDocument(ctx, a.pages)
}

// Must wraps a call returning (T, error) and panics on error. Intended
// for scripts and tests.
//
// Example:
//
//	regions := redacta.Must(redacta.Analyze(pages...).Detect(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
