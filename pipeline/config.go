package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls the detection pipeline. Zero values are not useful;
// start from DefaultConfig and override.
type Config struct {
	// ConfidenceThreshold is the minimum confidence a merged candidate
	// needs to become a region.
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`

	// Fuzziness controls how aggressively neighbouring words group
	// into one region: 0 only merges very close words, 1 allows wider
	// gaps. The point threshold scales with line height and is capped
	// at 20pt.
	Fuzziness float64 `yaml:"fuzziness"`

	// MaxFontSizePt excludes text rendered at or above this bbox
	// height (watermarks, titles). 0 disables the filter.
	MaxFontSizePt float64 `yaml:"max_font_size_pt"`

	// MinPageChars skips detection on pages with less stripped text
	// than this (cover pages, separators).
	MinPageChars int `yaml:"min_page_chars"`

	// Language forces the detection language (BCP 47). "auto" or
	// empty selects per page by stop-word counting.
	Language string `yaml:"language"`

	// MaxConcurrentPages bounds page-parallel detection.
	MaxConcurrentPages int `yaml:"max_concurrent_pages"`

	RegexEnabled        bool `yaml:"regex_enabled"`
	CrossLineOrgEnabled bool `yaml:"cross_line_org_enabled"`
	HeuristicEnabled    bool `yaml:"heuristic_enabled"`
	PropagationEnabled  bool `yaml:"propagation_enabled"`
	PartialOrgEnabled   bool `yaml:"partial_org_propagation_enabled"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		ConfidenceThreshold: 0.55,
		Fuzziness:           0.5,
		MaxFontSizePt:       28.0,
		MinPageChars:        30,
		Language:            "auto",
		MaxConcurrentPages:  4,
		RegexEnabled:        true,
		CrossLineOrgEnabled: true,
		HeuristicEnabled:    true,
		PropagationEnabled:  true,
		PartialOrgEnabled:   true,
	}
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges; out-of-range values usually mean a units
// mistake in the config file.
func (c Config) Validate() error {
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold %v outside [0,1]", c.ConfidenceThreshold)
	}
	if c.Fuzziness < 0 || c.Fuzziness > 1 {
		return fmt.Errorf("fuzziness %v outside [0,1]", c.Fuzziness)
	}
	if c.MaxFontSizePt < 0 {
		return fmt.Errorf("max_font_size_pt %v is negative", c.MaxFontSizePt)
	}
	if c.MinPageChars < 0 {
		return fmt.Errorf("min_page_chars %d is negative", c.MinPageChars)
	}
	if c.MaxConcurrentPages < 1 {
		return fmt.Errorf("max_concurrent_pages %d must be at least 1", c.MaxConcurrentPages)
	}
	return nil
}
