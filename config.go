package emoji58

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds the tunable parameters of the selection batch. The
// threshold and the hash combination were chosen empirically against the
// reference rendering set; treat them as configuration, not constants.
type Config struct {
	// TargetCount is the number of emoji to select. The batch binds one
	// per Base58 symbol and rejects anything else; smaller targets are
	// only meaningful when driving SelectDistinct directly.
	TargetCount int `json:"target_count"`

	// Threshold is the confusability threshold τ on the inverted
	// similarity scale: pairs scoring at or above it are never both
	// selected.
	Threshold float64 `json:"confusability_threshold"`

	// PrioritySymbols are Base58 symbols pinned ahead of the greedy
	// fill, most important first. Address version prefixes dominate
	// real-world frequency, so they default to "1" and "3".
	PrioritySymbols []string `json:"priority_symbols"`

	// PinnedCandidates optionally forces specific candidates (by
	// codepoint ID) onto priority symbols. When empty, the engine pins
	// the most distinct mutually non-confusable candidates instead.
	PinnedCandidates map[string]string `json:"pinned_candidates,omitempty"`

	// ExcludedCategories are candidate categories removed before
	// fingerprinting.
	ExcludedCategories []string `json:"excluded_categories"`

	// GlyphSize is the canonical square frame candidates are
	// normalized to before hashing.
	GlyphSize int `json:"glyph_size"`

	// Workers bounds the parallelism of the extraction and pairwise
	// stages. Zero means GOMAXPROCS.
	Workers int `json:"workers"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		TargetCount:     len(Base58Alphabet),
		Threshold:       0.95,
		PrioritySymbols: []string{"1", "3"},
		ExcludedCategories: []string{
			CategorySkinTone,
			CategoryFlag,
			CategoryZWJ,
			CategoryKeycap,
		},
		GlyphSize: 64,
		Workers:   0,
	}
}

// LoadConfig reads a configuration file, applying defaults for any
// field the file omits.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("error reading config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return cfg, cfg.validate()
}

func (cfg Config) validate() error {
	if cfg.TargetCount <= 0 || cfg.TargetCount > len(Base58Alphabet) {
		return fmt.Errorf("target_count must be in [1, %d], got %d",
			len(Base58Alphabet), cfg.TargetCount)
	}
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		return fmt.Errorf("confusability_threshold must be in (0, 1], got %g", cfg.Threshold)
	}
	if len(cfg.PrioritySymbols) > cfg.TargetCount {
		return fmt.Errorf("%d priority symbols exceed target_count %d",
			len(cfg.PrioritySymbols), cfg.TargetCount)
	}
	seen := make(map[string]bool, len(cfg.PrioritySymbols))
	for _, sym := range cfg.PrioritySymbols {
		if len(sym) != 1 || symbolIndex(sym[0]) < 0 {
			return fmt.Errorf("priority symbol %q is not in the Base58 alphabet", sym)
		}
		if seen[sym] {
			return fmt.Errorf("priority symbol %q listed twice", sym)
		}
		seen[sym] = true
	}
	for sym := range cfg.PinnedCandidates {
		if !seen[sym] {
			return fmt.Errorf("pinned candidate for %q, which is not a priority symbol", sym)
		}
	}
	return nil
}

// workerCount resolves the configured parallelism.
func (cfg Config) workerCount() int {
	if cfg.Workers > 0 {
		return cfg.Workers
	}
	return runtime.GOMAXPROCS(0)
}
