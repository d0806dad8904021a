package emoji58

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Category tags assigned to candidates during corpus loading. The
// filtering step excludes categories that render inconsistently across
// platforms or are composed of multiple glyphs.
const (
	CategorySkinTone   = "skin-tone"
	CategoryFlag       = "flag"
	CategoryZWJ        = "zwj"
	CategoryKeycap     = "keycap"
	CategoryPictograph = "pictograph"
)

// EmojiCandidate is one emoji from the corpus: its canonical codepoint
// sequence, rendered form, display name, qualification status, derived
// category tag, and the path of its reference glyph image. Immutable
// once loaded.
type EmojiCandidate struct {
	Codepoint string `json:"codepoint"`
	Emoji     string `json:"emoji"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Category  string `json:"-"`
	ImagePath string `json:"-"`
}

// ID returns the candidate's canonical identity, its codepoint sequence.
func (c *EmojiCandidate) ID() string {
	return c.Codepoint
}

// classify derives the category tag from the codepoint sequence and
// the display name, mirroring how the corpus is filtered.
func (c *EmojiCandidate) classify() string {
	name := strings.ToLower(c.Name)
	codepoints := strings.Fields(c.Codepoint)

	for _, cp := range codepoints {
		switch cp {
		case "1F3FB", "1F3FC", "1F3FD", "1F3FE", "1F3FF":
			return CategorySkinTone
		case "200D":
			return CategoryZWJ
		case "20E3":
			return CategoryKeycap
		}
	}
	// Regional indicators (1F1E6..1F1FF) compose flags.
	if strings.Contains(name, "flag") || strings.HasPrefix(c.Codepoint, "1F1") {
		return CategoryFlag
	}
	if strings.Contains(name, "keycap") {
		return CategoryKeycap
	}
	return CategoryPictograph
}

// imageFileName builds the glyph asset filename for a candidate:
// lowercase dash-joined codepoints, an underscore-joined name, and a
// .png extension. This is the layout the corpus tooling writes.
func (c *EmojiCandidate) imageFileName() string {
	codepoint := strings.ToLower(strings.ReplaceAll(c.Codepoint, " ", "-"))
	safeName := strings.ReplaceAll(strings.ReplaceAll(c.Name, "/", "-"), " ", "_")
	return fmt.Sprintf("%s_%s.png", codepoint, safeName)
}

// LoadCorpus reads candidate metadata from a JSON file (an array of
// candidate records) and resolves each candidate's glyph image path
// under imagesDir. Only fully-qualified entries are kept; everything
// else renders inconsistently across vendors.
func LoadCorpus(metadataPath, imagesDir string) ([]*EmojiCandidate, error) {
	data, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("error reading corpus metadata: %w", err)
	}

	var all []*EmojiCandidate
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("error unmarshalling corpus metadata: %w", err)
	}

	candidates := make([]*EmojiCandidate, 0, len(all))
	for _, c := range all {
		if c.Status != "" && c.Status != "fully-qualified" {
			continue
		}
		c.Category = c.classify()
		c.ImagePath = filepath.Join(imagesDir, c.imageFileName())
		candidates = append(candidates, c)
	}

	return candidates, nil
}

// FilterCandidates removes candidates whose category is excluded by the
// configuration. The input slice is not modified.
func FilterCandidates(candidates []*EmojiCandidate, excluded []string) []*EmojiCandidate {
	excludedSet := make(map[string]bool, len(excluded))
	for _, category := range excluded {
		excludedSet[category] = true
	}

	kept := make([]*EmojiCandidate, 0, len(candidates))
	for _, c := range candidates {
		if excludedSet[c.Category] {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}
