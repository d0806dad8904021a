// Command rendercorpus rasterizes the glyph images the selection batch
// fingerprints. It reads the corpus metadata, renders each candidate's
// emoji sequence with a TrueType font, and writes one PNG per candidate
// into the image directory using the layout LoadCorpus expects.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wbrown/emoji58"
	"github.com/wbrown/emoji58/glyphrender"
	"github.com/wbrown/emoji58/imageutil"
)

func main() {
	metadataPath := flag.String("metadata", "data/emoji_metadata.json", "emoji corpus metadata file")
	imagesDir := flag.String("images", "data/emoji_images", "output directory for glyph images")
	fontPath := flag.String("font", "", "TrueType font to rasterize with")
	size := flag.Int("size", 64, "glyph image edge length in pixels")
	overwrite := flag.Bool("overwrite", false, "re-render images that already exist")
	flag.Parse()

	if *fontPath == "" {
		fmt.Fprintln(os.Stderr, "rendercorpus: -font is required")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*metadataPath, *imagesDir, *fontPath, *size, *overwrite); err != nil {
		fmt.Fprintf(os.Stderr, "rendercorpus: %v\n", err)
		os.Exit(1)
	}
}

func run(metadataPath, imagesDir, fontPath string, size int, overwrite bool) error {
	renderer, err := glyphrender.New(fontPath, size)
	if err != nil {
		return err
	}

	candidates, err := emoji58.LoadCorpus(metadataPath, imagesDir)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return fmt.Errorf("cannot create image directory: %w", err)
	}

	rendered, skipped := 0, 0
	for _, c := range candidates {
		if !overwrite {
			if _, err := os.Stat(c.ImagePath); err == nil {
				skipped++
				continue
			}
		}

		img, err := renderer.Render(c.Emoji)
		if err != nil {
			return fmt.Errorf("candidate %s: %w", c.ID(), err)
		}
		if err := imageutil.SavePNG(img, c.ImagePath); err != nil {
			return fmt.Errorf("candidate %s: %w", c.ID(), err)
		}
		rendered++
	}

	fmt.Printf("rendered %d glyph images (%d already present) in %s\n", rendered, skipped, imagesDir)
	return nil
}
