// Package glyphrender rasterizes codepoint sequences to fixed-size RGBA
// glyph images with a TrueType font. It produces the reference rendering
// set for candidates that have no raster asset, and deterministic
// synthetic corpora for tests.
package glyphrender

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/wbrown/emoji58/imageutil"
)

// Renderer rasterizes text onto a square canvas of a fixed pixel size.
type Renderer struct {
	font *truetype.Font
	size int
}

// New loads a TrueType font from disk and returns a Renderer producing
// size x size glyph images.
func New(fontPath string, size int) (*Renderer, error) {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	return NewFromBytes(data, size)
}

// NewFromBytes parses TrueType font data and returns a Renderer
// producing size x size glyph images.
func NewFromBytes(data []byte, size int) (*Renderer, error) {
	ttf, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	if size <= 0 {
		return nil, fmt.Errorf("invalid glyph size %d", size)
	}
	return &Renderer{font: ttf, size: size}, nil
}

// Size returns the edge length of the images the renderer produces.
func (r *Renderer) Size() int {
	return r.size
}

// Render draws the text black-on-white, roughly centered on the canvas.
// The font size is derived from the canvas so that ascenders and
// descenders stay inside the frame.
func (r *Renderer) Render(text string) (*imageutil.RGBAImage, error) {
	img := imageutil.NewRGBAImage(r.size, r.size)
	draw.Draw(img.RGBA, img.Bounds(), image.White, image.Point{}, draw.Src)

	pointSize := float64(r.size) * 0.75

	face := truetype.NewFace(r.font, &truetype.Options{
		Size:    pointSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(r.font)
	ctx.SetFontSize(pointSize)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img.RGBA)
	ctx.SetSrc(image.NewUniform(color.Black))
	ctx.SetHinting(font.HintingFull)

	// Baseline from the face metrics so descenders are not clipped.
	metrics := face.Metrics()
	ascent := int(metrics.Ascent >> 6)
	descent := int(metrics.Descent >> 6)
	baselineY := (r.size + ascent - descent) / 2

	if _, err := ctx.DrawString(text, freetype.Pt(0, baselineY)); err != nil {
		return nil, fmt.Errorf("failed to draw %q: %w", text, err)
	}

	return img, nil
}
