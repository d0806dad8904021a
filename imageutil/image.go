// Package imageutil provides the pure Go raster utilities used by the
// fingerprinting pipeline: image wrappers with convenient pixel access,
// decoding, resizing, and grayscale conversion.
package imageutil

import (
	"image"
)

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// RGBAImageFromImage converts any image.Image to RGBAImage.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	if rgba, ok := img.(*RGBAImage); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := NewRGBAImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return rgba
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// Luminance returns the BT.601 luminance of the pixel at (x, y) in the
// range [0, 255]. Transparent pixels are composited over white first,
// since emoji glyph assets carry their shape in the alpha channel and
// would otherwise all collapse to black.
func (img *RGBAImage) Luminance(x, y int) float64 {
	c := img.RGBAAt(x, y)
	lum := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	if c.A < 255 {
		a := float64(c.A) / 255.0
		lum = lum*a + 255.0*(1.0-a)
	}
	return lum
}

// ToGrayscaleFloat converts an RGBA image to a grayscale matrix with
// floating-point values in the range [0, 255].
func ToGrayscaleFloat(img *RGBAImage) [][]float64 {
	width, height := img.Width(), img.Height()
	gray := make([][]float64, height)

	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			gray[y][x] = img.Luminance(x, y)
		}
	}

	return gray
}
