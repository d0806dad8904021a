// Package phash implements the 64-bit perceptual hash fingerprints used
// to compare emoji glyphs: average hash, difference hash, DCT hash, and
// Haar wavelet hash. Visually similar glyphs produce hashes with a low
// Hamming distance.
package phash

import (
	"fmt"
	"image"
	"math/bits"
	"sort"

	"github.com/nfnt/resize"
)

// Bits is the length of every hash fingerprint.
const Bits = 64

// Hash is a fixed-length 64-bit perceptual fingerprint.
type Hash uint64

// Distance returns the Hamming distance between two hashes.
func (h Hash) Distance(other Hash) int {
	return bits.OnesCount64(uint64(h ^ other))
}

// Similarity returns 1 minus the normalized Hamming distance, so 1 means
// identical bit patterns and 0 means every bit differs.
func (h Hash) Similarity(other Hash) float64 {
	return 1.0 - float64(h.Distance(other))/float64(Bits)
}

// String renders the hash as 16 hex digits.
func (h Hash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// grid downsamples the image to width x height and returns its luminance
// values in the range [0, 255], row-major. Transparent pixels are
// composited over white: emoji assets carry their silhouette in the
// alpha channel.
func grid(img image.Image, width, height uint) [][]float64 {
	scaled := resize.Resize(width, height, img, resize.Bicubic)

	bounds := scaled.Bounds()
	out := make([][]float64, bounds.Dy())
	for y := range out {
		out[y] = make([]float64, bounds.Dx())
		for x := range out[y] {
			r, g, b, a := scaled.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA values are alpha-premultiplied in [0, 65535].
			lum := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
			lum += float64(0xffff - a)
			out[y][x] = lum / 257.0
		}
	}
	return out
}

// mean returns the arithmetic mean of all matrix values.
func mean(m [][]float64) float64 {
	var sum float64
	var n int
	for _, row := range m {
		for _, v := range row {
			sum += v
			n++
		}
	}
	return sum / float64(n)
}

// median returns the middle element of the values in sorted order.
func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted[len(sorted)/2]
}

// Average computes the average hash: the image is reduced to an 8x8
// luminance grid and each bit records whether its cell is brighter than
// the grid mean. Coarse but cheap, catches near-duplicates.
func Average(img image.Image) Hash {
	g := grid(img, 8, 8)
	avg := mean(g)

	var h Hash
	var bit uint
	for _, row := range g {
		for _, v := range row {
			if v > avg {
				h |= 1 << bit
			}
			bit++
		}
	}
	return h
}

// Difference computes the gradient hash: the image is reduced to a 9x8
// luminance grid and each bit records whether a cell is brighter than
// its left neighbor, capturing the sign of the horizontal gradient.
func Difference(img image.Image) Hash {
	g := grid(img, 9, 8)

	var h Hash
	var bit uint
	for _, row := range g {
		for x := 0; x < len(row)-1; x++ {
			if row[x+1] > row[x] {
				h |= 1 << bit
			}
			bit++
		}
	}
	return h
}
