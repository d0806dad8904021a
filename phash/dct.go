package phash

import (
	"image"
	"math"
)

// dctSize is the downsampled frame the DCT operates on. Only the 8x8
// low-frequency corner of the transform contributes to the hash.
const dctSize = 32

// Perceptual computes the DCT hash: the image is reduced to a 32x32
// luminance grid, transformed with a 2D DCT-II, and the top-left 8x8
// low-frequency block is thresholded on its median. The DC coefficient
// is excluded from the median so a glyph's overall brightness does not
// skew the threshold.
func Perceptual(img image.Image) Hash {
	g := grid(img, dctSize, dctSize)
	coefs := dct2d(g)

	low := make([]float64, 0, 64)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x == 0 && y == 0 {
				continue
			}
			low = append(low, coefs[y][x])
		}
	}
	med := median(low)

	var h Hash
	var bit uint
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if coefs[y][x] > med {
				h |= 1 << bit
			}
			bit++
		}
	}
	return h
}

// dct1d computes the DCT-II of a single row in place-safe fashion.
func dct1d(in []float64) []float64 {
	n := len(in)
	out := make([]float64, n)
	for k := 0; k < n; k++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += in[i] * math.Cos(math.Pi/float64(n)*(float64(i)+0.5)*float64(k))
		}
		out[k] = sum
	}
	return out
}

// dct2d applies the separable 2D DCT-II: rows first, then columns.
func dct2d(m [][]float64) [][]float64 {
	height := len(m)
	width := len(m[0])

	rows := make([][]float64, height)
	for y := range m {
		rows[y] = dct1d(m[y])
	}

	out := make([][]float64, height)
	for y := range out {
		out[y] = make([]float64, width)
	}
	column := make([]float64, height)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			column[y] = rows[y][x]
		}
		transformed := dct1d(column)
		for y := 0; y < height; y++ {
			out[y][x] = transformed[y]
		}
	}
	return out
}
