package phash

import (
	"image"
	"math"
)

const (
	// waveletFrame is the frame the wavelet decomposition starts from.
	waveletFrame = 64

	// waveletBand is the size of the approximation band kept for the
	// hash after the decomposition cascade.
	waveletBand = 8
)

// Wavelet computes the multi-scale hash: the image is reduced to a 64x64
// luminance grid and decomposed with a 2D Haar wavelet transform until
// the approximation band is 8x8. The band captures structure surviving
// across all the intermediate scales; its 64 coefficients are
// thresholded on their median.
func Wavelet(img image.Image) Hash {
	g := grid(img, waveletFrame, waveletFrame)

	for size := waveletFrame; size > waveletBand; size /= 2 {
		haarStep(g, size)
	}

	flat := make([]float64, 0, waveletBand*waveletBand)
	for y := 0; y < waveletBand; y++ {
		for x := 0; x < waveletBand; x++ {
			flat = append(flat, g[y][x])
		}
	}
	med := median(flat)

	var h Hash
	var bit uint
	for y := 0; y < waveletBand; y++ {
		for x := 0; x < waveletBand; x++ {
			if g[y][x] > med {
				h |= 1 << bit
			}
			bit++
		}
	}
	return h
}

// haarStep performs one level of the 2D Haar decomposition on the
// top-left size x size region of m, leaving the approximation band in
// the top-left quadrant. Rows first, then columns.
func haarStep(m [][]float64, size int) {
	half := size / 2
	tmp := make([]float64, size)

	for y := 0; y < size; y++ {
		for x := 0; x < half; x++ {
			a, b := m[y][2*x], m[y][2*x+1]
			tmp[x] = (a + b) / math.Sqrt2
			tmp[x+half] = (a - b) / math.Sqrt2
		}
		copy(m[y][:size], tmp)
	}

	for x := 0; x < size; x++ {
		for y := 0; y < half; y++ {
			a, b := m[2*y][x], m[2*y+1][x]
			tmp[y] = (a + b) / math.Sqrt2
			tmp[y+half] = (a - b) / math.Sqrt2
		}
		for y := 0; y < size; y++ {
			m[y][x] = tmp[y]
		}
	}
}
