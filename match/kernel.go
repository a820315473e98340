package match

import "math"

// negInf is the sentinel score returned by nccAt for a flat local window.
// It always loses any max comparison without special-casing the reduction.
var negInf = math.Inf(-1)

// nccAt computes the NCC score for the template described by t against the
// window of src at anchor (x, y), using the source's precomputed integral
// pair. Anchor must satisfy 0 <= x <= W-w, 0 <= y <= H-h. Returns a score in
// [-1, 1], or negInf when the local window is flat.
//
// Because sum(centered) == 0, the cross term mean(window)*sum(centered) is
// zero and the hot loop never needs to subtract the window mean from each
// source pixel — only raw source pixel times centered[k]. This is the
// load-bearing algebraic simplification the kernel is built around.
func nccAt(src *GrayImage, integ *integralPair, t *templateStats, x, y int) float64 {
	w, h := t.w, t.h
	n := float64(w * h)

	sum := integ.rectSum(x, y, x+w, y+h)
	sumSq := integ.rectSumSq(x, y, x+w, y+h)

	fsum := float64(sum)
	varN := float64(sumSq) - fsum*fsum/n // n * sigma^2, rounding-prone near zero
	if varN < 0 {
		varN = 0
	}
	sNorm := math.Sqrt(varN)
	if sNorm < epsilon {
		return negInf
	}

	var dot float64
	px := src.pixels
	srcW := src.w
	for j := 0; j < h; j++ {
		rowOff := (y + j) * srcW
		cOff := j * w
		for i := 0; i < w; i++ {
			dot += float64(px[rowOff+x+i]) * t.centered[cOff+i]
		}
	}

	r := dot / (sNorm * t.norm)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r
}
