package match

import "math"

// templateStats holds the precomputed mean, zero-mean pixel values, and
// norm used by the NCC kernel (component D). Computed once
// per search and reused for every anchor.
type templateStats struct {
	w, h     int
	mean     float64
	centered []float64 // length w*h, centered[i] = pixel[i] - mean
	norm     float64   // sqrt(sum(centered[i]^2))
}

// buildTemplateStats computes templateStats for tmpl. It fails with
// ErrDegenerateTemplate when the template is flat (norm <= epsilon).
func buildTemplateStats(tmpl *GrayImage) (*templateStats, error) {
	w, h := tmpl.w, tmpl.h
	n := w * h
	var sum float64
	for _, v := range tmpl.pixels {
		sum += float64(v)
	}
	mean := sum / float64(n)
	centered := make([]float64, n)
	var sumSq float64
	for i, v := range tmpl.pixels {
		c := float64(v) - mean
		centered[i] = c
		sumSq += c * c
	}
	norm := math.Sqrt(sumSq)
	if norm <= epsilon {
		return nil, ErrDegenerateTemplate
	}
	return &templateStats{w: w, h: h, mean: mean, centered: centered, norm: norm}, nil
}
