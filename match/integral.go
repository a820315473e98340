package match

// integralPair holds the summed-area table S and summed-square-area table
// S2 over a GrayImage, each (w+1)*(h+1) entries, row-major over (w+1)
// columns. Row 0 and column 0 are zero by construction. Built once per
// search per pyramid level and read-only thereafter.
//
// S uses uint64 accumulators: the maximum possible sum over an 8-bit image
// is 255*w*h, and S2's maximum is 65025*w*h — both fit comfortably in
// uint64 for any image with fewer than ~2.8e14 pixels (spec bound).
type integralPair struct {
	s, s2  []uint64
	stride int // w+1
	w, h   int
}

// buildIntegralPair computes S and S2 for img in O(w*h) using the standard
// single-pass recurrence S[x,y] = pixel(x-1,y-1) + S[x-1,y] + S[x,y-1] -
// S[x-1,y-1] (and likewise for S2).
func buildIntegralPair(img *GrayImage) *integralPair {
	w, h := img.w, img.h
	stride := w + 1
	s := make([]uint64, stride*(h+1))
	s2 := make([]uint64, stride*(h+1))
	px := img.pixels
	for y := 1; y <= h; y++ {
		rowOff := y * stride
		prevRowOff := (y - 1) * stride
		srcRowOff := (y - 1) * w
		for x := 1; x <= w; x++ {
			v := uint64(px[srcRowOff+x-1])
			s[rowOff+x] = v + s[rowOff+x-1] + s[prevRowOff+x] - s[prevRowOff+x-1]
			s2[rowOff+x] = v*v + s2[rowOff+x-1] + s2[prevRowOff+x] - s2[prevRowOff+x-1]
		}
	}
	return &integralPair{s: s, s2: s2, stride: stride, w: w, h: h}
}

// rectSum returns the sum over rectangle [x1,y1,x2,y2) (half-open,
// 0 <= x1 < x2 <= w, 0 <= y1 < y2 <= h) from the S table.
func (p *integralPair) rectSum(x1, y1, x2, y2 int) uint64 {
	return p.s[y2*p.stride+x2] - p.s[y1*p.stride+x2] - p.s[y2*p.stride+x1] + p.s[y1*p.stride+x1]
}

// rectSumSq returns the sum-of-squares over the same rectangle from S2.
func (p *integralPair) rectSumSq(x1, y1, x2, y2 int) uint64 {
	return p.s2[y2*p.stride+x2] - p.s2[y1*p.stride+x2] - p.s2[y2*p.stride+x1] + p.s2[y1*p.stride+x1]
}
