package match

// GrayImage is an 8-bit, row-major, contiguous grayscale raster. Once built
// it is immutable; every engine stage treats it as read-only.
type GrayImage struct {
	w, h   int
	pixels []byte // length w*h, row-major
}

// NewGrayImage builds a GrayImage from a pre-converted row-major byte
// buffer. It fails with ErrInvalidDimensions when the buffer length
// disagrees with w*h, or when w or h is non-positive.
func NewGrayImage(w, h int, pixels []byte) (*GrayImage, error) {
	if w <= 0 || h <= 0 || len(pixels) != w*h {
		return nil, ErrInvalidDimensions
	}
	return &GrayImage{w: w, h: h, pixels: pixels}, nil
}

// Dims returns the raster's (width, height).
func (g *GrayImage) Dims() (int, int) { return g.w, g.h }

// At returns the pixel value at (x, y). Callers must keep x, y in bounds;
// this is a hot-path accessor with no bounds-check beyond the slice's own.
func (g *GrayImage) At(x, y int) byte { return g.pixels[y*g.w+x] }

// Pixels returns the underlying row-major buffer. Callers must not mutate
// it — GrayImage is immutable once constructed.
func (g *GrayImage) Pixels() []byte { return g.pixels }

// MatchResult is a single match: the top-left anchor of the matched
// rectangle in source coordinates, and the NCC confidence in [-1, 1].
type MatchResult struct {
	X, Y       int
	Confidence float64
}

// matchCandidate is the internal, pre-threshold-filter counterpart of
// MatchResult produced by the NCC kernel and consumed by the searcher,
// pyramid driver, and NMS.
type matchCandidate struct {
	x, y  int
	score float64
}

const epsilon = 1e-10
