package match

import (
	"math"
	"testing"
)

// rampImage builds a W x H grayscale image with pixel(x,y) = (x+y) mod 256,
// the S1/S2 scenario source from the spec.
func rampImage(w, h int) *GrayImage {
	px := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px[y*w+x] = byte((x + y) % 256)
		}
	}
	g, err := NewGrayImage(w, h, px)
	if err != nil {
		panic(err)
	}
	return g
}

// cropImage extracts a w x h sub-rectangle of src starting at (x0, y0).
func cropImage(src *GrayImage, x0, y0, w, h int) *GrayImage {
	px := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px[y*w+x] = src.At(x0+x, y0+y)
		}
	}
	g, err := NewGrayImage(w, h, px)
	if err != nil {
		panic(err)
	}
	return g
}

// flatImage builds a w x h image where every pixel equals v.
func flatImage(w, h int, v byte) *GrayImage {
	px := make([]byte, w*h)
	for i := range px {
		px[i] = v
	}
	g, _ := NewGrayImage(w, h, px)
	return g
}

// addConstant returns a copy of img with c added to every pixel, clamped to
// [0, 255].
func addConstant(img *GrayImage, c int) *GrayImage {
	px := make([]byte, len(img.pixels))
	for i, v := range img.pixels {
		nv := int(v) + c
		if nv < 0 {
			nv = 0
		} else if nv > 255 {
			nv = 255
		}
		px[i] = byte(nv)
	}
	g, _ := NewGrayImage(img.w, img.h, px)
	return g
}

func TestS1Identity(t *testing.T) {
	src := rampImage(16, 16)
	tmpl := cropImage(src, 0, 0, 4, 4)
	res, err := Best(src, tmpl, 0.99)
	if err != nil {
		t.Fatalf("Best returned error: %v", err)
	}
	if res == nil {
		t.Fatalf("expected a match, got none")
	}
	if res.X != 0 || res.Y != 0 {
		t.Fatalf("expected (0,0), got (%d,%d)", res.X, res.Y)
	}
	if res.Confidence < 1.0-1e-6 {
		t.Fatalf("expected confidence >= 1-1e-6, got %v", res.Confidence)
	}
}

func TestS2OffCenter(t *testing.T) {
	src := rampImage(16, 16)
	tmpl := cropImage(src, 5, 3, 4, 4)
	res, err := Best(src, tmpl, 0.99)
	if err != nil {
		t.Fatalf("Best returned error: %v", err)
	}
	if res == nil {
		t.Fatalf("expected a match, got none")
	}
	if res.X != 5 || res.Y != 3 {
		t.Fatalf("expected (5,3), got (%d,%d)", res.X, res.Y)
	}
}

func TestS3FlatTemplateRejected(t *testing.T) {
	src := rampImage(16, 16)
	tmpl := flatImage(4, 4, 0)
	_, err := Best(src, tmpl, 0.5)
	if err != ErrDegenerateTemplate {
		t.Fatalf("expected ErrDegenerateTemplate, got %v", err)
	}
}

func TestS4ThresholdFilters(t *testing.T) {
	// A checkerboard source is locally uncorrelated with a ramp template.
	w, h := 32, 32
	px := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/2+y/2)%2 == 0 {
				px[y*w+x] = 10
			} else {
				px[y*w+x] = 245
			}
		}
	}
	src, _ := NewGrayImage(w, h, px)
	tmpl := rampImage(4, 4)
	res, err := Best(src, tmpl, 0.95)
	if err != nil {
		t.Fatalf("Best returned error: %v", err)
	}
	if res != nil {
		t.Fatalf("expected no match above threshold, got %+v", res)
	}
}

func TestS5MultiTargetNMS(t *testing.T) {
	tile := rampImage(16, 16)
	w, h := 64, 16
	px := make([]byte, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px[y*w+x] = tile.At(x%16, y)
		}
	}
	src, _ := NewGrayImage(w, h, px)
	results, err := All(src, tile, 0.9, 10)
	if err != nil {
		t.Fatalf("All returned error: %v", err)
	}
	wantX := []int{0, 16, 32, 48}
	if len(results) != len(wantX) {
		t.Fatalf("expected %d matches, got %d: %+v", len(wantX), len(results), results)
	}
	for i, r := range results {
		if r.X != wantX[i] || r.Y != 0 {
			t.Errorf("match %d: expected (%d,0), got (%d,%d)", i, wantX[i], r.X, r.Y)
		}
		if r.Confidence < 0.9 {
			t.Errorf("match %d: confidence %v below threshold", i, r.Confidence)
		}
	}
}

func TestS6BrightnessInvariance(t *testing.T) {
	src := rampImage(16, 16)
	tmpl := cropImage(src, 0, 0, 4, 4)
	base, err := Best(src, tmpl, 0.5)
	if err != nil || base == nil {
		t.Fatalf("baseline match failed: %v", err)
	}
	bright := addConstant(src, 40)
	brightTmpl := addConstant(tmpl, 40)
	got, err := Best(bright, brightTmpl, 0.5)
	if err != nil || got == nil {
		t.Fatalf("brightened match failed: %v", err)
	}
	if got.X != base.X || got.Y != base.Y {
		t.Fatalf("expected unchanged position, got (%d,%d) vs baseline (%d,%d)", got.X, got.Y, base.X, base.Y)
	}
	if math.Abs(got.Confidence-base.Confidence) > 1e-3 {
		t.Fatalf("expected confidence within 1e-3, got %v vs %v", got.Confidence, base.Confidence)
	}
}

func TestScoresWithinRange(t *testing.T) {
	src := rampImage(40, 40)
	tmpl := cropImage(src, 10, 10, 6, 6)
	results, err := All(src, tmpl, 0.0, 50)
	if err != nil {
		t.Fatalf("All returned error: %v", err)
	}
	for _, r := range results {
		if r.Confidence < -1 || r.Confidence > 1 {
			t.Errorf("confidence %v out of [-1,1]", r.Confidence)
		}
	}
}

func TestBestMatchesFirstOfAll(t *testing.T) {
	src := rampImage(20, 20)
	tmpl := cropImage(src, 2, 2, 5, 5)
	best, err := Best(src, tmpl, 0.5)
	if err != nil {
		t.Fatalf("Best error: %v", err)
	}
	all, err := All(src, tmpl, 0.5, 1)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if best == nil || len(all) == 0 {
		t.Fatalf("expected a match from both Best and All")
	}
	if *best != all[0] {
		t.Fatalf("Best() = %+v, All()[0] = %+v", *best, all[0])
	}
}

func TestInvalidThresholdAndMaxCount(t *testing.T) {
	src := rampImage(10, 10)
	tmpl := cropImage(src, 0, 0, 3, 3)
	if _, err := All(src, tmpl, 1.5, 1); err != ErrInvalidThreshold {
		t.Errorf("expected ErrInvalidThreshold, got %v", err)
	}
	if _, err := All(src, tmpl, 0.5, 0); err != ErrInvalidMaxCount {
		t.Errorf("expected ErrInvalidMaxCount, got %v", err)
	}
}

func TestTemplateLargerThanSource(t *testing.T) {
	src := rampImage(5, 5)
	tmpl := rampImage(10, 10)
	if _, err := All(src, tmpl, 0.5, 1); err != ErrTemplateLargerThanSource {
		t.Errorf("expected ErrTemplateLargerThanSource, got %v", err)
	}
}

func TestDeterminism(t *testing.T) {
	src := rampImage(50, 50)
	tmpl := cropImage(src, 20, 15, 8, 8)
	a, err := All(src, tmpl, 0.5, 10)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	b, err := All(src, tmpl, 0.5, 10)
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("non-deterministic result count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("result %d differs across runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
