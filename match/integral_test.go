package match

import "testing"

func TestIntegralPairRectSum(t *testing.T) {
	// 3x3 image, pixel(x,y) = x+y*3+1 => 1..9
	px := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9}
	img, err := NewGrayImage(3, 3, px)
	if err != nil {
		t.Fatalf("NewGrayImage: %v", err)
	}
	integ := buildIntegralPair(img)

	full := integ.rectSum(0, 0, 3, 3)
	if full != 45 {
		t.Errorf("expected full sum 45, got %d", full)
	}

	topLeft := integ.rectSum(0, 0, 2, 2)
	// pixels (0,0)=1 (1,0)=2 (0,1)=4 (1,1)=5 => 12
	if topLeft != 12 {
		t.Errorf("expected top-left 2x2 sum 12, got %d", topLeft)
	}

	single := integ.rectSum(1, 1, 2, 2) // pixel at (1,1) = 5
	if single != 5 {
		t.Errorf("expected single-pixel sum 5, got %d", single)
	}

	fullSq := integ.rectSumSq(0, 0, 3, 3)
	var want uint64
	for _, v := range px {
		want += uint64(v) * uint64(v)
	}
	if fullSq != want {
		t.Errorf("expected sumSq %d, got %d", want, fullSq)
	}
}
