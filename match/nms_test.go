package match

import "testing"

func TestNonMaxSuppressDropsOverlapping(t *testing.T) {
	w, h := 10, 10
	cands := []matchCandidate{
		{x: 0, y: 0, score: 0.99},
		{x: 2, y: 2, score: 0.95}, // center within radius of the first, should be dropped
		{x: 20, y: 0, score: 0.90},
	}
	out := nonMaxSuppress(cands, w, h, 10)
	if len(out) != 2 {
		t.Fatalf("expected 2 survivors, got %d: %+v", len(out), out)
	}
	if out[0].x != 0 || out[0].y != 0 {
		t.Errorf("expected highest-score candidate first, got %+v", out[0])
	}
	if out[1].x != 20 {
		t.Errorf("expected the far candidate to survive, got %+v", out[1])
	}
}

func TestNonMaxSuppressRespectsMaxCount(t *testing.T) {
	cands := []matchCandidate{
		{x: 0, y: 0, score: 0.99},
		{x: 100, y: 0, score: 0.95},
		{x: 200, y: 0, score: 0.90},
	}
	out := nonMaxSuppress(cands, 8, 8, 2)
	if len(out) != 2 {
		t.Fatalf("expected maxCount=2 survivors, got %d", len(out))
	}
}

func TestBetterCandidateTieBreak(t *testing.T) {
	// Equal score: smaller y wins.
	if !betterCandidate(0.5, 1, 5, 0.5, 2, 0) {
		t.Error("expected smaller y to win on tied score")
	}
	// Equal score and y: smaller x wins.
	if !betterCandidate(0.5, 1, 3, 0.5, 1, 5) {
		t.Error("expected smaller x to win on tied score and y")
	}
	// Higher score always wins regardless of position.
	if !betterCandidate(0.9, 100, 100, 0.8, 0, 0) {
		t.Error("expected higher score to win")
	}
}
