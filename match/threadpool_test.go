package match

import "testing"

func TestSetThreadsRejectsNegative(t *testing.T) {
	if err := SetThreads(-1); err != ErrInvalidThreadCount {
		t.Fatalf("expected ErrInvalidThreadCount, got %v", err)
	}
}

func TestSetThreadsExplicit(t *testing.T) {
	if err := SetThreads(3); err != nil {
		t.Fatalf("SetThreads(3): %v", err)
	}
	if got := poolSize(); got != 3 {
		t.Fatalf("expected pool size 3, got %d", got)
	}
}

func TestSetThreadsAutoDetect(t *testing.T) {
	if err := SetThreads(0); err != nil {
		t.Fatalf("SetThreads(0): %v", err)
	}
	if got := poolSize(); got < 1 {
		t.Fatalf("expected auto-detected pool size >= 1, got %d", got)
	}
}
