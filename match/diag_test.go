package match

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a bytes.Buffer so the poll loop below can safely read
// while StartPoolWatch's goroutine writes concurrently.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestStartPoolWatchLogs(t *testing.T) {
	buf := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartPoolWatch(ctx, 10*time.Millisecond, logger)

	deadline := time.After(time.Second)
	for {
		if strings.Contains(buf.String(), "pool-watch") {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected a pool-watch log line within 1s, got: %q", buf.String())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestStartPoolWatchNilLoggerNoop(t *testing.T) {
	// Must not panic or spawn a goroutine that blocks forever.
	StartPoolWatch(context.Background(), time.Millisecond, nil)
}
