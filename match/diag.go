package match

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// StartPoolWatch launches a goroutine that periodically logs the configured
// thread-pool size against the live goroutine count and heap stats, useful
// for diagnosing long pyramid searches over very large sources. It is
// off-by-default, best-effort instrumentation that never affects matching
// results; stop it by canceling ctx. Deliberately portable: it reports only
// Go runtime stats (goroutines, heap), not native RSS, so it works
// identically on every platform this engine runs on.
func StartPoolWatch(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		return
	}
	if interval <= 0 {
		interval = time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				metrics.Read(samples)
				goroutines := samples[0].Value.Uint64()
				var ms runtime.MemStats
				runtime.ReadMemStats(&ms)
				logger.Info("pool-watch",
					slog.Int("configured_workers", poolSize()),
					slog.Uint64("goroutines", goroutines),
					slog.Uint64("heap_alloc", ms.HeapAlloc),
					slog.Uint64("heap_inuse", ms.HeapInuse),
				)
			}
		}
	}()
}
