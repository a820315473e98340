package match

import (
	"runtime"
	"sync"
)

// searchMode selects what a searchFull call needs to produce.
type searchMode int

const (
	// modeBest asks only for the argmax; no score map is retained.
	modeBest searchMode = iota
	// modeAll asks for every anchor scoring at or above minScore.
	modeAll
)

// searchFull evaluates the NCC kernel at every anchor in
// [0, W-w] x [0, H-h], partitioning rows across the configured worker pool.
// Each worker owns a disjoint horizontal strip and writes only into its own
// region; no locking is needed. In modeBest only the best-per-worker
// candidate is reported, and a final reduction applies the (y, x)
// lexicographic tie-break required for deterministic results. In modeAll
// every anchor scoring >= minScore is reported.
func searchFull(src *GrayImage, integ *integralPair, t *templateStats, mode searchMode, minScore float64) []matchCandidate {
	w, h := t.w, t.h
	W, H := src.w, src.h
	rows := H - h + 1
	if rows <= 0 || W-w+1 <= 0 {
		return nil
	}

	workers := poolSize()
	if workers > rows {
		workers = rows
	}
	if workers < 1 {
		workers = 1
	}

	type workerResult struct {
		best  matchCandidate
		found bool
		all   []matchCandidate
	}

	results := make([]workerResult, workers)
	rowsPerWorker := (rows + workers - 1) / workers

	var wg sync.WaitGroup
	for wi := 0; wi < workers; wi++ {
		y0 := wi * rowsPerWorker
		y1 := y0 + rowsPerWorker
		if y1 > rows {
			y1 = rows
		}
		if y0 >= y1 {
			continue
		}
		wg.Add(1)
		go func(idx, y0, y1 int) {
			defer wg.Done()
			var res workerResult
			res.best.score = negInf
			for y := y0; y < y1; y++ {
				for x := 0; x <= W-w; x++ {
					score := nccAt(src, integ, t, x, y)
					if score == negInf {
						continue
					}
					if mode == modeAll {
						if score >= minScore {
							res.all = append(res.all, matchCandidate{x: x, y: y, score: score})
						}
						continue
					}
					if betterCandidate(score, y, x, res.best.score, res.best.y, res.best.x) || !res.found {
						res.best = matchCandidate{x: x, y: y, score: score}
						res.found = true
					}
				}
			}
			results[idx] = res
		}(wi, y0, y1)
	}
	wg.Wait()

	if mode == modeAll {
		var all []matchCandidate
		for _, r := range results {
			all = append(all, r.all...)
		}
		return all
	}

	best := matchCandidate{score: negInf}
	found := false
	for _, r := range results {
		if !r.found {
			continue
		}
		if !found || betterCandidate(r.best.score, r.best.y, r.best.x, best.score, best.y, best.x) {
			best = r.best
			found = true
		}
	}
	if !found {
		return nil
	}
	return []matchCandidate{best}
}

// betterCandidate reports whether (score, y, x) should win over
// (otherScore, otherY, otherX) under the public tie-break contract: higher
// score wins; on equal score, smaller y wins, then smaller x.
func betterCandidate(score float64, y, x int, otherScore float64, otherY, otherX int) bool {
	if score != otherScore {
		return score > otherScore
	}
	if y != otherY {
		return y < otherY
	}
	return x < otherX
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}
