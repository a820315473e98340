package match

import (
	"math"
	"sort"
)

// nonMaxSuppress deduplicates overlapping candidates. Candidates are sorted
// by score descending (ties broken by the (y, x) lexicographic contract
// from the searcher), then scanned in order; a candidate is accepted unless
// its center lies within a min(w,h)/2 Chebyshev box of an already-accepted
// center. Stops once maxCount are accepted or the input is exhausted.
func nonMaxSuppress(candidates []matchCandidate, w, h, maxCount int) []matchCandidate {
	sorted := make([]matchCandidate, len(candidates))
	copy(sorted, candidates)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		return betterCandidate(a.score, a.y, a.x, b.score, b.y, b.x)
	})

	minDim := w
	if h < minDim {
		minDim = h
	}
	radius := float64(minDim) / 2

	accepted := make([]matchCandidate, 0, maxCount)
	halfW := float64(w) / 2
	halfH := float64(h) / 2
	for _, c := range sorted {
		if len(accepted) >= maxCount {
			break
		}
		cx := float64(c.x) + halfW
		cy := float64(c.y) + halfH
		overlaps := false
		for _, a := range accepted {
			ax := float64(a.x) + halfW
			ay := float64(a.y) + halfH
			if chebyshev(cx, cy, ax, ay) < radius {
				overlaps = true
				break
			}
		}
		if !overlaps {
			accepted = append(accepted, c)
		}
	}
	return accepted
}

func chebyshev(x1, y1, x2, y2 float64) float64 {
	return math.Max(math.Abs(x1-x2), math.Abs(y1-y2))
}
