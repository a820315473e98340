package match

import "sort"

// packageResults filters candidates by score >= threshold, sorts them
// descending by score (ties broken by the (y, x) contract), and truncates
// to maxCount.
func packageResults(candidates []matchCandidate, threshold float64, maxCount int) []MatchResult {
	filtered := make([]matchCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.score >= threshold {
			filtered = append(filtered, c)
		}
	}
	sort.Slice(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		return betterCandidate(a.score, a.y, a.x, b.score, b.y, b.x)
	})
	if len(filtered) > maxCount {
		filtered = filtered[:maxCount]
	}
	out := make([]MatchResult, len(filtered))
	for i, c := range filtered {
		out[i] = MatchResult{X: c.x, Y: c.y, Confidence: c.score}
	}
	return out
}
