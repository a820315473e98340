package match

import "log/slog"

// pyramidMinTemplate and pyramidMinSource are the engagement thresholds
// from spec.md §4.F: pyramid search only pays off once the template is
// large enough to amortize per-level overhead and the source is large
// enough to have levels worth building.
const (
	pyramidMinTemplate  = 64
	pyramidMinSource    = 256
	pyramidMaxLevels    = 3
	pyramidMinCoarseDim = 8
	relaxedMargin       = 0.15
	refineRadius        = 2
)


// level bundles a GrayImage with its precomputed integral pair and template
// stats, one per pyramid level, so refinement never recomputes either.
type level struct {
	src    *GrayImage
	integ  *integralPair
	tmpl   *GrayImage
	tStats *templateStats
}

// shouldUsePyramid reports whether pyramid-accelerated search should engage
// for the given source/template dimensions, per spec.md §4.F's trigger.
func shouldUsePyramid(srcW, srcH, tmplW, tmplH int) bool {
	minT := tmplW
	if tmplH < minT {
		minT = tmplH
	}
	minS := srcW
	if srcH < minS {
		minS = srcH
	}
	return minT >= pyramidMinTemplate && minS >= pyramidMinSource
}

// pickLevelCount chooses L (capped at pyramidMaxLevels) such that the
// template at the coarsest level still has min(w>>L, h>>L) >= 8.
func pickLevelCount(tmplW, tmplH int) int {
	l := 0
	for l < pyramidMaxLevels {
		w := tmplW >> (l + 1)
		h := tmplH >> (l + 1)
		if w < pyramidMinCoarseDim || h < pyramidMinCoarseDim {
			break
		}
		l++
	}
	return l
}

// downsample2x produces a 2x box-downsampled copy of img, rounded to
// nearest with ties to even, per spec.md §4.F. Dimensions are
// max(1, w>>1) x max(1, h>>1).
func downsample2x(img *GrayImage) *GrayImage {
	w, h := img.w, img.h
	nw := w / 2
	if nw < 1 {
		nw = 1
	}
	nh := h / 2
	if nh < 1 {
		nh = 1
	}
	out := make([]byte, nw*nh)
	for y := 0; y < nh; y++ {
		sy0 := 2 * y
		sy1 := sy0 + 1
		if sy1 >= h {
			sy1 = sy0
		}
		for x := 0; x < nw; x++ {
			sx0 := 2 * x
			sx1 := sx0 + 1
			if sx1 >= w {
				sx1 = sx0
			}
			sum := int(img.pixels[sy0*w+sx0]) + int(img.pixels[sy0*w+sx1]) +
				int(img.pixels[sy1*w+sx0]) + int(img.pixels[sy1*w+sx1])
			out[y*nw+x] = roundTiesToEven(sum)
		}
	}
	return &GrayImage{w: nw, h: nh, pixels: out}
}

// roundTiesToEven implements "round to nearest, ties to even" for the sum
// of 4 pixels divided by 4 (i.e. average of a 2x2 box).
func roundTiesToEven(sum int) byte {
	q := sum / 4
	r := sum % 4
	switch r {
	case 0:
		return byte(q)
	case 2:
		// Exactly halfway: round to even.
		if q%2 == 0 {
			return byte(q)
		}
		return byte(q + 1)
	default:
		return byte(q + (r*2+4)/8) // r==1 or r==3: straightforward round
	}
}

// buildPyramidLevels constructs L+1 levels (0 = original) for both src and
// tmpl, each with its own integral pair and template stats. Construction
// stops early if the template becomes degenerate at a coarser level; levels
// are returned up to (and including) the last valid one. When
// cache is non-nil, level 0's template stats are looked up through it
// instead of being rebuilt, so a caller that supplied WithTemplateCache
// still benefits once the pyramid path engages. Coarser levels are
// downsampled per-call and aren't worth caching.
func buildPyramidLevels(src, tmpl *GrayImage, levels int, cache *TemplateCache) ([]*level, error) {
	out := make([]*level, 0, levels+1)
	curSrc, curTmpl := src, tmpl
	for i := 0; i <= levels; i++ {
		var stats *templateStats
		var err error
		if i == 0 {
			stats, err = templateStatsFor(curTmpl, cache)
		} else {
			stats, err = buildTemplateStats(curTmpl)
		}
		if err != nil {
			if i == 0 {
				return nil, err
			}
			break
		}
		out = append(out, &level{
			src:    curSrc,
			integ:  buildIntegralPair(curSrc),
			tmpl:   curTmpl,
			tStats: stats,
		})
		if i < levels {
			curSrc = downsample2x(curSrc)
			curTmpl = downsample2x(curTmpl)
		}
	}
	return out, nil
}

// pyramidSearch performs coarse-to-fine refinement per spec.md §4.F and
// returns level-0 candidates above threshold. maxCandidatesCoarse bounds how
// many coarse-level candidates get refined (K_coarse in the spec). cache, if
// non-nil, is consulted for level-0 template stats.
func pyramidSearch(src, tmpl *GrayImage, threshold float64, maxCandidatesCoarse int, logger *slog.Logger, cache *TemplateCache) ([]matchCandidate, error) {
	levels := pickLevelCount(tmpl.w, tmpl.h)
	pyr, err := buildPyramidLevels(src, tmpl, levels, cache)
	if err != nil {
		return nil, err
	}
	coarseIdx := len(pyr) - 1
	coarse := pyr[coarseIdx]

	relaxed := threshold - relaxedMargin
	if relaxed < 0 {
		relaxed = 0
	}
	cands := searchFull(coarse.src, coarse.integ, coarse.tStats, modeAll, relaxed)
	cands = topByScore(cands, maxCandidatesCoarse)
	if logger != nil {
		logger.Debug("pyramid coarse search",
			slog.Int("level", coarseIdx), slog.Int("candidates", len(cands)))
	}

	for li := coarseIdx - 1; li >= 0; li-- {
		lv := pyr[li]
		var refined []matchCandidate
		for _, c := range cands {
			cx, cy := c.x*2, c.y*2
			x0 := cx - refineRadius
			y0 := cy - refineRadius
			x1 := cx + refineRadius
			y1 := cy + refineRadius
			maxX := lv.src.w - lv.tmpl.w
			maxY := lv.src.h - lv.tmpl.h
			if x0 < 0 {
				x0 = 0
			}
			if y0 < 0 {
				y0 = 0
			}
			if x1 > maxX {
				x1 = maxX
			}
			if y1 > maxY {
				y1 = maxY
			}
			levelThreshold := relaxed
			if li == 0 {
				levelThreshold = threshold
			}
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					score := nccAt(lv.src, lv.integ, lv.tStats, x, y)
					if score == negInf || score < levelThreshold {
						continue
					}
					refined = append(refined, matchCandidate{x: x, y: y, score: score})
				}
			}
		}
		cands = refined
		if logger != nil {
			logger.Debug("pyramid refine", slog.Int("level", li), slog.Int("candidates", len(cands)))
		}
	}

	final := make([]matchCandidate, 0, len(cands))
	for _, c := range cands {
		if c.score >= threshold {
			final = append(final, c)
		}
	}
	return final, nil
}

// topByScore returns the top n candidates by the (y, x) tie-break contract,
// or all of them if there are fewer than n.
func topByScore(cands []matchCandidate, n int) []matchCandidate {
	if len(cands) <= n {
		return cands
	}
	sorted := make([]matchCandidate, len(cands))
	copy(sorted, cands)
	// insertion-free selection is fine here: n is small (K_coarse), cands
	// is bounded by the coarse level's anchor count.
	for i := 0; i < len(sorted); i++ {
		best := i
		for j := i + 1; j < len(sorted); j++ {
			a, b := sorted[j], sorted[best]
			if betterCandidate(a.score, a.y, a.x, b.score, b.y, b.x) {
				best = j
			}
		}
		sorted[i], sorted[best] = sorted[best], sorted[i]
		if i+1 >= n {
			break
		}
	}
	return sorted[:n]
}
