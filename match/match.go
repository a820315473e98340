// Package match implements a Normalized Cross-Correlation template matching
// engine: grayscale conversion, integral-image construction, the NCC search
// kernel, pyramid-accelerated coarse-to-fine refinement, non-maximum
// suppression, and the parallelization scheme that makes all of the above
// tractable on multi-megapixel images. It consumes already-decoded 8-bit
// grayscale rasters and emits (x, y, confidence) triples; image decoding,
// host-language bindings, and file-path I/O are external collaborators
// (see package adapters/decode for the decode side).
package match

import (
	"log/slog"

	"github.com/google/uuid"
)

// DefaultThreshold and DefaultMaxCount are the parameter defaults when a
// caller omits them.
const (
	DefaultThreshold = 0.8
	DefaultMaxCount  = 10
)

// options configures an individual Best/All/AllRaw call. Unset fields use
// zero-cost defaults: no logging, no template cache.
type options struct {
	logger *slog.Logger
	cache  *TemplateCache
}

// Option configures a single match call.
type Option func(*options)

// WithLogger attaches a *slog.Logger for debug-level tracing of pyramid
// level transitions and candidate counts. Nil is safe and means "no
// logging", the default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTemplateCache reuses a TemplateCache across calls so repeated matches
// against the same template skip recomputing its statistics.
func WithTemplateCache(cache *TemplateCache) Option {
	return func(o *options) { o.cache = cache }
}

func resolveOptions(opts []Option) *options {
	o := &options{}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// Best finds the single best match of tmpl in src. It returns nil (no
// error) when the best score falls below threshold — "no match above
// threshold" is not an error condition.
func Best(src, tmpl *GrayImage, threshold float64, opts ...Option) (*MatchResult, error) {
	results, err := All(src, tmpl, threshold, 1, opts...)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// All finds every non-overlapping match of tmpl in src scoring at or above
// threshold, sorted descending by confidence, truncated to maxCount.
func All(src, tmpl *GrayImage, threshold float64, maxCount int, opts ...Option) ([]MatchResult, error) {
	if threshold < 0 || threshold > 1 {
		return nil, ErrInvalidThreshold
	}
	if maxCount < 1 {
		return nil, ErrInvalidMaxCount
	}
	if tmpl.w > src.w || tmpl.h > src.h {
		return nil, ErrTemplateLargerThanSource
	}

	o := resolveOptions(opts)
	logger := o.logger
	if logger != nil {
		logger = logger.With(slog.String("search_id", uuid.NewString()))
	}

	var candidates []matchCandidate
	if shouldUsePyramid(src.w, src.h, tmpl.w, tmpl.h) {
		kCoarse := maxCount * 2
		if kCoarse < 16 {
			kCoarse = 16
		}
		if maxCount == 1 {
			kCoarse = 4
		}
		var err error
		candidates, err = pyramidSearch(src, tmpl, threshold, kCoarse, logger, o.cache)
		if err != nil {
			return nil, err
		}
	} else {
		stats, err := templateStatsFor(tmpl, o.cache)
		if err != nil {
			return nil, err
		}
		integ := buildIntegralPair(src)
		candidates = searchFull(src, integ, stats, modeAll, threshold)
	}

	accepted := nonMaxSuppress(candidates, tmpl.w, tmpl.h, maxCount)
	return packageResults(accepted, threshold, maxCount), nil
}

// AllRaw is a documented alias of All operating directly on already-decoded
// rasters. It exists to give the raw-pixel multi-target entry point a
// public, named surface — resolving the ambiguity around whether a raw
// variant belongs in the public API (see DESIGN.md).
func AllRaw(src, tmpl *GrayImage, threshold float64, maxCount int, opts ...Option) ([]MatchResult, error) {
	return All(src, tmpl, threshold, maxCount, opts...)
}

func templateStatsFor(tmpl *GrayImage, cache *TemplateCache) (*templateStats, error) {
	if cache != nil {
		return cache.lookup(tmpl)
	}
	return buildTemplateStats(tmpl)
}
