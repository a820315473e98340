package match

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// templateCacheKey content-addresses a template by its dimensions and an
// xxHash64 of its pixel buffer, so two distinct templates that happen to
// share a width/height never collide — unlike a dimension-only key.
type templateCacheKey struct {
	w, h int
	hash uint64
}

// TemplateCache memoizes templateStats across repeated Best/All calls
// against the same template, the dominant access pattern for UI-automation
// scripts that match the same handful of reference icons over and over.
// Safe for concurrent use: the underlying LRU is internally synchronized.
type TemplateCache struct {
	lru *lru.Cache[templateCacheKey, *templateStats]
}

// DefaultTemplateCacheSize is the capacity used when constructing a
// TemplateCache with NewTemplateCache(0).
const DefaultTemplateCacheSize = 64

// NewTemplateCache builds a TemplateCache with room for size entries. A
// size <= 0 uses DefaultTemplateCacheSize.
func NewTemplateCache(size int) *TemplateCache {
	if size <= 0 {
		size = DefaultTemplateCacheSize
	}
	c, _ := lru.New[templateCacheKey, *templateStats](size)
	return &TemplateCache{lru: c}
}

// lookup returns cached templateStats for tmpl, building and inserting one
// on a cache miss. Returns ErrDegenerateTemplate for a flat template.
func (c *TemplateCache) lookup(tmpl *GrayImage) (*templateStats, error) {
	key := templateCacheKey{w: tmpl.w, h: tmpl.h, hash: hashPixels(tmpl.pixels)}
	if ts, ok := c.lru.Get(key); ok {
		return ts, nil
	}
	ts, err := buildTemplateStats(tmpl)
	if err != nil {
		return nil, err
	}
	c.lru.Add(key, ts)
	return ts, nil
}

func hashPixels(pixels []byte) uint64 {
	return xxhash.Sum64(pixels)
}
