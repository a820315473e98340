package match

import "errors"

// Sentinel errors for the matching engine's public API. Callers should use
// errors.Is to test for a specific failure rather than comparing messages.
var (
	// ErrInvalidDimensions means a raster's buffer length disagrees with
	// width*height*channels, or width/height is zero.
	ErrInvalidDimensions = errors.New("imgmatch: invalid raster dimensions")

	// ErrTemplateLargerThanSource means the template's width or height
	// exceeds the source's.
	ErrTemplateLargerThanSource = errors.New("imgmatch: template larger than source")

	// ErrDegenerateTemplate means the template is flat (t_norm <= epsilon)
	// and cannot be matched.
	ErrDegenerateTemplate = errors.New("imgmatch: degenerate (flat) template")

	// ErrDecodeFailed is surfaced by external decode collaborators; the
	// engine itself never returns it directly.
	ErrDecodeFailed = errors.New("imgmatch: image decode failed")

	// ErrInvalidThreshold means threshold is outside [0, 1].
	ErrInvalidThreshold = errors.New("imgmatch: threshold out of range [0,1]")

	// ErrInvalidMaxCount means max_count < 1.
	ErrInvalidMaxCount = errors.New("imgmatch: max_count must be >= 1")

	// ErrInvalidThreadCount means a negative thread count was requested.
	ErrInvalidThreadCount = errors.New("imgmatch: thread count must be >= 0")
)
