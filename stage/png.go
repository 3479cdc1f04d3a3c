package stage

import "image/png"

// Go's image/png encoder exposes only a compression-level knob, not the
// per-scanline filter-type selection the reference pipeline uses (Sub for
// scratch intermediates, NoFilter for finals); no library in the dependency
// set adds that control, so compression level is the closest available
// approximation (see DESIGN.md).
const (
	pngFastest = png.BestSpeed
	pngBest    = png.BestCompression
)
