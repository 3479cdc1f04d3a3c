package stage

import (
	"image/color"

	"github.com/wallsync/wallsync/config"
)

func top(p *config.ImageProperties) int {
	if p == nil || p.Top == nil {
		return 0
	}
	return *p.Top
}

func bottom(p *config.ImageProperties) int {
	if p == nil || p.Bottom == nil {
		return 0
	}
	return *p.Bottom
}

func left(p *config.ImageProperties) int {
	if p == nil || p.Left == nil {
		return 0
	}
	return *p.Left
}

func right(p *config.ImageProperties) int {
	if p == nil || p.Right == nil {
		return 0
	}
	return *p.Right
}

func background(p *config.ImageProperties) color.RGBA {
	if p == nil || p.Background == nil {
		return color.RGBA{A: 0xff}
	}
	return *p.Background
}

func denoiseOr1(p *config.ImageProperties) int {
	if p == nil || p.Denoise == nil {
		return 1
	}
	return *p.Denoise
}

func vertical(p *config.ImageProperties) float64 {
	if p == nil || p.Vertical == nil {
		return 0
	}
	return *p.Vertical
}

func horizontal(p *config.ImageProperties) float64 {
	if p == nil || p.Horizontal == nil {
		return 0
	}
	return *p.Horizontal
}

func positiveOrZero(v int) int {
	if v > 0 {
		return v
	}
	return 0
}

// splitInset turns a signed inset into a (source-side crop, canvas-side
// margin) pair: positive values crop inward, negative values pad outward.
func splitInset(v int) (inset, margin int) {
	switch {
	case v > 0:
		return v, 0
	case v < 0:
		return 0, -v
	default:
		return 0, 0
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
