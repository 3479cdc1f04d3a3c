package stage

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestTranslateZeroIsNoop(t *testing.T) {
	src := solid(10, 10, color.RGBA{R: 1, G: 2, B: 3, A: 0xff})
	out := translate(src, 0, 0)
	if out != image.Image(src) {
		t.Errorf("translate with zero offsets should return the source image unchanged")
	}
}

func TestTranslatePreservesBounds(t *testing.T) {
	tests := []struct {
		name string
		v, h float64
	}{
		{"vertical up", 25, 0},
		{"vertical down", -25, 0},
		{"horizontal right", 0, 25},
		{"horizontal left", 0, -25},
		{"diagonal", 10, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := solid(100, 80, color.RGBA{R: 10, G: 20, B: 30, A: 0xff})
			out := translate(src, tt.v, tt.h)
			gotB := out.Bounds()
			wantB := src.Bounds()
			if gotB.Dx() != wantB.Dx() || gotB.Dy() != wantB.Dy() {
				t.Errorf("translate(%v, %v) bounds = %v, want same size as %v", tt.v, tt.h, gotB, wantB)
			}
		})
	}
}

func TestTranslateRevealsWhiteEdge(t *testing.T) {
	src := solid(20, 20, color.RGBA{R: 0, G: 0, B: 0, A: 0xff})
	out := translate(src, 50, 0) // viewport moves up: top rows reveal white
	r, g, b, a := out.At(0, 0).RGBA()
	if r>>8 != 0xff || g>>8 != 0xff || b>>8 != 0xff || a>>8 != 0xff {
		t.Errorf("top row after upward translate = (%d,%d,%d,%d), want opaque white", r>>8, g>>8, b>>8, a>>8)
	}
}
