package resize

import (
	"image"
	"image/color"
	"testing"
)

func TestCPUResizeExactDimensions(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	out := CPU{}.Resize(src, 20, 5)
	b := out.Bounds()
	if b.Dx() != 20 || b.Dy() != 5 {
		t.Errorf("bounds = %v, want 20x5", b)
	}
}

func TestAutoFallsBackToCPUWithoutGPU(t *testing.T) {
	a := NewAuto(nil)
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	out := a.Resize(src, 8, 8, false)
	if b := out.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("bounds = %v, want 8x8", b)
	}
}

func TestAutoFallsBackWhenGPUUnavailable(t *testing.T) {
	gpu := NewGPU("")
	a := NewAuto(gpu)
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 60), A: 0xff})
		}
	}

	out := a.Resize(src, 8, 8, false)
	if b := out.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("bounds = %v, want 8x8 (CPU fallback since the GPU resizer always reports ErrUnavailable)", b)
	}
}
