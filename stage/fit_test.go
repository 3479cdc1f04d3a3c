package stage

import (
	"image"
	"image/color"
	"testing"
)

type fakeResizer struct{ calls int }

func (f *fakeResizer) Resize(src image.Image, w, h int, compress bool) image.Image {
	f.calls++
	return solid(w, h, color.RGBA{A: 0xff})
}

func TestFitToDisplayExactMatchSkipsResize(t *testing.T) {
	r := &fakeResizer{}
	src := solid(1920, 1080, color.RGBA{A: 0xff})
	out := fitToDisplay(r, src, 1920, 1080, true)

	if r.calls != 0 {
		t.Errorf("resize called %d times for an already-exact image, want 0", r.calls)
	}
	if b := out.Bounds(); b.Dx() != 1920 || b.Dy() != 1080 {
		t.Errorf("bounds = %v, want 1920x1080", b)
	}
}

func TestFitToDisplayResizesAndCrops(t *testing.T) {
	r := &fakeResizer{}
	src := solid(3840, 2160, color.RGBA{A: 0xff})
	out := fitToDisplay(r, src, 1920, 1200, false)

	if r.calls != 1 {
		t.Errorf("resize called %d times, want 1", r.calls)
	}
	if b := out.Bounds(); b.Dx() != 1920 || b.Dy() != 1200 {
		t.Errorf("bounds = %v, want 1920x1200", b)
	}
}

// TestFitToDisplayLegacyCropConditionMissesHeightOnSquareDisplay documents
// the preserved (not corrected) crop-trigger condition: it compares iw
// against mh, not ih against mh, so a square display whose image is already
// the right width but too tall is left uncropped.
func TestFitToDisplayLegacyCropConditionMissesHeightOnSquareDisplay(t *testing.T) {
	r := &fakeResizer{}
	src := solid(1080, 1200, color.RGBA{A: 0xff})
	out := fitToDisplay(r, src, 1080, 1080, false)

	if r.calls != 0 {
		t.Errorf("resize called %d times, want 0 (iw already matches mw)", r.calls)
	}
	if b := out.Bounds(); b.Dx() != 1080 || b.Dy() != 1200 {
		t.Errorf("bounds = %v, want 1080x1200 (legacy crop condition doesn't catch ih != mh here)", b)
	}
}

// TestFitToDisplayLegacyConditionSkipsResizeOnWidthMatch documents the
// preserved (not symmetric) resize-trigger condition: when only one
// dimension already matches the display, no resize runs even though the
// other dimension doesn't, and the subsequent crop step is a no-op on that
// axis since it can't shrink a too-small dimension.
func TestFitToDisplayLegacyConditionSkipsResizeOnWidthMatch(t *testing.T) {
	r := &fakeResizer{}
	src := solid(1920, 1000, color.RGBA{A: 0xff})
	out := fitToDisplay(r, src, 1920, 1080, false)

	if r.calls != 0 {
		t.Errorf("resize called %d times, want 0 (legacy AND condition false when width already matches)", r.calls)
	}
	if b := out.Bounds(); b.Dy() != 1000 {
		t.Errorf("bounds = %v, height should be left untouched at 1000", b)
	}
}
