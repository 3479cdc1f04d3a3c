package stage

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/wallsync/wallsync/build"
	"github.com/wallsync/wallsync/id"
)

// crop runs the crop/pad stage for a single task: reads the original image,
// carves out the sub-rectangle positive insets select, and pastes it onto a
// background-filled canvas sized to the crop/pad result, offset by whatever
// margin negative insets (padding) requested.
func (e *Executor) crop(ident id.Identity, t build.Task) {
	if e.Closing.Closed() {
		return
	}

	src, err := imaging.Open(ident.OriginalPath())
	if err != nil {
		panic(errors.Wrapf(err, "reading image %q", ident.OriginalPath()))
	}

	srcRes := id.FromImage(src)
	newRes := srcRes.ApplyCropPad(t.Props)
	if newRes.Empty() {
		panic(errors.Errorf("crop/pad of %q leaves an empty image", ident.OriginalPath()))
	}

	insetLeft, marginLeft := splitInset(left(t.Props))
	insetTop, marginTop := splitInset(top(t.Props))
	insetRight := positiveOrZero(right(t.Props))
	insetBottom := positiveOrZero(bottom(t.Props))

	subRect := image.Rect(insetLeft, insetTop, srcRes.W-insetRight, srcRes.H-insetBottom)
	sub := imaging.Crop(src, subRect)

	out := imaging.New(newRes.W, newRes.H, background(t.Props))
	out = imaging.Overlay(out, sub, image.Pt(marginLeft, marginTop), 1.0)

	// Fast compression here: this is a scratch intermediate, re-read once by
	// the upscaler and then discarded.
	if err := imaging.Save(out, t.Cropped.Path, imaging.PNGCompressionLevel(pngFastest)); err != nil {
		panic(errors.Wrapf(err, "writing cropped intermediate %q", t.Cropped.Path))
	}
}
