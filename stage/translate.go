package stage

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// translate shifts img's visible viewport by v (vertical %, positive moves
// the viewport up) and h (horizontal %, positive moves the viewport right),
// filling revealed edges with white. A zero offset returns img unchanged.
func translate(img image.Image, v, h float64) image.Image {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()

	var insetLeft, marginLeft int
	if h < 0 {
		insetLeft, marginLeft = 0, int(math.Round(h/-100*float64(width)))
	} else {
		insetLeft, marginLeft = int(math.Round(h/100*float64(width))), 0
	}

	var insetTop, marginTop int
	if v > 0 {
		insetTop, marginTop = 0, int(math.Round(v/100*float64(height)))
	} else {
		insetTop, marginTop = int(math.Round(v/-100*float64(height))), 0
	}

	if insetLeft == 0 && marginLeft == 0 && insetTop == 0 && marginTop == 0 {
		return img
	}

	insetLeft = minInt(insetLeft, width)
	insetTop = minInt(insetTop, height)
	marginLeft = minInt(marginLeft, width)
	marginTop = minInt(marginTop, height)

	subW := maxInt(0, width-insetLeft-marginLeft)
	subH := maxInt(0, height-insetTop-marginTop)

	sub := imaging.Crop(img, image.Rect(
		b.Min.X+insetLeft, b.Min.Y+insetTop,
		b.Min.X+insetLeft+subW, b.Min.Y+insetTop+subH,
	))

	out := imaging.New(width, height, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	return imaging.Overlay(out, sub, image.Pt(marginLeft, marginTop), 1.0)
}
