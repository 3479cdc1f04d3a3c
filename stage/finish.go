package stage

import (
	"image"
	"math"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/wallsync/wallsync/build"
	"github.com/wallsync/wallsync/pixcache"
)

// finish runs the finish stage for a single task: decode the scaled
// intermediate (sharing a decode with any other task keyed on the same
// scaled path), translate the viewport, fit it to the display's resolution,
// and store the final artifact: as a PNG on disk when compressing or when
// there is no optimistic cache, and in the optimistic cache when there is
// one.
func (e *Executor) finish(t build.Task, compress bool) {
	if e.Closing.Closed() {
		return
	}

	if e.Optimistic != nil {
		if _, ok := e.Optimistic.Get(t.Final); ok {
			return
		}
	}

	if err := os.MkdirAll(filepath.Dir(t.Final), 0o755); err != nil {
		panic(errors.Wrapf(err, "creating cache directory for %q", t.Final))
	}

	handle := e.FileCache.GetOrInsert(t.Scaled.Path)
	img, err := handle.Get()
	if err != nil {
		panic(errors.Wrapf(err, "reading scaled intermediate %q", t.Scaled.Path))
	}

	if v, h := vertical(t.Props), horizontal(t.Props); v != 0 || h != 0 {
		img = translate(img, v, h)
	}

	mw, mh := t.Display.Width, t.Display.Height
	img = fitToDisplay(e.Resizer, img, mw, mh, compress)

	if err := writeFinish(img, t.Final, compress, e.Optimistic != nil); err != nil {
		panic(errors.Wrapf(err, "writing final artifact %q", t.Final))
	}

	if e.Optimistic != nil {
		e.Optimistic.Insert(t.Final, toBGRA(img))
	}
}

// fitToDisplay scales img, preserving its aspect ratio, until it covers
// (mw, mh) when neither dimension already matches, then center-crops any
// remaining slack. Both the
// resize-trigger condition (AND rather than OR) and the crop-trigger
// condition (comparing iw against mh on the right-hand side rather than ih)
// intentionally preserve the reference implementation's exact checks,
// typo included, rather than the symmetric/corrected versions a fresh
// implementation would write — see DESIGN.md's Open Questions entry.
func fitToDisplay(r Resizer, img image.Image, mw, mh int, compress bool) image.Image {
	b := img.Bounds()
	iw, ih := b.Dx(), b.Dy()

	if iw != mw && ih != mh {
		ratio := math.Max(float64(mw)/float64(iw), float64(mh)/float64(ih))
		newW := int(math.Round(float64(iw) * ratio))
		newH := int(math.Round(float64(ih) * ratio))
		img = r.Resize(img, newW, newH, compress)
		b = img.Bounds()
		iw, ih = b.Dx(), b.Dy()
	}

	if iw != mw || iw != mh {
		x0 := maxInt(0, (iw-mw)/2)
		y0 := maxInt(0, (ih-mh)/2)
		x1 := minInt(iw, x0+mw)
		y1 := minInt(ih, y0+mh)
		img = imaging.Crop(img, image.Rect(b.Min.X+x0, b.Min.Y+y0, b.Min.X+x1, b.Min.Y+y1))
	}

	return img
}

// Resizer is the subset of resize.Auto the finish stage depends on.
type Resizer interface {
	Resize(src image.Image, w, h int, compress bool) image.Image
}

func writeFinish(img image.Image, path string, compress, hasOptimistic bool) error {
	if !compress && hasOptimistic {
		return nil
	}
	level := pngFastest
	if compress {
		level = pngBest
	}
	return imaging.Save(img, path, imaging.PNGCompressionLevel(level))
}

func toBGRA(img image.Image) pixcache.BGRAFrame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]byte, w*h*4)

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			pix[i+0] = byte(bl >> 8)
			pix[i+1] = byte(g >> 8)
			pix[i+2] = byte(r >> 8)
			pix[i+3] = 0xff
			i += 4
		}
	}
	return pixcache.BGRAFrame{W: w, H: h, Pix: pix}
}
