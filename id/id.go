/*
Package id implements the fingerprinting scheme that maps a wallpaper
identity, its resolved properties, and a target display to the three
deterministic paths the rest of the pipeline keys on: the cropped
intermediate, the upscaled intermediate, and the persistent final artifact.

There are two identity kinds, both satisfying Identity: Library, a stable
slash-separated path relative to the originals directory, and Temp, a
mutable absolute path used for preview/interactive sessions. LibraryID
paths always round-trip through the forward-slash canonical form; the two
boundaries where that translation happens are NewLibrary (native form read
from the filesystem to "/"-form) and the absolute-path builders
OriginalPath and CachedPath ("/"-form to native form).
*/
package id

import (
	"image"

	"github.com/wallsync/wallsync/config"
	"github.com/wallsync/wallsync/monitor"
)

// Identity is the capability set both wallpaper identity kinds expose.
type Identity interface {
	// OriginalPath is the absolute, native-separator path to the source
	// image bytes.
	OriginalPath() string

	// Props resolves this identity's effective settings for display d.
	Props(store config.Store, d monitor.Display) *config.ImageProperties

	// CachedPath is the absolute path of the final artifact for (d, props).
	CachedPath(root string, d monitor.Display, props *config.ImageProperties) string

	// CroppedRelPath is the cropped intermediate's path relative to a
	// temp directory, and whether cropping/padding is needed at all.
	CroppedRelPath(props *config.ImageProperties) (string, bool)

	// UpscaledRelPath is the upscaled intermediate's path relative to a
	// temp directory.
	UpscaledRelPath(scale int, props *config.ImageProperties) string
}

// Res is a width/height pair, used for both source and display resolutions.
type Res struct {
	W, H int
}

// FromImage derives a Res from a decoded image's bounds.
func FromImage(img image.Image) Res {
	b := img.Bounds()
	return Res{W: b.Dx(), H: b.Dy()}
}

// Empty reports whether either dimension is non-positive.
func (r Res) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// ApplyCropPad returns the resolution after the crop/pad insets in props are
// applied (positive insets shrink, negative insets grow). A result with a
// non-positive dimension is reported via Empty.
func (r Res) ApplyCropPad(props *config.ImageProperties) Res {
	if props == nil {
		return r
	}
	w := r.W - intOr(props.Left) - intOr(props.Right)
	h := r.H - intOr(props.Top) - intOr(props.Bottom)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Res{W: w, H: h}
}

func intOr(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
