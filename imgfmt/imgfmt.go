/*
Package imgfmt centralizes the external image format surface: which file
extensions count as originals, and decoding their dimensions without a full
decode. Importing this package registers the jpeg, png, and bmp decoders
with the standard image package.
*/
package imgfmt

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"

	"github.com/pkg/errors"
)

// allowed extensions, case-insensitive, per spec.md §6.
var allowed = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".bmp": true,
}

// IsOriginal reports whether path's extension marks it as a source image.
func IsOriginal(path string) bool {
	return allowed[strings.ToLower(filepath.Ext(path))]
}

// Dimensions returns the pixel width and height of the image at path
// without decoding pixel data.
func Dimensions(path string) (w, h int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "opening %q", path)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "reading resolution of %q", path)
	}
	return cfg.Width, cfg.Height, nil
}

// ModTime returns the modification time of the file at path.
func ModTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "stat %q", path)
	}
	return info.ModTime(), nil
}
