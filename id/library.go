package id

import (
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/wallsync/wallsync/config"
	"github.com/wallsync/wallsync/monitor"
)

// Library is a LibraryID: a forward-slash-separated path relative to the
// originals directory root, canonicalized platform-independently.
type Library struct {
	originalsDir string
	rel          string // always "/"-separated, validated normal components
}

// NewLibrary builds a Library from a native filesystem path abs, known to
// live under originalsDir. This is the read-side boundary where native
// separators are translated to the canonical "/"-form.
func NewLibrary(originalsDir, abs string) (*Library, error) {
	rel, err := filepath.Rel(originalsDir, abs)
	if err != nil {
		return nil, errors.Wrapf(err, "computing relative path for %q", abs)
	}
	return newLibraryFromRel(originalsDir, filepath.ToSlash(rel))
}

// NewLibraryFromSlash builds a Library directly from an already-"/"-form
// relative path, e.g. one read back out of a persisted shuffler or CLI
// argument.
func NewLibraryFromSlash(originalsDir, rel string) (*Library, error) {
	return newLibraryFromRel(originalsDir, rel)
}

func newLibraryFromRel(originalsDir, rel string) (*Library, error) {
	if rel == "" {
		return nil, errors.New("empty wallpaper path")
	}
	for _, part := range strings.Split(rel, "/") {
		switch part {
		case "", ".", "..":
			return nil, errors.Errorf("wallpaper path %q has a non-normal component", rel)
		}
	}
	return &Library{originalsDir: originalsDir, rel: rel}, nil
}

// SlashPath is the canonical "/"-form relative path, used as both the
// properties-store key and the shuffler's item identity.
func (l *Library) SlashPath() string { return l.rel }

func (l *Library) basename() string {
	_, b := path.Split(l.rel)
	return b
}

// OriginalPath implements Identity. This is the write-side boundary:
// "/"-form is translated to the native separator here and in CachedPath.
func (l *Library) OriginalPath() string {
	return filepath.Join(l.originalsDir, filepath.FromSlash(l.rel))
}

// Props implements Identity via the global property resolution rule.
func (l *Library) Props(store config.Store, d monitor.Display) *config.ImageProperties {
	return config.Resolve(store, l.rel, d)
}

// CroppedRelPath implements Identity.
func (l *Library) CroppedRelPath(props *config.ImageProperties) (string, bool) {
	if props == nil {
		return "", false
	}
	s := props.CropPadString()
	if s == "" {
		return "", false
	}
	return l.basename() + s + ".png", true
}

// UpscaledRelPath implements Identity. Note the trailing "-" before ".png"
// is always present for Library identities — this is intentional, kept for
// cache compatibility with the tool this was derived from (see the Open
// Questions entry in DESIGN.md): Temp's equivalent has no trailing dash.
func (l *Library) UpscaledRelPath(scale int, props *config.ImageProperties) string {
	s := l.basename()
	if props != nil {
		s += props.CropPadString()
		s += "-"
		if props.Denoise != nil {
			s += strconv.Itoa(*props.Denoise) + "-"
		}
	}
	s += strconv.Itoa(scale) + "-.png"
	return s
}

// CachedPath implements Identity.
func (l *Library) CachedPath(root string, d monitor.Display, props *config.ImageProperties) string {
	p := filepath.Join(d.CacheDir(root), filepath.FromSlash(l.rel))
	if props != nil {
		if full := props.FullString(); full != "" {
			p += full
		}
	}
	return p + ".png"
}
