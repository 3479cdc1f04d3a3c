package id

import (
	"path/filepath"
	"strconv"
	"sync"

	"github.com/wallsync/wallsync/config"
	"github.com/wallsync/wallsync/monitor"
)

// Temp is a TempID: a transient identity for a previewed or not-yet-
// installed wallpaper. Its current path and settings are mutable and
// guarded for concurrent read/write, but the filename captured at creation
// time — used to derive cropped/upscaled paths — never changes, so
// installing the file into the library doesn't invalidate prior builds.
type Temp struct {
	tmpRoot string
	fname   string // original filename, captured once at creation

	mu   sync.RWMutex
	path string

	propsMu sync.RWMutex
	props   *config.ImageProperties
}

// NewTemp creates a Temp identity for the absolute path abs, rooted under
// tmpRoot for its cached artifacts.
func NewTemp(tmpRoot, abs string, props *config.ImageProperties) *Temp {
	return &Temp{
		tmpRoot: tmpRoot,
		fname:   filepath.Base(abs),
		path:    abs,
		props:   props,
	}
}

// SetOriginalPath updates the current source path, e.g. once a previewed
// image has been installed into the library.
func (t *Temp) SetOriginalPath(p string) {
	t.mu.Lock()
	t.path = p
	t.mu.Unlock()
}

// SetProps replaces the current settings, e.g. from an interactive edit.
func (t *Temp) SetProps(p *config.ImageProperties) {
	t.propsMu.Lock()
	t.props = p
	t.propsMu.Unlock()
}

// OriginalPath implements Identity.
func (t *Temp) OriginalPath() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.path
}

// Props implements Identity; the display argument is unused since a Temp's
// settings aren't resolved from the properties store.
func (t *Temp) Props(_ config.Store, _ monitor.Display) *config.ImageProperties {
	t.propsMu.RLock()
	defer t.propsMu.RUnlock()
	return t.props.Clone()
}

// CroppedRelPath implements Identity, using the filename captured at
// creation rather than the current (possibly moved-to-library) path.
func (t *Temp) CroppedRelPath(props *config.ImageProperties) (string, bool) {
	if props == nil {
		return "", false
	}
	s := props.CropPadString()
	if s == "" {
		return "", false
	}
	return t.fname + s + ".png", true
}

// UpscaledRelPath implements Identity. Unlike Library, there is no trailing
// "-" before ".png" here; see the Identity.UpscaledRelPath doc on Library.
func (t *Temp) UpscaledRelPath(scale int, props *config.ImageProperties) string {
	s := t.fname
	if props != nil {
		s += props.CropPadString()
		s += "-"
		if props.Denoise != nil {
			s += strconv.Itoa(*props.Denoise) + "-"
		}
	}
	s += strconv.Itoa(scale) + ".png"
	return s
}

// CachedPath implements Identity.
func (t *Temp) CachedPath(_ string, d monitor.Display, props *config.ImageProperties) string {
	p := filepath.Join(t.tmpRoot, d.CacheDirName(), t.fname)
	if props != nil {
		if full := props.FullString(); full != "" {
			p += full
		}
	}
	return p + ".png"
}
