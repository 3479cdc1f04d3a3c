/*
Package build implements the Freshness Oracle (C3) and Build Planner (C4):
given a wallpaper identity and the set of target displays, it decides which
(display, final-path) pairs are stale, deduplicates identical intermediate
and final paths within the build, and computes the integer upscale factor
for each surviving entry.
*/
package build

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/wallsync/wallsync/config"
	"github.com/wallsync/wallsync/id"
	"github.com/wallsync/wallsync/imgfmt"
	"github.com/wallsync/wallsync/monitor"
)

// IntermediateFile tags a path with whether this build must produce it
// (MustWrite) or whether it already exists and can be reused (!MustWrite).
type IntermediateFile struct {
	Path      string
	MustWrite bool
}

// Task is a single surviving (display, settings) build record: everything
// the Stage Executor needs to run crop, upscale, and finish for one
// uncached artifact.
type Task struct {
	Display monitor.Display
	Props   *config.ImageProperties // resolved settings, may be nil

	Cropped *IntermediateFile // nil when no crop/pad is needed
	Scale   int
	Scaled  IntermediateFile
	Final   string
}

// Planner computes the set of Tasks for one wallpaper's build.
type Planner struct {
	// TempDir is the per-wallpaper scratch directory cropped/scaled
	// intermediates are written into.
	TempDir string
	// CacheOrTempRoot is the final-artifact root passed to CachedPath: the
	// persistent cache directory for Library identities. Temp identities
	// ignore it and place finals under their own temp root.
	CacheOrTempRoot string
}

// Plan computes the Tasks needed to bring ident up to date for every
// display in displays, given the current properties store. It returns an
// empty, nil-error result when the source image is empty or every display
// is already fresh.
func (p *Planner) Plan(ident id.Identity, displays []monitor.Display, store config.Store) ([]Task, error) {
	mtime, err := imgfmt.ModTime(ident.OriginalPath())
	if err != nil {
		return nil, errors.Wrapf(err, "reading source mtime for %q", ident.OriginalPath())
	}

	w, h, err := imgfmt.Dimensions(ident.OriginalPath())
	if err != nil {
		return nil, errors.Wrapf(err, "reading source resolution for %q", ident.OriginalPath())
	}
	res := id.Res{W: w, H: h}
	if res.Empty() {
		return nil, nil
	}

	dedupe := map[string]bool{}

	type survivor struct {
		d     monitor.Display
		final string
		props *config.ImageProperties
	}
	var survivors []survivor

	for _, d := range displays {
		props := ident.Props(store, d)
		final := ident.CachedPath(p.CacheOrTempRoot, d, props)

		if isFresh(final, mtime) {
			continue
		}
		if dedupe[final] {
			continue
		}
		dedupe[final] = true
		survivors = append(survivors, survivor{d: d, final: final, props: props})
	}

	tasks := make([]Task, 0, len(survivors))
	for _, s := range survivors {
		var cropped *IntermediateFile
		if rel, ok := ident.CroppedRelPath(s.props); ok {
			f := claim(dedupe, filepath.Join(p.TempDir, rel))
			cropped = &f
		}

		scale := computeScale(res, s.props, s.d)
		scaledRel := ident.UpscaledRelPath(scale, s.props)
		scaled := claim(dedupe, filepath.Join(p.TempDir, scaledRel))

		tasks = append(tasks, Task{
			Display: s.d,
			Props:   s.props,
			Cropped: cropped,
			Scale:   scale,
			Scaled:  scaled,
			Final:   s.final,
		})
	}

	return tasks, nil
}

// claim implements the per-path dedup rule: the first caller for a path
// decides MustWrite from whether the path exists on disk; every subsequent
// caller for the same path is forced to !MustWrite, since an earlier entry
// in this same build already owns writing it.
func claim(dedupe map[string]bool, path string) IntermediateFile {
	if dedupe[path] {
		return IntermediateFile{Path: path, MustWrite: false}
	}
	dedupe[path] = true
	return IntermediateFile{Path: path, MustWrite: !fileExists(path)}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func isFresh(path string, srcMtime time.Time) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return !info.ModTime().Before(srcMtime)
}

// computeScale implements spec.md §4.4's scale formula: the smallest
// power-of-two at least large enough to cover the display, clamped to
// [1, 32].
func computeScale(res id.Res, props *config.ImageProperties, d monitor.Display) int {
	r := res.ApplyCropPad(props)
	if r.Empty() || d.Empty() {
		return 1
	}

	s := math.Max(float64(d.Width)/float64(r.W), float64(d.Height)/float64(r.H))
	pow := math.Max(math.Log2(s), 0)
	scale := int(math.Round(math.Exp2(math.Ceil(pow))))

	if scale < 1 {
		scale = 1
	}
	if scale > 32 {
		scale = 32
	}
	return scale
}
