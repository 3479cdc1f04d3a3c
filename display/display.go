/*
Package display defines the Display Adapter (C9) abstraction: given the
mapping of final-artifact paths to the displays that should show them, an
Adapter applies pixels to the desktop atomically (from the user's
perspective, no partial/flickering update) using whatever platform
mechanism is available. Concrete adapters live in the x11 and win32
subpackages.
*/
package display

import (
	"image"

	"github.com/wallsync/wallsync/monitor"
)

// Adapter is a platform-specific desktop wallpaper backend.
type Adapter interface {
	// List enumerates the currently attached displays.
	List() ([]monitor.Display, error)

	// SupportsInMemory reports whether Apply's read callback is ever
	// skipped in favour of an already-decoded frame the caller supplies
	// through context outside this interface (the optimistic pixel
	// cache); adapters that can't avoid a disk round trip return false.
	SupportsInMemory() bool

	// Apply publishes, for each final path in frames, the image that
	// path names to every monitor.Display in its slice. read decodes a
	// final path to an image.Image for adapters (or cache misses) that
	// must go to disk. Implementations build the complete desktop image
	// before publishing any of it, so displays never show a partial
	// update.
	Apply(frames map[string][]monitor.Display, read func(string) (image.Image, error)) error
}
