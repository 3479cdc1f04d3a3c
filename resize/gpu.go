package resize

import (
	"image"
	"sync"

	"github.com/pkg/errors"

	vk "github.com/goki/vulkan"
)

// ErrUnavailable is returned by GPU.Resize when no usable device was found
// at initialization time.
var ErrUnavailable = errors.New("gpu resizer unavailable")

// GPU is a lazily initialized Vulkan-backed resizer. Vulkan initialization
// is attempted exactly once, on the first call to Resize, and never
// repeated.
//
// No GPU resize kernel is implemented (see DESIGN.md): Resize returns
// ErrUnavailable on every call, whether or not initialization succeeded,
// so callers always resize on the CPU path.
type GPU struct {
	// Prefix holds the configured gpu_prefix. No device enumeration or
	// selection is performed, so Resize does not consult it.
	Prefix string

	once      sync.Once
	available bool
	initErr   error
}

// NewGPU returns a GPU resizer recording prefix as its Prefix. No Vulkan
// calls are made until the first Resize call.
func NewGPU(prefix string) *GPU { return &GPU{Prefix: prefix} }

func (g *GPU) ensureInit() error {
	g.once.Do(func() {
		if err := vk.Init(); err != nil {
			g.initErr = errors.Wrap(err, "initializing vulkan")
			return
		}
		g.available = true
	})
	return g.initErr
}

// Resize triggers the one-time Vulkan initialization and returns
// ErrUnavailable; it never produces an image.
func (g *GPU) Resize(src image.Image, w, h int) (image.Image, error) {
	if err := g.ensureInit(); err != nil {
		return nil, ErrUnavailable
	}
	if !g.available {
		return nil, ErrUnavailable
	}
	return nil, ErrUnavailable
}
