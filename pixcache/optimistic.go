package pixcache

import (
	"container/list"
	"image"
	"image/color"
	"sync"
)

// BGRAFrame is an owned, display-ready pixel buffer in BGRA byte order,
// alpha forced to opaque.
type BGRAFrame struct {
	W, H int
	Pix  []byte // len == W*H*4
}

// Image returns a read-only view of the frame as an image.Image, so a
// cache hit can be drawn directly without decoding a file from disk. It
// aliases Pix rather than copying it.
func (f BGRAFrame) Image() image.Image {
	return bgraImage{f}
}

// bgraImage adapts a BGRAFrame to image.Image without converting its
// pixel buffer.
type bgraImage struct {
	f BGRAFrame
}

func (b bgraImage) ColorModel() color.Model { return color.RGBAModel }

func (b bgraImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.f.W, b.f.H)
}

func (b bgraImage) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.f.W || y >= b.f.H {
		return color.RGBA{}
	}
	i := (y*b.f.W + x) * 4
	return color.RGBA{
		R: b.f.Pix[i+2],
		G: b.f.Pix[i+1],
		B: b.f.Pix[i+0],
		A: 0xff,
	}
}

// OptimisticCache is a bounded LRU mapping a final artifact's path to its
// decoded BGRA frame, letting the Display Adapter skip reading the final
// PNG back off disk. It is only created when the adapter in use supports
// in-memory display (see the display package); capacity is conventionally
// 3 * number-of-displays.
type OptimisticCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[string]*list.Element
}

type optimisticEntry struct {
	key   string
	frame BGRAFrame
}

// NewOptimisticCache returns an OptimisticCache bounded to capacity
// entries.
func NewOptimisticCache(capacity int) *OptimisticCache {
	return &OptimisticCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Get returns the cached frame for path, and touches it as most-recently
// used on a hit.
func (c *OptimisticCache) Get(path string) (BGRAFrame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[path]
	if !ok {
		return BGRAFrame{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*optimisticEntry).frame, true
}

// Insert records frame for path, evicting the least-recently-used entry if
// the cache is at capacity.
func (c *OptimisticCache) Insert(path string, frame BGRAFrame) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[path]; ok {
		el.Value.(*optimisticEntry).frame = frame
		c.order.MoveToFront(el)
		return
	}

	el := c.order.PushFront(&optimisticEntry{key: path, frame: frame})
	c.items[path] = el

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*optimisticEntry).key)
		}
	}
}
