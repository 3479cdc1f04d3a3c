/*
Package pixcache implements the two in-process pixel caches described in
spec.md §4.6: FileCache, a small LRU of decoded upscaled images keyed by
scaled-path with coalesced concurrent initialization, and OptimisticCache,
an optional LRU of final BGRA frames keyed by final path. Neither cache
ever explicitly invalidates an entry — keys are content-addressed by
fingerprint, so a stale hit is never an incorrect one.
*/
package pixcache

import (
	"container/list"
	"image"
	"os"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Handle is a shared, once-initialized decode of a single scaled-path
// image. Multiple finish-stage goroutines racing for the same path share
// one Handle and one decode.
type Handle struct {
	path string
	once sync.Once
	img  image.Image
	err  error
}

// Get performs the decode on the first call and returns the cached result
// on every subsequent call, including concurrent ones.
func (h *Handle) Get() (image.Image, error) {
	h.once.Do(func() {
		h.img, h.err = decode(h.path)
	})
	return h.img, h.err
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %q", path)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %q", path)
	}
	return img, nil
}

// FileCache is a bounded LRU mapping a scaled artifact's path to a shared
// Handle. The critical section inserting/promoting a handle is short; the
// expensive decode happens outside the lock via Handle's once-init.
type FileCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	items    map[string]*list.Element
}

type fileCacheEntry struct {
	key    string
	handle *Handle
}

// NewFileCache returns a FileCache bounded to capacity entries.
func NewFileCache(capacity int) *FileCache {
	return &FileCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

// GetOrInsert returns the Handle for path, creating and registering a new
// one if this is the first request for it. The returned Handle's Get may
// still be decoding when this returns; callers call Get outside any lock.
func (c *FileCache) GetOrInsert(path string) *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[path]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*fileCacheEntry).handle
	}

	h := &Handle{path: path}
	el := c.order.PushFront(&fileCacheEntry{key: path, handle: h})
	c.items[path] = el

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*fileCacheEntry).key)
		}
	}

	return h
}
