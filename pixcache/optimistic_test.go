package pixcache

import (
	"image/color"
	"testing"
)

func TestBGRAFrameImageConvertsChannelOrder(t *testing.T) {
	frame := BGRAFrame{W: 1, H: 1, Pix: []byte{10, 20, 30, 0xff}} // B, G, R, A
	img := frame.Image()

	if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Fatalf("bounds = %v, want 1x1", b)
	}

	got := img.At(0, 0)
	want := color.RGBA{R: 30, G: 20, B: 10, A: 0xff}
	if got != want {
		t.Errorf("At(0,0) = %+v, want %+v", got, want)
	}
}

func TestOptimisticCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewOptimisticCache(2)
	c.Insert("a", BGRAFrame{W: 1, H: 1})
	c.Insert("b", BGRAFrame{W: 2, H: 2})

	// touch "a" so "b" becomes least-recently-used.
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a hit for %q", "a")
	}
	c.Insert("c", BGRAFrame{W: 3, H: 3})

	if _, ok := c.Get("b"); ok {
		t.Errorf("%q should have been evicted", "b")
	}
	if _, ok := c.Get("a"); !ok {
		t.Errorf("%q should still be cached", "a")
	}
	if _, ok := c.Get("c"); !ok {
		t.Errorf("%q should be cached", "c")
	}
}

func TestOptimisticCacheInsertOverwritesExisting(t *testing.T) {
	c := NewOptimisticCache(2)
	c.Insert("a", BGRAFrame{W: 1, H: 1})
	c.Insert("a", BGRAFrame{W: 9, H: 9})

	frame, ok := c.Get("a")
	if !ok {
		t.Fatalf("expected a hit for %q", "a")
	}
	if frame.W != 9 {
		t.Errorf("frame = %+v, want the overwritten value", frame)
	}
}
