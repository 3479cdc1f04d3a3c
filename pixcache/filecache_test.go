package pixcache

import "testing"

func TestFileCacheGetOrInsertSharesHandle(t *testing.T) {
	c := NewFileCache(2)
	h1 := c.GetOrInsert("a.png")
	h2 := c.GetOrInsert("a.png")
	if h1 != h2 {
		t.Errorf("GetOrInsert for the same path should return the same Handle")
	}
}

func TestFileCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewFileCache(2)
	a := c.GetOrInsert("a.png")
	b := c.GetOrInsert("b.png")
	c.GetOrInsert("a.png") // touch a, b becomes LRU
	c.GetOrInsert("c.png") // evicts b

	// a.png should still be the original handle since it was protected by
	// the touch above.
	aAgain := c.GetOrInsert("a.png")
	if aAgain != a {
		t.Fatalf("a.png was evicted despite being touched after b.png")
	}

	// b.png was evicted, so requesting it again creates a new Handle.
	first := c.GetOrInsert("b.png")
	if first == b {
		t.Errorf("b.png should have been evicted as least recently used")
	}
	second := c.GetOrInsert("b.png")
	if first != second {
		t.Errorf("b.png was re-inserted as a new Handle unexpectedly between these two calls")
	}
}
