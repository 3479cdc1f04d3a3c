package shuffle

import "testing"

func TestSimpleTryUniqueNReturnsDistinctItems(t *testing.T) {
	s := NewSimple([]string{"a", "b", "c", "d"})
	got, err := s.TryUniqueN(3)
	if err != nil {
		t.Fatalf("TryUniqueN: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	seen := map[string]bool{}
	for _, k := range got {
		if seen[k] {
			t.Errorf("duplicate item %q", k)
		}
		seen[k] = true
	}
}

func TestSimpleTryUniqueNClampsToPoolSize(t *testing.T) {
	s := NewSimple([]string{"a", "b"})
	got, err := s.TryUniqueN(5)
	if err != nil {
		t.Fatalf("TryUniqueN: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2 (clamped to pool size)", len(got))
	}
}
