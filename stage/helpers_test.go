package stage

import (
	"testing"

	"github.com/wallsync/wallsync/config"
)

func TestSplitInset(t *testing.T) {
	tests := []struct {
		v          int
		wantInset  int
		wantMargin int
	}{
		{10, 10, 0},
		{-10, 0, 10},
		{0, 0, 0},
	}
	for _, tt := range tests {
		inset, margin := splitInset(tt.v)
		if inset != tt.wantInset || margin != tt.wantMargin {
			t.Errorf("splitInset(%d) = (%d, %d), want (%d, %d)", tt.v, inset, margin, tt.wantInset, tt.wantMargin)
		}
	}
}

func TestDenoiseOr1Default(t *testing.T) {
	if got := denoiseOr1(nil); got != 1 {
		t.Errorf("denoiseOr1(nil) = %d, want 1", got)
	}
	d := 3
	if got := denoiseOr1(&config.ImageProperties{Denoise: &d}); got != 3 {
		t.Errorf("denoiseOr1 = %d, want 3", got)
	}
}
