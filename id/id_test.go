package id

import (
	"testing"

	"github.com/wallsync/wallsync/config"
)

func TestApplyCropPadShrinksAndGrows(t *testing.T) {
	top, left := 10, 5
	r := Res{W: 100, H: 100}

	shrunk := r.ApplyCropPad(&config.ImageProperties{Top: &top, Left: &left})
	if shrunk.W != 95 || shrunk.H != 90 {
		t.Errorf("shrunk = %+v, want {95 90}", shrunk)
	}

	negTop, negLeft := -10, -5
	grown := r.ApplyCropPad(&config.ImageProperties{Top: &negTop, Left: &negLeft})
	if grown.W != 105 || grown.H != 110 {
		t.Errorf("grown = %+v, want {105 110}", grown)
	}
}

func TestApplyCropPadNilPropsIsIdentity(t *testing.T) {
	r := Res{W: 42, H: 24}
	if got := r.ApplyCropPad(nil); got != r {
		t.Errorf("ApplyCropPad(nil) = %+v, want %+v", got, r)
	}
}

func TestApplyCropPadClampsAtZero(t *testing.T) {
	top := 1000
	r := Res{W: 100, H: 100}
	got := r.ApplyCropPad(&config.ImageProperties{Top: &top})
	if got.H != 0 {
		t.Errorf("H = %d, want clamped to 0", got.H)
	}
	if !got.Empty() {
		t.Errorf("result with a zero dimension should report Empty")
	}
}

func TestResEmpty(t *testing.T) {
	tests := []struct {
		r    Res
		want bool
	}{
		{Res{W: 1, H: 1}, false},
		{Res{W: 0, H: 1}, true},
		{Res{W: 1, H: 0}, true},
		{Res{W: -1, H: 1}, true},
	}
	for _, tt := range tests {
		if got := tt.r.Empty(); got != tt.want {
			t.Errorf("%+v.Empty() = %v, want %v", tt.r, got, tt.want)
		}
	}
}
