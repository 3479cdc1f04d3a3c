package config

import (
	"image/color"
	"testing"

	"github.com/wallsync/wallsync/monitor"
)

func TestCropPadStringEmptyWhenUnset(t *testing.T) {
	var p *ImageProperties
	if got := p.CropPadString(); got != "" {
		t.Errorf("nil.CropPadString() = %q, want empty", got)
	}

	p = &ImageProperties{}
	if got := p.CropPadString(); got != "" {
		t.Errorf("empty.CropPadString() = %q, want empty", got)
	}
}

func TestCropPadStringDeterministic(t *testing.T) {
	top := 10
	p1 := &ImageProperties{Top: &top}
	p2 := &ImageProperties{Top: &top}
	if p1.CropPadString() != p2.CropPadString() {
		t.Errorf("identical settings produced different fingerprints: %q vs %q", p1.CropPadString(), p2.CropPadString())
	}
}

func TestFullStringExtendsCropPadString(t *testing.T) {
	top := 10
	v := 5.5
	p := &ImageProperties{Top: &top, Vertical: &v}
	cp := p.CropPadString()
	full := p.FullString()
	if full == cp {
		t.Errorf("FullString should extend CropPadString when vertical/horizontal/denoise are set")
	}
	if len(full) <= len(cp) {
		t.Errorf("FullString() = %q should be longer than CropPadString() = %q", full, cp)
	}
}

func TestParseColourRoundTrip(t *testing.T) {
	tests := []string{"black", "white", "ff00aa"}
	for _, s := range tests {
		c, ok := ParseColour(s)
		if !ok {
			t.Fatalf("ParseColour(%q) failed", s)
		}
		if got := ColourToString(c); got != s {
			t.Errorf("ColourToString(ParseColour(%q)) = %q, want %q", s, got, s)
		}
	}
}

func TestParseColourRejectsInvalid(t *testing.T) {
	for _, s := range []string{"", "red", "1234", "gggggg"} {
		if _, ok := ParseColour(s); ok {
			t.Errorf("ParseColour(%q) should fail", s)
		}
	}
}

func TestResolvePrefersAspectOverride(t *testing.T) {
	top16 := 16
	top4 := 4
	store := Store{
		"wall.png": &ImageProperties{
			Top: &top4,
			Nested: map[string]map[string]*ImageProperties{
				"16": {"9": {Top: &top16}},
			},
		},
	}

	got := Resolve(store, "wall.png", monitor.Display{Width: 1920, Height: 1080})
	if got == nil || got.Top == nil || *got.Top != 16 {
		t.Errorf("Resolve with matching 16:9 display = %+v, want top=16", got)
	}

	gotDefault := Resolve(store, "wall.png", monitor.Display{Width: 800, Height: 600})
	if gotDefault == nil || gotDefault.Top == nil || *gotDefault.Top != 4 {
		t.Errorf("Resolve with non-matching aspect ratio = %+v, want top=4 (fallback)", gotDefault)
	}
}

func TestResolveMissingKeyIsNil(t *testing.T) {
	store := Store{}
	if got := Resolve(store, "missing.png", monitor.Display{Width: 1, Height: 1}); got != nil {
		t.Errorf("Resolve for missing key = %+v, want nil", got)
	}
}

func TestIsEmpty(t *testing.T) {
	var nilP *ImageProperties
	if !nilP.IsEmpty() {
		t.Errorf("nil properties should be empty")
	}

	top := 0
	if p := (&ImageProperties{Top: &top}); p.IsEmpty() {
		t.Errorf("properties with a set field (even zero-valued pointer) should not be empty")
	}
}

func TestBackgroundColourPreservedThroughCropPadString(t *testing.T) {
	bg := color.RGBA{R: 1, G: 2, B: 3, A: 0xff}
	p1 := &ImageProperties{Background: &bg}
	bg2 := color.RGBA{R: 1, G: 2, B: 3, A: 0xff}
	p2 := &ImageProperties{Background: &bg2}
	if p1.CropPadString() != p2.CropPadString() {
		t.Errorf("identical background colours produced different fingerprints")
	}

	bg3 := color.RGBA{R: 9, G: 9, B: 9, A: 0xff}
	p3 := &ImageProperties{Background: &bg3}
	if p1.CropPadString() == p3.CropPadString() {
		t.Errorf("different background colours produced identical fingerprints")
	}
}
