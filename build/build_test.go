package build

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wallsync/wallsync/config"
	"github.com/wallsync/wallsync/id"
	"github.com/wallsync/wallsync/monitor"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 1, G: 1, B: 1, A: 0xff})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %q: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %q: %v", path, err)
	}
}

func newFixture(t *testing.T) (*Planner, *id.Library) {
	t.Helper()
	dir := t.TempDir()

	originals := filepath.Join(dir, "originals")
	cache := filepath.Join(dir, "cache")
	temp := filepath.Join(dir, "temp")
	for _, d := range []string{originals, cache, temp} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	writePNG(t, filepath.Join(originals, "wall.png"), 200, 100)

	lib, err := id.NewLibrary(originals, filepath.Join(originals, "wall.png"))
	if err != nil {
		t.Fatalf("NewLibrary: %v", err)
	}

	return &Planner{TempDir: temp, CacheOrTempRoot: cache}, lib
}

func TestPlanProducesOneTaskPerStaleDisplay(t *testing.T) {
	p, lib := newFixture(t)
	displays := []monitor.Display{{Width: 1920, Height: 1080}}

	tasks, err := p.Plan(lib, displays, config.Store{})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(tasks))
	}
	if tasks[0].Scaled.Path == "" || tasks[0].Final == "" {
		t.Errorf("task missing paths: %+v", tasks[0])
	}
}

func TestPlanDedupsIdenticalDisplays(t *testing.T) {
	p, lib := newFixture(t)
	displays := []monitor.Display{
		{Width: 1920, Height: 1080},
		{Width: 1920, Height: 1080},
	}

	tasks, err := p.Plan(lib, displays, config.Store{})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("len(tasks) = %d, want 1 (duplicate display should collapse to a single final path)", len(tasks))
	}
}

func TestPlanSkipsFreshFinal(t *testing.T) {
	p, lib := newFixture(t)
	displays := []monitor.Display{{Width: 1920, Height: 1080}}

	final := lib.CachedPath(p.CacheOrTempRoot, displays[0], nil)
	if err := os.MkdirAll(filepath.Dir(final), 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, final, 1920, 1080)

	// Make the final artifact newer than the source by constructing it
	// after the source write in newFixture; an explicit Chtimes guards
	// against filesystem mtime granularity flakiness.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(final, future, future); err != nil {
		t.Fatal(err)
	}

	tasks, err := p.Plan(lib, displays, config.Store{})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("len(tasks) = %d, want 0 (final artifact is already fresh)", len(tasks))
	}
}

func TestComputeScaleIsPowerOfTwoClamped(t *testing.T) {
	tests := []struct {
		res  id.Res
		d    monitor.Display
		want int
	}{
		{id.Res{W: 100, H: 100}, monitor.Display{Width: 100, Height: 100}, 1},
		{id.Res{W: 100, H: 100}, monitor.Display{Width: 150, Height: 100}, 2},
		{id.Res{W: 100, H: 100}, monitor.Display{Width: 1000, Height: 100}, 16},
		{id.Res{W: 10, H: 10}, monitor.Display{Width: 100000, Height: 100000}, 32},
	}
	for _, tt := range tests {
		got := computeScale(tt.res, nil, tt.d)
		if got != tt.want {
			t.Errorf("computeScale(%+v, nil, %+v) = %d, want %d", tt.res, tt.d, got, tt.want)
		}
		// scale must always be a power of two.
		if got&(got-1) != 0 {
			t.Errorf("computeScale result %d is not a power of two", got)
		}
	}
}
