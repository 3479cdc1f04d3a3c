package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pkg/errors"

	"github.com/wallsync/wallsync/config"
	"github.com/wallsync/wallsync/id"
	"github.com/wallsync/wallsync/monitor"
	"github.com/wallsync/wallsync/sweep"
)

// cmdRandom picks a random selection from the library (one per display)
// and applies it, without touching the persistent cache's freshness
// semantics beyond what the normal build planner already does.
func (a *app) cmdRandom(args []string) error {
	displays, err := a.adapter.List()
	if err != nil {
		return errors.Wrap(err, "listing displays")
	}

	picks, err := a.shuffler.TryUniqueN(len(displays))
	if err != nil {
		return errors.Wrap(err, "selecting random wallpapers")
	}
	if len(picks) == 0 {
		return errors.New("no library wallpapers available")
	}

	frames := map[string][]monitor.Display{}
	for i, d := range displays {
		rel := picks[i%len(picks)]
		lib, err := id.NewLibraryFromSlash(a.cfg.OriginalsDir, rel)
		if err != nil {
			return err
		}

		tasks, err := a.planner.Plan(lib, []monitor.Display{d}, a.store)
		if err != nil {
			return errors.Wrapf(err, "planning %q", rel)
		}
		a.executor.Process(context.Background(), lib, tasks, false)

		props := lib.Props(a.store, d)
		final := lib.CachedPath(a.cfg.CacheDir, d, props)
		frames[final] = append(frames[final], d)
	}

	return a.adapter.Apply(frames, a.readFinal)
}

// cmdSync runs the Cache Sweeper.
func (a *app) cmdSync(args []string) error {
	fs := flag.NewFlagSet("sync", flag.ExitOnError)
	cleanMonitors := fs.Bool("clean-monitors", false, "also delete stale files under resolutions no longer attached")
	fs.Parse(args)

	displays, err := a.adapter.List()
	if err != nil {
		return errors.Wrap(err, "listing displays")
	}

	s := &sweep.Sweeper{
		OriginalsDir:  a.cfg.OriginalsDir,
		CacheDir:      a.cfg.CacheDir,
		TempDir:       a.planner.TempDir,
		Store:         a.store,
		Displays:      displays,
		Planner:       a.planner,
		Executor:      a.executor,
		Shuffler:      a.shuffler,
		CleanMonitors: *cleanMonitors,
		Parallelism:   runtime.NumCPU(),
		Log:           a.log,
		Closing:       a.closing,
	}

	result, err := s.Run(context.Background())
	if err != nil {
		return err
	}

	a.log.Info("sync complete", "deleted", len(result.Deleted), "unreferenced_keys", len(result.UnreferencedKeys))
	for _, k := range result.UnreferencedKeys {
		a.log.Warning("properties entry has no matching wallpaper", "key", k)
	}
	return nil
}

// cmdPreview builds and displays a single file with ad hoc settings,
// without writing anything into the persistent cache.
func (a *app) cmdPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	v := fs.Float64("v", 0, "vertical viewport offset, percent")
	h := fs.Float64("h", 0, "horizontal viewport offset, percent")
	top := fs.Int("t", 0, "top crop/pad inset")
	bottom := fs.Int("b", 0, "bottom crop/pad inset")
	left := fs.Int("l", 0, "left crop/pad inset")
	right := fs.Int("r", 0, "right crop/pad inset")
	bg := fs.String("bg", "black", `background colour ("black", "white", or RRGGBB)`)
	denoise := fs.Int("d", 0, "upscaler denoise level")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("preview requires a FILE argument")
	}
	file := fs.Arg(0)
	// Flags may also follow FILE; parse whatever comes after it.
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return err
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}

	props := &config.ImageProperties{}
	if *v != 0 {
		props.Vertical = v
	}
	if *h != 0 {
		props.Horizontal = h
	}
	if *top != 0 {
		props.Top = top
	}
	if *bottom != 0 {
		props.Bottom = bottom
	}
	if *left != 0 {
		props.Left = left
	}
	if *right != 0 {
		props.Right = right
	}
	if *denoise != 0 {
		props.Denoise = denoise
	}
	if c, ok := config.ParseColour(*bg); ok {
		props.Background = &c
	}

	tmp := id.NewTemp(a.planner.TempDir, abs, props)

	displays, err := a.adapter.List()
	if err != nil {
		return errors.Wrap(err, "listing displays")
	}

	tasks, err := a.planner.Plan(tmp, displays, a.store)
	if err != nil {
		return err
	}
	a.executor.Process(context.Background(), tmp, tasks, false)

	frames := map[string][]monitor.Display{}
	for _, d := range displays {
		final := tmp.CachedPath(a.planner.TempDir, d, props)
		frames[final] = append(frames[final], d)
	}
	return a.adapter.Apply(frames, a.readFinal)
}

// cmdListMonitors prints the attached displays.
func (a *app) cmdListMonitors(args []string) error {
	displays, err := a.adapter.List()
	if err != nil {
		return err
	}
	for i, d := range displays {
		fmt.Printf("%d: %dx%d at (%d,%d)\n", i, d.Width, d.Height, d.Left, d.Top)
	}
	return nil
}

// cmdShowGPUs reports whether the GPU resizer is currently usable.
func (a *app) cmdShowGPUs(args []string) error {
	_, err := a.gpu.Resize(nil, 0, 0)
	switch {
	case err == nil:
		fmt.Println("gpu resizer: available")
	default:
		fmt.Println("gpu resizer: unavailable (falling back to CPU):", err)
	}
	return nil
}

// cmdInteractive reports that the interactive shell is an external
// collaborator this core doesn't implement.
func (a *app) cmdInteractive(args []string) error {
	return errors.New("interactive mode is an external collaborator, not implemented by this core")
}

// readFinal implements the display Apply callback: it tries the
// optimistic pixel cache first (if one is wired) and only decodes the
// final artifact from disk on a miss, per spec.md §4.9 step 2.
func (a *app) readFinal(path string) (image.Image, error) {
	if a.optimistic != nil {
		if frame, ok := a.optimistic.Get(path); ok {
			return frame.Image(), nil
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	return img, err
}
