/*
Package sweep implements the Cache Sweeper (C8), the core loop of the
`sync` command: it rebuilds every library wallpaper at full compression,
computes the set of final paths that rebuild touched, then reconciles the
on-disk cache against that set — deleting anything stale and pruning any
directory that deletion leaves empty.
*/
package sweep

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/wallsync/wallsync/build"
	"github.com/wallsync/wallsync/closing"
	"github.com/wallsync/wallsync/config"
	"github.com/wallsync/wallsync/id"
	"github.com/wallsync/wallsync/imgfmt"
	"github.com/wallsync/wallsync/monitor"
	"github.com/wallsync/wallsync/shuffle"
	"github.com/wallsync/wallsync/stage"
)

// Logger is the subset of logging.Logger the sweeper uses. Defined locally
// so this package doesn't force a concrete logging dependency on callers
// that don't need one.
type Logger interface {
	Info(msg string, args ...interface{})
	Warning(msg string, args ...interface{})
}

// Result is the outcome of one sweep.
type Result struct {
	Deleted         []string
	UnreferencedKeys []string
}

// Sweeper reconciles the cache directory against the library.
type Sweeper struct {
	OriginalsDir  string
	CacheDir      string
	TempDir       string
	Store         config.Store
	Displays      []monitor.Display
	Planner       *build.Planner
	Executor      *stage.Executor
	Shuffler      shuffle.Shuffler
	CleanMonitors bool
	Parallelism   int
	Log           Logger
	// Closing is checked between items in the top-level rebuild loop
	// (spec.md §5) so an interrupted sync winds down promptly instead of
	// draining every remaining library entry.
	Closing *closing.Flag
}

// Run executes the full sweep sequence described in spec.md §4.8.
func (s *Sweeper) Run(ctx context.Context) (Result, error) {
	if s.Shuffler != nil {
		if err := s.Shuffler.Compact(); err != nil {
			return Result{}, errors.Wrap(err, "compacting shuffler state")
		}
	}

	libs, err := s.listLibraries()
	if err != nil {
		return Result{}, errors.Wrap(err, "listing library wallpapers")
	}

	valid, err := s.buildAll(ctx, libs)
	if err != nil {
		return Result{}, err
	}

	deleted, err := s.clean(valid)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Deleted:          deleted,
		UnreferencedKeys: s.unreferencedKeys(libs),
	}, nil
}

// listLibraries walks OriginalsDir for every recognized original image and
// returns its Library identity.
func (s *Sweeper) listLibraries() ([]*id.Library, error) {
	var libs []*id.Library
	err := filepath.WalkDir(s.OriginalsDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !imgfmt.IsOriginal(p) {
			return nil
		}
		lib, err := id.NewLibrary(s.OriginalsDir, p)
		if err != nil {
			return errors.Wrapf(err, "building identity for %q", p)
		}
		libs = append(libs, lib)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return libs, nil
}

// buildAll drains a monotonic atomic index over libs across a bounded set
// of goroutines (one per CPU, via Parallelism), so the top-level rebuild
// loop is work-stealing rather than fork-join, matching spec.md §5's
// description of the sync-mode scheduling model. It returns every valid
// final path the rebuild touched, whether or not this run wrote it.
func (s *Sweeper) buildAll(ctx context.Context, libs []*id.Library) (map[string]bool, error) {
	valid := newPathSet()

	var idx int64
	n := s.Parallelism
	if n < 1 {
		n = 1
	}

	errCh := make(chan error, n)
	for w := 0; w < n; w++ {
		go func() {
			for {
				if s.Closing != nil && s.Closing.Closed() {
					errCh <- nil
					return
				}
				i := atomic.AddInt64(&idx, 1) - 1
				if i >= int64(len(libs)) {
					errCh <- nil
					return
				}
				lib := libs[i]
				if err := s.buildOne(ctx, lib, valid); err != nil {
					errCh <- err
					return
				}
			}
		}()
	}

	var firstErr error
	for w := 0; w < n; w++ {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return valid.snapshot(), nil
}

func (s *Sweeper) buildOne(ctx context.Context, lib *id.Library, valid *pathSet) error {
	if s.Closing != nil && s.Closing.Closed() {
		return nil
	}

	tasks, err := s.Planner.Plan(lib, s.Displays, s.Store)
	if err != nil {
		return errors.Wrapf(err, "planning %q", lib.SlashPath())
	}

	for _, t := range tasks {
		valid.add(t.Final)
	}

	s.Executor.Process(ctx, lib, tasks, true)

	for _, d := range s.Displays {
		props := lib.Props(s.Store, d)
		valid.add(lib.CachedPath(s.pathRoot(), d, props))
	}
	return nil
}

func (s *Sweeper) pathRoot() string {
	if s.CacheDir != "" {
		return s.CacheDir
	}
	return s.TempDir
}

// clean walks the cache directory, deleting any file not in valid (subject
// to CleanMonitors scoping display subdirectories) and pruning emptied
// ancestor directories up to but not including the cache root.
func (s *Sweeper) clean(valid map[string]bool) ([]string, error) {
	monitorDirs := map[string]bool{}
	for _, d := range s.Displays {
		monitorDirs[d.CacheDirName()] = true
	}

	var deleted []string
	err := filepath.WalkDir(s.CacheDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		if !s.CleanMonitors && !underCurrentDisplay(s.CacheDir, p, monitorDirs) {
			return nil
		}
		if valid[p] {
			return nil
		}

		if err := os.Remove(p); err != nil {
			return errors.Wrapf(err, "removing stale cache file %q", p)
		}
		deleted = append(deleted, p)
		pruneEmptyAncestors(s.CacheDir, filepath.Dir(p))
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "walking cache directory")
	}
	return deleted, nil
}

// underCurrentDisplay reports whether p's first path component below root
// names one of the currently-attached displays' resolution subdirectories.
func underCurrentDisplay(root, p string, monitorDirs map[string]bool) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	first := rel
	if idx := strings.IndexRune(rel, filepath.Separator); idx >= 0 {
		first = rel[:idx]
	}
	return monitorDirs[first]
}

// pruneEmptyAncestors removes dir and each of its ancestors, stopping at
// root or at the first directory that isn't empty.
func pruneEmptyAncestors(root, dir string) {
	for dir != root && len(dir) > len(root) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

// unreferencedKeys reports every properties-store key with no matching
// library wallpaper, a non-fatal diagnostic.
func (s *Sweeper) unreferencedKeys(libs []*id.Library) []string {
	present := make(map[string]bool, len(libs))
	for _, l := range libs {
		present[l.SlashPath()] = true
	}

	var stale []string
	for key := range s.Store {
		if !present[key] {
			stale = append(stale, key)
		}
	}
	return stale
}

type pathSet struct {
	mu sync.Mutex
	m  map[string]bool
}

func newPathSet() *pathSet {
	return &pathSet{m: make(map[string]bool)}
}

func (p *pathSet) add(path string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m[path] = true
}

func (p *pathSet) snapshot() map[string]bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]bool, len(p.m))
	for k := range p.m {
		out[k] = true
	}
	return out
}
