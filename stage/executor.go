/*
Package stage implements the three-stage build pipeline (crop, upscale,
finish) the rest of the system schedules build.Tasks onto. Each stage is a
separate barrier: every task's crop step runs to completion (on the worker
pool) before any task's upscale step starts (on the upscaling pool), and
every upscale step completes before any finish step starts (back on the
worker pool). The closing flag is checked between barriers, and again at
the top of every individual stage function, so a shutdown mid-batch drains
quickly instead of completing unrelated work.
*/
package stage

import (
	"context"

	"github.com/wallsync/wallsync/build"
	"github.com/wallsync/wallsync/closing"
	"github.com/wallsync/wallsync/id"
	"github.com/wallsync/wallsync/pixcache"
	"github.com/wallsync/wallsync/pool"
	"github.com/wallsync/wallsync/upscaler"
)

// Executor runs build.Tasks through crop, upscale, and finish.
type Executor struct {
	Worker     *pool.FIFO
	Upscaling  *pool.FIFO
	Upscaler   upscaler.Upscaler
	FileCache  *pixcache.FileCache
	Optimistic *pixcache.OptimisticCache // nil when the display adapter is disk-only
	Resizer    Resizer
	Closing    *closing.Flag
}

// Process runs every task in tasks through the full pipeline for ident.
// compress selects the sync-mode PNG/resizer policy (true) versus the
// preview/interactive policy (false).
func (e *Executor) Process(ctx context.Context, ident id.Identity, tasks []build.Task, compress bool) {
	if len(tasks) == 0 {
		return
	}

	var cropFns []func()
	for _, t := range tasks {
		t := t
		if t.Cropped != nil && t.Cropped.MustWrite {
			cropFns = append(cropFns, func() { e.crop(ident, t) })
		}
	}
	e.Worker.Run(ctx, cropFns...)

	if e.Closing.Closed() {
		return
	}

	var upFns []func()
	for _, t := range tasks {
		t := t
		if t.Scaled.MustWrite {
			upFns = append(upFns, func() { e.upscale(ctx, ident, t) })
		}
	}
	e.Upscaling.Run(ctx, upFns...)

	if e.Closing.Closed() {
		return
	}

	finFns := make([]func(), 0, len(tasks))
	for _, t := range tasks {
		t := t
		finFns = append(finFns, func() { e.finish(t, compress) })
	}
	e.Worker.Run(ctx, finFns...)
}
