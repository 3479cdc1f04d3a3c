package stage

import (
	"context"

	"github.com/pkg/errors"

	"github.com/wallsync/wallsync/build"
	"github.com/wallsync/wallsync/id"
)

// upscale runs the upscale stage for a single task: the external upscaler
// reads either the crop/pad intermediate (if this task produced one) or the
// original image directly, and writes the scaled intermediate.
func (e *Executor) upscale(ctx context.Context, ident id.Identity, t build.Task) {
	if e.Closing.Closed() {
		return
	}

	input := ident.OriginalPath()
	if t.Cropped != nil {
		input = t.Cropped.Path
	}

	err := e.Upscaler.Run(ctx, input, t.Scaled.Path, t.Scale, denoiseOr1(t.Props))
	if err != nil {
		// A shutdown in flight is the expected cause of an external process
		// dying mid-upscale; don't escalate it to a panic.
		if e.Closing.Closed() {
			return
		}
		panic(errors.Wrapf(err, "upscaling %q", input))
	}
}
