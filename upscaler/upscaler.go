/*
Package upscaler invokes the external upscaling tool as a black-box child
process. Its denoising model and exact CLI surface are out of scope for
this core (spec.md §1); this package only owns process lifecycle and exit
status interpretation.
*/
package upscaler

import (
	"context"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
)

// defaultBinary is the upscaler invoked when no alternate is configured.
const defaultBinary = "realesrgan-ncnn-vulkan"

// Upscaler runs the external upscale process.
type Upscaler interface {
	// Run upscales input by scale (a power of two, 1-32), applying the
	// given denoise level, writing the result to output.
	Run(ctx context.Context, input, output string, scale, denoise int) error
}

// External shells out to a configured (or default) upscaler binary.
type External struct {
	// Path overrides the default binary; empty uses defaultBinary.
	Path string
}

// Run implements Upscaler.
func (e External) Run(ctx context.Context, input, output string, scale, denoise int) error {
	bin := e.Path
	if bin == "" {
		bin = defaultBinary
	}

	cmd := exec.CommandContext(ctx, bin,
		"-i", input,
		"-o", output,
		"-s", strconv.Itoa(scale),
		"-n", strconv.Itoa(denoise),
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrapf(err, "upscaler exited non-zero: %s", out)
	}
	return nil
}
