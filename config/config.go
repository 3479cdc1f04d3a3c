/*
Package config holds the process-wide configuration and the per-image
properties store, loaded once at startup and treated as immutable
thereafter (aside from a full reload by an external interactive shell,
which is out of scope for this package).
*/
package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the per-user configuration loaded from an ecosystem-defined
// location (overridable with --awconf at the CLI layer).
type Config struct {
	Database          string `toml:"database"`
	OriginalsDir      string `toml:"originals_directory"`
	CacheDir          string `toml:"cache_directory"`
	TempDir           string `toml:"temp_dir"`
	AlternateUpscaler string `toml:"alternate_upscaler"`
	UpscalingJobs     int    `toml:"upscaling_jobs"`
	GPUPrefix         string `toml:"gpu_prefix"`
}

// Load reads and validates a Config from path. The cache directory is
// created if it doesn't already exist; the originals directory must
// already exist.
func Load(path string) (*Config, error) {
	var c Config
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, errors.Wrapf(err, "loading config %q", path)
	}

	if c.UpscalingJobs == 0 {
		c.UpscalingJobs = 1
	}
	if c.UpscalingJobs < 1 {
		return nil, errors.Errorf("upscaling_jobs must be at least 1, got %d", c.UpscalingJobs)
	}

	info, err := os.Stat(c.OriginalsDir)
	if err != nil || !info.IsDir() {
		return nil, errors.Errorf("originals directory %q is not a directory", c.OriginalsDir)
	}

	if _, err := os.Stat(c.CacheDir); os.IsNotExist(err) {
		if err := os.MkdirAll(c.CacheDir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "creating cache directory %q", c.CacheDir)
		}
	}
	info, err = os.Stat(c.CacheDir)
	if err != nil || !info.IsDir() {
		return nil, errors.Errorf("cache directory %q is not a directory", c.CacheDir)
	}

	return &c, nil
}
