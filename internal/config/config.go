package config

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"seam-carver/internal/logger"
)

// Config holds the settings of a seam-carver run.
type Config struct {
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
	Limits LimitsConfig `toml:"limits"`

	// Parameters overrides algorithm defaults, keyed by algorithm name and
	// then parameter name, e.g. [parameters.remove-rows] frequency = 3.
	Parameters map[string]map[string]int `toml:"parameters"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console or json
}

type OutputConfig struct {
	// Directory receives output files. Empty means next to the input.
	Directory   string `toml:"directory"`
	JPEGQuality int    `toml:"jpeg_quality"`
}

// LimitsConfig bounds the size of images the tool accepts.
type LimitsConfig struct {
	MaxWidth  int `toml:"max_width"`
	MaxHeight int `toml:"max_height"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			JPEGQuality: 95,
		},
		Limits: LimitsConfig{
			MaxWidth:  32768,
			MaxHeight: 32768,
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults; a
// named file must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality %d out of range [1, 100]", c.Output.JPEGQuality)
	}
	if c.Output.Directory != "" {
		info, err := os.Stat(c.Output.Directory)
		if err != nil {
			return fmt.Errorf("output directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("output directory %s is not a directory", c.Output.Directory)
		}
	}

	if c.Limits.MaxWidth <= 0 || c.Limits.MaxHeight <= 0 {
		return fmt.Errorf("limits %dx%d must be positive", c.Limits.MaxWidth, c.Limits.MaxHeight)
	}
	return nil
}

// CheckSize rejects images larger than the configured limits.
func (c Config) CheckSize(width, height int) error {
	if width > c.Limits.MaxWidth || height > c.Limits.MaxHeight {
		return fmt.Errorf("image %dx%d exceeds limit %dx%d",
			width, height, c.Limits.MaxWidth, c.Limits.MaxHeight)
	}
	return nil
}

// NewLogger builds the logger described by the log section.
func (c Config) NewLogger(w io.Writer) (logger.Logger, error) {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	if c.Log.Format == "json" {
		return logger.NewZerolog(w, level), nil
	}
	return logger.NewConsoleLogger(w, level), nil
}
