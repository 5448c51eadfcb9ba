// Package config loads editor settings from an optional TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/cline/editor"
)

// Defaults. The quit guard default lives with the dispatcher.
const (
	DefaultMaxFrameBytes = 1 << 20
	DefaultLogDir        = "logs"
)

// Config holds the runtime settings
type Config struct {
	// QuitTimes is the number of ESC presses that quit
	QuitTimes int `toml:"quit_times"`

	// MaxFrameBytes bounds one rendered frame, 0 = unlimited
	MaxFrameBytes int `toml:"max_frame_bytes"`

	// LogDir receives the debug log when -debug is set
	LogDir string `toml:"log_dir"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		QuitTimes:     editor.DefaultQuitTimes,
		MaxFrameBytes: DefaultMaxFrameBytes,
		LogDir:        DefaultLogDir,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Unknown keys are rejected so typos do not pass silently.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return cfg, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges
func (c Config) Validate() error {
	var errs []error
	if c.QuitTimes < 1 {
		errs = append(errs, fmt.Errorf("quit_times must be at least 1, got %d", c.QuitTimes))
	}
	if c.MaxFrameBytes < 0 {
		errs = append(errs, fmt.Errorf("max_frame_bytes must not be negative, got %d", c.MaxFrameBytes))
	}
	if c.LogDir == "" {
		errs = append(errs, errors.New("log_dir must not be empty"))
	}
	return errors.Join(errs...)
}
