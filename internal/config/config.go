// Package config parses nudge.toml configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultAccentColor is the default TUI accent color (cyan).
const DefaultAccentColor = "#5FD7D7"

// hexColorRe matches a 6-digit hex color string like "#5FD7D7".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Config is the top-level nudge.toml configuration.
type Config struct {
	Hints HintsConfig `toml:"hints"`
	Watch WatchConfig `toml:"watch"`
	TUI   TUIConfig   `toml:"tui"`
	Log   LogConfig   `toml:"log"`
}

// HintsConfig controls the idle hint loop.
type HintsConfig struct {
	// IdleThresholdSeconds is the inactivity duration before hints start.
	IdleThresholdSeconds int `toml:"idle_threshold_seconds"`
	// UpdatePeriodSeconds is the delay between successive hints while idle.
	UpdatePeriodSeconds int `toml:"update_period_seconds"`
	// Scope selects which bindings hints are drawn from: "local", "all",
	// or "map:<name>" to pin hints to one named binding map.
	Scope string `toml:"scope"`
}

// WatchConfig controls the filesystem activity watcher.
type WatchConfig struct {
	// Enabled turns filesystem events into activity signals.
	Enabled bool `toml:"enabled"`
}

// TUIConfig controls the terminal UI appearance.
type TUIConfig struct {
	AccentColor string `toml:"accent_color"`
}

// LogConfig controls session logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Empty disables logging.
	Level string `toml:"level"`
}

// IdleThreshold returns the idle threshold as a duration.
func (c *Config) IdleThreshold() time.Duration {
	return time.Duration(c.Hints.IdleThresholdSeconds) * time.Second
}

// UpdatePeriod returns the hint update period as a duration.
func (c *Config) UpdatePeriod() time.Duration {
	return time.Duration(c.Hints.UpdatePeriodSeconds) * time.Second
}

// Validate checks the configuration for issues that would cause confusing
// runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.Hints.IdleThresholdSeconds <= 0 {
		errs = append(errs, fmt.Errorf("hints.idle_threshold_seconds must be > 0"))
	}
	if c.Hints.UpdatePeriodSeconds <= 0 {
		errs = append(errs, fmt.Errorf("hints.update_period_seconds must be > 0"))
	}
	if !validScope(c.Hints.Scope) {
		errs = append(errs, fmt.Errorf("hints.scope must be \"local\", \"all\", or \"map:<name>\""))
	}

	if c.TUI.AccentColor != "" && !hexColorRe.MatchString(c.TUI.AccentColor) {
		errs = append(errs, fmt.Errorf("tui.accent_color must be a hex color (e.g. %q)", DefaultAccentColor))
	}

	return errors.Join(errs...)
}

func validScope(s string) bool {
	if s == "local" || s == "all" {
		return true
	}
	name, ok := strings.CutPrefix(s, "map:")
	return ok && name != ""
}

// Defaults returns a Config with the stock settings: a one minute idle
// threshold and a hint refresh every twelve seconds.
func Defaults() Config {
	return Config{
		Hints: HintsConfig{
			IdleThresholdSeconds: 60,
			UpdatePeriodSeconds:  12,
			Scope:                "all",
		},
		Watch: WatchConfig{
			Enabled: true,
		},
		TUI: TUIConfig{
			AccentColor: DefaultAccentColor,
		},
		Log: LogConfig{
			Level: "",
		},
	}
}

// Load reads nudge.toml from the given path. A missing file is not an
// error: defaults are returned. Unknown keys are rejected (likely typos).
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config: unknown key %q in %s", undecoded[0].String(), path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return &cfg, nil
}
