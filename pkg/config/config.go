// Package config loads blocksnap settings from TOML.
//
// Every value has a default, so a missing file or a partial file is fine:
//
//	[snap]
//	snap_radius = 48.0
//	connecting_radius = 68.0
//	preference_margin = 8.0
//	bump_delta = 25.0
//
//	[drag]
//	dead_zone = 4.0
//	renderer = "classic"
//	heal_stack = false
//
//	[surface]
//	opacity = 0.8
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
//
// The CLI reads the file given with --config, falling back to
// $XDG_CONFIG_HOME/blocksnap/config.toml (see [DefaultPath]).
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/blocksnap/pkg/errors"
	"github.com/matzehuels/blocksnap/pkg/render"
)

// Defaults.
const (
	DefaultSnapRadius       = 48.0
	DefaultConnectingRadius = 68.0
	DefaultPreferenceMargin = 8.0
	DefaultBumpDelta        = 25.0
	DefaultDeadZone         = 4.0
	DefaultRenderer         = render.PolicyClassic
	DefaultOpacity          = 0.8
)

// Config is the complete configuration.
type Config struct {
	Snap    Snap    `toml:"snap"`
	Drag    Drag    `toml:"drag"`
	Surface Surface `toml:"surface"`
	Cache   Cache   `toml:"cache"`
}

// Snap controls connection search.
type Snap struct {
	// SnapRadius is the search radius while no preview is shown.
	SnapRadius float64 `toml:"snap_radius"`
	// ConnectingRadius is the larger radius used while a preview is shown,
	// so an established preview is not dropped at the edge.
	ConnectingRadius float64 `toml:"connecting_radius"`
	// PreferenceMargin is how much closer a new candidate must be before it
	// replaces the current one.
	PreferenceMargin float64 `toml:"preference_margin"`
	// BumpDelta is how far displaced blocks are moved when they cannot be
	// reattached.
	BumpDelta float64 `toml:"bump_delta"`
}

// Drag controls the drag gesture.
type Drag struct {
	// DeadZone is the pointer travel, in workspace units, before a press
	// turns into a drag.
	DeadZone float64 `toml:"dead_zone"`
	// Renderer names the preview policy.
	Renderer string `toml:"renderer"`
	// HealStack closes the gap when a block is dragged out of the middle
	// of a stack.
	HealStack bool `toml:"heal_stack"`
}

// Surface controls the drag surface.
type Surface struct {
	Opacity float64 `toml:"opacity"`
}

// Cache selects where rendered graphs are kept.
type Cache struct {
	// RedisURL stores renders in Redis instead of the local cache
	// directory.
	RedisURL string `toml:"redis_url,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Snap: Snap{
			SnapRadius:       DefaultSnapRadius,
			ConnectingRadius: DefaultConnectingRadius,
			PreferenceMargin: DefaultPreferenceMargin,
			BumpDelta:        DefaultBumpDelta,
		},
		Drag: Drag{
			DeadZone: DefaultDeadZone,
			Renderer: DefaultRenderer,
		},
		Surface: Surface{Opacity: DefaultOpacity},
	}
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	switch {
	case c.Snap.SnapRadius <= 0:
		return invalid("snap.snap_radius must be positive")
	case c.Snap.ConnectingRadius < c.Snap.SnapRadius:
		return invalid("snap.connecting_radius must be at least snap.snap_radius")
	case c.Snap.PreferenceMargin < 0:
		return invalid("snap.preference_margin must not be negative")
	case c.Snap.BumpDelta < 0:
		return invalid("snap.bump_delta must not be negative")
	case c.Drag.DeadZone < 0:
		return invalid("drag.dead_zone must not be negative")
	case c.Surface.Opacity <= 0 || c.Surface.Opacity > 1:
		return invalid("surface.opacity must be in (0, 1]")
	case c.Cache.RedisURL != "" && !strings.HasPrefix(c.Cache.RedisURL, "redis://") && !strings.HasPrefix(c.Cache.RedisURL, "rediss://"):
		return invalid("cache.redis_url must start with redis:// or rediss://")
	}
	if !slices.Contains(render.Names(), c.Drag.Renderer) {
		return invalid("drag.renderer %q is not one of %v", c.Drag.Renderer, render.Names())
	}
	return nil
}

// Policy resolves the configured renderer.
func (c Config) Policy() (render.Policy, error) {
	return render.Lookup(c.Drag.Renderer)
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// DefaultPath returns $XDG_CONFIG_HOME/blocksnap/config.toml, falling back
// to the user config directory of the platform.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(dir, "blocksnap", "config.toml")
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}
