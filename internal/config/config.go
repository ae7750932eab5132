// Package config loads the program settings from an optional JSON file,
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hakatashi/rhythm-medley/internal/assets"
)

// DefaultFile is the config file looked up when no path is given.
const DefaultFile = "rhythm-medley.json"

// EnvPrefix prefixes environment overrides, e.g. RHYTHM_MARKER_TTL=750ms.
const EnvPrefix = "RHYTHM"

var (
	// ErrInvalidTTL is returned when marker.ttl is below MinTTL. A bare JSON
	// number decodes as nanoseconds, so this also catches "ttl": 500.
	ErrInvalidTTL = errors.New("marker.ttl must be at least 1ms")
	// ErrInvalidWindow is returned for non-positive window dimensions.
	ErrInvalidWindow = errors.New("window size must be positive")
)

// Config holds all settings.
type Config struct {
	LogLevel string         `mapstructure:"logLevel"`
	TPS      int            `mapstructure:"tps"`
	HUD      bool           `mapstructure:"hud"`
	Window   WindowConfig   `mapstructure:"window"`
	Marker   MarkerConfig   `mapstructure:"marker"`
	Assets   assets.Paths   `mapstructure:"assets"`
	Headless HeadlessConfig `mapstructure:"headless"`
}

// WindowConfig defines the initial window.
type WindowConfig struct {
	Width      int    `mapstructure:"width"`
	Height     int    `mapstructure:"height"`
	Title      string `mapstructure:"title"`
	Resizable  bool   `mapstructure:"resizable"`
	Fullscreen bool   `mapstructure:"fullscreen"`
}

// MarkerConfig defines tap marker behavior.
type MarkerConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Hz       int           `mapstructure:"hz"`
	Ticks    uint64        `mapstructure:"ticks"`
	TapEvery time.Duration `mapstructure:"tapEvery"`
	Seed     int64         `mapstructure:"seed"`
}

// MinTTL is the shortest accepted marker lifetime.
const MinTTL = time.Millisecond

const defaultTapEvery = 250 * time.Millisecond

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("tps", 60)
	v.SetDefault("hud", true)

	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)
	v.SetDefault("window.title", "Rhythm Medley")
	v.SetDefault("window.resizable", true)
	v.SetDefault("window.fullscreen", false)

	v.SetDefault("marker.ttl", "500ms")

	v.SetDefault("assets.background", "")
	v.SetDefault("assets.noteLeft", "")
	v.SetDefault("assets.noteCenter", "")
	v.SetDefault("assets.noteRight", "")

	v.SetDefault("headless.hz", 60)
	v.SetDefault("headless.ticks", 0)
	v.SetDefault("headless.tapEvery", defaultTapEvery.String())
	v.SetDefault("headless.seed", 1)
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// The defaults are static; failing to decode them is a programming error.
		panic(err)
	}
	return cfg
}

// Load reads path (JSON) over the defaults. A missing file is not an error and
// yields the defaults plus any environment overrides.
func Load(path string) (*Config, error) {
	v := newViper()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the values the program cannot run with.
func (c *Config) Validate() error {
	if c.Marker.TTL < MinTTL {
		return fmt.Errorf("%w: got %s", ErrInvalidTTL, c.Marker.TTL)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidWindow, c.Window.Width, c.Window.Height)
	}
	if c.TPS <= 0 {
		c.TPS = 60
	}
	if c.Headless.Hz <= 0 {
		c.Headless.Hz = c.TPS
	}
	if c.Headless.TapEvery <= 0 {
		c.Headless.TapEvery = defaultTapEvery
	}
	return nil
}
