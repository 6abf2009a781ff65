// Package config loads client settings from YAML, .env files and
// NEONPULSE_* environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

const envPrefix = "NEONPULSE_"

type Config struct {
	Window WindowConfig `yaml:"window"`
	Input  InputConfig  `yaml:"input"`
	Audio  AudioConfig  `yaml:"audio"`
	Mirror MirrorConfig `yaml:"mirror"`
	// Seed fixes the piece sequence; zero picks a random one.
	Seed  uint64 `yaml:"seed"`
	Debug bool   `yaml:"debug"`
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
}

type InputConfig struct {
	RepeatDelayMs    int     `yaml:"repeat_delay_ms"`
	RepeatIntervalMs int     `yaml:"repeat_interval_ms"`
	StickDeadZone    float64 `yaml:"stick_dead_zone"`
	// Keys maps a command name to the keyboard keys bound to it.
	Keys map[string][]string `yaml:"keys"`
}

func (c InputConfig) RepeatDelay() time.Duration {
	return time.Duration(c.RepeatDelayMs) * time.Millisecond
}

func (c InputConfig) RepeatInterval() time.Duration {
	return time.Duration(c.RepeatIntervalMs) * time.Millisecond
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
	DroneHz float64 `yaml:"drone_hz"`
	PulseHz float64 `yaml:"pulse_hz"`
}

type MirrorConfig struct {
	// Addr is the spectator server listen address; empty disables it.
	Addr string `yaml:"addr"`
}

// Commands accepted as keys of InputConfig.Keys.
var CommandNames = []string{"move_left", "move_right", "soft_down", "rotate", "hard_drop", "hold", "pause", "reset"}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  960,
			Height: 720,
			Title:  "NEON PULSE",
		},
		Input: InputConfig{
			RepeatDelayMs:    170,
			RepeatIntervalMs: 50,
			StickDeadZone:    0.5,
			Keys: map[string][]string{
				"move_left":  {"ArrowLeft"},
				"move_right": {"ArrowRight"},
				"soft_down":  {"ArrowDown"},
				"rotate":     {"ArrowUp"},
				"hard_drop":  {"Space"},
				"hold":       {"C"},
				"pause":      {"P", "Escape"},
			},
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  1,
			DroneHz: 55,
			PulseHz: 110,
		},
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from NEONPULSE_* variables.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok {
			*dst = v
		}
	}
	parse := func(name string, set func(string) error) {
		if v, ok := lookup(envPrefix + name); ok {
			if err := set(v); err != nil {
				errs = append(errs, fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, envPrefix, name, v, err))
			}
		}
	}
	boolean := func(dst *bool) func(string) error {
		return func(v string) (err error) {
			*dst, err = strconv.ParseBool(v)
			return err
		}
	}
	integer := func(dst *int) func(string) error {
		return func(v string) (err error) {
			*dst, err = strconv.Atoi(v)
			return err
		}
	}

	str("TITLE", &c.Window.Title)
	str("MIRROR_ADDR", &c.Mirror.Addr)
	parse("WIDTH", integer(&c.Window.Width))
	parse("HEIGHT", integer(&c.Window.Height))
	parse("FULLSCREEN", boolean(&c.Window.Fullscreen))
	parse("AUDIO", boolean(&c.Audio.Enabled))
	parse("DEBUG", boolean(&c.Debug))
	parse("VOLUME", func(v string) (err error) {
		c.Audio.Volume, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse("SEED", func(v string) (err error) {
		c.Seed, err = strconv.ParseUint(v, 10, 64)
		return err
	})
	return errors.Join(errs...)
}

func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width >= 320 && c.Window.Height >= 240, "window %dx%d is smaller than 320x240", c.Window.Width, c.Window.Height)
	check(c.Input.RepeatDelayMs >= 0, "input.repeat_delay_ms must not be negative")
	check(c.Input.RepeatIntervalMs > 0, "input.repeat_interval_ms must be positive")
	check(c.Input.StickDeadZone > 0 && c.Input.StickDeadZone < 1, "input.stick_dead_zone %v outside (0, 1)", c.Input.StickDeadZone)
	check(c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume %v outside [0, 1]", c.Audio.Volume)
	check(c.Audio.DroneHz > 0 && c.Audio.PulseHz > 0, "audio frequencies must be positive")

	known := make(map[string]bool, len(CommandNames))
	for _, name := range CommandNames {
		known[name] = true
	}
	for name, keys := range c.Input.Keys {
		check(known[name], "input.keys: unknown command %q", name)
		check(len(keys) > 0, "input.keys.%s has no keys", name)
	}
	return errors.Join(errs...)
}
