// Package config provides Viper-based configuration loading for the dice table.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is a file path, "stderr", or "stdout". The arena owns the
	// terminal while dice roll, so anything but a file will tear the picture.
	Output string `mapstructure:"output"`
}

// ArenaConfig fixes the arena size. Zero on either axis means the current
// terminal size on that axis.
type ArenaConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// PhysicsConfig holds the per-die motion knobs.
type PhysicsConfig struct {
	// MinSpeed and MaxSpeed bound a die's initial speed in steps per second.
	MinSpeed int `mapstructure:"min_speed"`
	MaxSpeed int `mapstructure:"max_speed"`
	// RedirectChance n gives a wall bounce a 1-in-n chance to redirect.
	RedirectChance int `mapstructure:"redirect_chance"`
}

// DisplayConfig holds results-screen settings.
type DisplayConfig struct {
	// PreviewResults is how many faces the one-line summary shows before eliding.
	PreviewResults int `mapstructure:"preview_results"`
	// FrameDelay is the pause between loading-bar frames before a throw.
	FrameDelay time.Duration `mapstructure:"frame_delay"`
}

// PresetsConfig locates the named roll presets file.
type PresetsConfig struct {
	// Path is a YAML presets file. Empty means no presets.
	Path string `mapstructure:"path"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Arena   ArenaConfig   `mapstructure:"arena"`
	Physics PhysicsConfig `mapstructure:"physics"`
	Display DisplayConfig `mapstructure:"display"`
	Presets PresetsConfig `mapstructure:"presets"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateArena(c.Arena); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validatePhysics(c.Physics); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDisplay(c.Display); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return fmt.Errorf("logging.output must not be empty")
	}
	return nil
}

func validateArena(a ArenaConfig) error {
	var errs []string
	if a.Width < 0 {
		errs = append(errs, fmt.Sprintf("arena.width must be >= 0, got %d", a.Width))
	}
	if a.Height < 0 {
		errs = append(errs, fmt.Sprintf("arena.height must be >= 0, got %d", a.Height))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validatePhysics(p PhysicsConfig) error {
	var errs []string
	if p.MinSpeed < 1 {
		errs = append(errs, fmt.Sprintf("physics.min_speed must be >= 1, got %d", p.MinSpeed))
	}
	if p.MaxSpeed < p.MinSpeed {
		errs = append(errs, "physics.max_speed must not be below physics.min_speed")
	}
	if p.MaxSpeed > 1000 {
		errs = append(errs, fmt.Sprintf("physics.max_speed must be <= 1000, got %d", p.MaxSpeed))
	}
	if p.RedirectChance < 1 {
		errs = append(errs, fmt.Sprintf("physics.redirect_chance must be >= 1, got %d", p.RedirectChance))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDisplay(d DisplayConfig) error {
	var errs []string
	if d.PreviewResults < 1 {
		errs = append(errs, fmt.Sprintf("display.preview_results must be >= 1, got %d", d.PreviewResults))
	}
	if d.FrameDelay < 0 {
		errs = append(errs, "display.frame_delay must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// DefaultLogFile is where logs go unless configured otherwise. The arena
// owns the terminal, so the default never points at stderr or stdout.
func DefaultLogFile() string {
	return filepath.Join(os.TempDir(), "dicetable.log")
}

// Default returns the built-in configuration, ignoring the environment.
//
// Postcondition: the result passes Validate.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := LoadFromViper(v)
	if err != nil {
		panic("config: defaults are invalid: " + err.Error())
	}
	return cfg
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads the built-in
// defaults with environment overrides applied.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with DICETABLE_ prefix
	v.SetEnvPrefix("DICETABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", DefaultLogFile())

	v.SetDefault("arena.width", 0)
	v.SetDefault("arena.height", 0)

	v.SetDefault("physics.min_speed", 60)
	v.SetDefault("physics.max_speed", 120)
	v.SetDefault("physics.redirect_chance", 5)

	v.SetDefault("display.preview_results", 5)
	v.SetDefault("display.frame_delay", "20ms")

	v.SetDefault("presets.path", "")
}
