// Package config loads the player configuration from YAML with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"dirplay/internal/audio"
)

// Config is the user configuration. Zero values in the file keep the
// defaults.
type Config struct {
	// MusicDatabase is the starting directory and the highest one the
	// browser may climb to.
	MusicDatabase string        `yaml:"music_database"`
	TickInterval  time.Duration `yaml:"tick_interval"`
	Volume        float64       `yaml:"volume"`
	VolumeStep    float64       `yaml:"volume_step"`
	BigStep       int           `yaml:"big_step"`
	ShowHidden    bool          `yaml:"show_hidden"`
	Watch         bool          `yaml:"watch"`
	LogFile       string        `yaml:"log_file"`
	LogLevel      string        `yaml:"log_level"`
	Theme         ThemeConfig   `yaml:"theme"`

	// Colors is the resolved theme, filled by Validate.
	Colors Colors `yaml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		MusicDatabase: home,
		TickInterval:  time.Second,
		Volume:        1,
		VolumeStep:    0.05,
		BigStep:       5,
		Watch:         true,
		LogFile:       filepath.Join(os.TempDir(), "dirplay.log"),
		LogLevel:      "info",
		Theme:         ThemeConfig{Name: "default"},
	}
}

// DefaultPath is ~/.config/dirplay/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", "dirplay", "config.yaml"), nil
}

// Load reads the file at path, or the default location when path is
// empty. A missing file yields the defaults. A .env file next to the
// config and DIRPLAY_* variables override file values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	_ = godotenv.Load(filepath.Join(filepath.Dir(path), ".env"))
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("DIRPLAY_MUSIC_DATABASE"); v != "" {
		c.MusicDatabase = v
	}
	if v := os.Getenv("DIRPLAY_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("DIRPLAY_TICK_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("DIRPLAY_TICK_INTERVAL: %w", err)
		}
		c.TickInterval = d
	}
	if v := os.Getenv("DIRPLAY_VOLUME"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("DIRPLAY_VOLUME: %w", err)
		}
		c.Volume = f
	}
	return nil
}

// Validate checks the values, expands ~ in paths, clamps the volume and
// resolves the theme.
func (c *Config) Validate() error {
	if c.MusicDatabase == "" {
		return errors.New("music_database must be set")
	}
	c.MusicDatabase = expandHome(c.MusicDatabase)
	c.LogFile = expandHome(c.LogFile)

	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.VolumeStep <= 0 || c.VolumeStep > audio.MaxVolume {
		return fmt.Errorf("volume_step must be in (0, %.2f], got %.2f", audio.MaxVolume, c.VolumeStep)
	}
	if c.BigStep < 1 {
		return fmt.Errorf("big_step must be at least 1, got %d", c.BigStep)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	c.Volume = audio.ClampVolume(c.Volume)

	colors, err := c.Theme.Resolve()
	if err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	c.Colors = colors
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
