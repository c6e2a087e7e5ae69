// Package config loads and saves the cubesim settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubesim/internal/anim"
)

// Sentinel errors for the config package.
var (
	ErrInvalidSize     = errors.New("config: size must be at least 1")
	ErrInvalidScramble = errors.New("config: scramble_moves must not be negative")
	ErrInvalidInterval = errors.New("config: interval_ms must not be negative")
)

// DirName is the settings directory under the user's home.
const DirName = ".cubesim"

// Config holds every user setting.
type Config struct {
	Size          int    `yaml:"size"`
	Speed         string `yaml:"speed"`
	ScrambleMoves int    `yaml:"scramble_moves"`
	IntervalMS    int    `yaml:"interval_ms"`
	DBPath        string `yaml:"db_path"`
	Journal       bool   `yaml:"journal"`
	LogEvents     bool   `yaml:"log_events"`
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Size:          3,
		Speed:         anim.Normal.String(),
		ScrambleMoves: 25,
		IntervalMS:    50,
		Journal:       true,
		LogEvents:     false,
	}
}

// Dir returns ~/.cubesim.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// DefaultPath returns ~/.cubesim/config.yaml.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultDBPath returns ~/.cubesim/cubesim.db.
func DefaultDBPath() string {
	return filepath.Join(Dir(), "cubesim.db")
}

// LogDir returns ~/.cubesim/logs.
func LogDir() string {
	return filepath.Join(Dir(), "logs")
}

// Load reads the settings at path. A missing file yields the defaults.
// Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.Size < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, c.Size)
	}
	if _, err := anim.ParseSpeed(c.Speed); err != nil {
		return err
	}
	if c.ScrambleMoves < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidScramble, c.ScrambleMoves)
	}
	if c.IntervalMS < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, c.IntervalMS)
	}
	return nil
}

// TurnSpeed returns the parsed speed.
func (c Config) TurnSpeed() anim.Speed {
	s, err := anim.ParseSpeed(c.Speed)
	if err != nil {
		return anim.Normal
	}
	return s
}

// Interval returns the pause between scripted turns.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// Database returns the configured database path or the default one.
func (c Config) Database() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return DefaultDBPath()
}
