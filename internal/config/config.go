// Package config handles glbtool configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all settings for the parse pipeline and its tooling.
type Config struct {
	Parser    ParserConfig    `yaml:"parser" toml:"parser"`
	LOD       LODConfig       `yaml:"lod" toml:"lod"`
	Scheduler SchedulerConfig `yaml:"scheduler" toml:"scheduler"`
	Assets    AssetsConfig    `yaml:"assets" toml:"assets"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// ParserConfig holds decode settings.
type ParserConfig struct {
	PlaceholderName string `yaml:"placeholder_name" toml:"placeholder_name"` // Base name of the fallback cube
}

// LODConfig holds level-of-detail settings.
type LODConfig struct {
	Seed               int64 `yaml:"seed" toml:"seed"`
	DefaultTargetFaces int   `yaml:"default_target_faces" toml:"default_target_faces"` // 0 = no reduction
}

// SchedulerConfig holds background parsing settings.
type SchedulerConfig struct {
	Workers int `yaml:"workers" toml:"workers"` // 0 = one per CPU
}

// AssetsConfig holds asset lookup settings.
type AssetsConfig struct {
	Roots []string `yaml:"roots" toml:"roots"` // Directories searched in order
	Watch bool     `yaml:"watch" toml:"watch"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			PlaceholderName: "Model",
		},
		LOD: LODConfig{
			Seed:               42,
			DefaultTargetFaces: 0,
		},
		Scheduler: SchedulerConfig{
			Workers: 0,
		},
		Assets: AssetsConfig{
			Roots: []string{"."},
			Watch: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if c.LOD.DefaultTargetFaces < 0 {
		errs = append(errs, fmt.Errorf("lod.default_target_faces must be >= 0, got %d", c.LOD.DefaultTargetFaces))
	}
	if c.Scheduler.Workers < 0 {
		errs = append(errs, fmt.Errorf("scheduler.workers must be >= 0, got %d", c.Scheduler.Workers))
	}
	if len(c.Assets.Roots) == 0 {
		errs = append(errs, errors.New("assets.roots must not be empty"))
	}
	return errors.Join(errs...)
}
