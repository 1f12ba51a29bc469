// SPDX-License-Identifier: MIT

// Package config holds the settings of the mrdemo command.
// Field tags use mapstructure for viper unmarshalling.
package config

import (
	"errors"
	"log/slog"
	"strings"
)

// Defaults for every key; see applyDefaults.
const (
	DefaultMinLevel   = 2
	DefaultMaxLevel   = 10
	DefaultGhostWidth = 2
	DefaultBoxMin     = -3
	DefaultBoxMax     = 3
	DefaultRefineMin  = -1.0
	DefaultRefineMax  = 1.0
	DefaultTime       = 0.0
	DefaultLogLevel   = "warning"
)

// maxLevelLimit bounds max_level so that level-0 boxes stay well inside
// 32-bit coordinates.
const maxLevelLimit = 20

var (
	// ErrInvalidLevels indicates min_level outside [0, max_level].
	ErrInvalidLevels = errors.New("mesh.min_level must be between 0 and mesh.max_level")
	// ErrInvalidMaxLevel indicates max_level above the supported limit.
	ErrInvalidMaxLevel = errors.New("mesh.max_level must be at most 20")
	// ErrInvalidGhostWidth indicates a ghost width below 2.
	ErrInvalidGhostWidth = errors.New("mesh.ghost_width must be at least 2")
	// ErrInvalidBox indicates box_min >= box_max.
	ErrInvalidBox = errors.New("mesh.box_min must be below mesh.box_max")
	// ErrInvalidRefineRegion indicates refine_min >= refine_max.
	ErrInvalidRefineRegion = errors.New("mesh.refine_min must be below mesh.refine_max")
	// ErrInvalidTime indicates a time outside [0, 1).
	ErrInvalidTime = errors.New("burgers.time must be in [0, 1)")
	// ErrInvalidLogLevel indicates an unknown log level name.
	ErrInvalidLogLevel = errors.New("log.level must be one of debug, info, warning, error")
)

// Config is the top-level configuration.
type Config struct {
	Mesh    MeshConfig    `mapstructure:"mesh"`
	Burgers BurgersConfig `mapstructure:"burgers"`
	Log     LogConfig     `mapstructure:"log"`
}

// MeshConfig describes the one-dimensional demo mesh: leaves at min_level
// away from the refined region, max_level inside it, graded in between.
type MeshConfig struct {
	MinLevel   int     `mapstructure:"min_level"`
	MaxLevel   int     `mapstructure:"max_level"`
	GhostWidth int     `mapstructure:"ghost_width"`
	BoxMin     int     `mapstructure:"box_min"`
	BoxMax     int     `mapstructure:"box_max"`
	RefineMin  float64 `mapstructure:"refine_min"`
	RefineMax  float64 `mapstructure:"refine_max"`
}

// BurgersConfig selects the instant of the exact solution.
type BurgersConfig struct {
	Time float64 `mapstructure:"time"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	m := c.Mesh
	if m.MaxLevel > maxLevelLimit {
		return ErrInvalidMaxLevel
	}

	if m.MinLevel < 0 || m.MinLevel > m.MaxLevel {
		return ErrInvalidLevels
	}

	// deep prediction reads two coarse neighbours on each side
	if m.GhostWidth < 2 {
		return ErrInvalidGhostWidth
	}

	if m.BoxMin >= m.BoxMax {
		return ErrInvalidBox
	}

	if m.RefineMin >= m.RefineMax {
		return ErrInvalidRefineRegion
	}

	if c.Burgers.Time < 0 || c.Burgers.Time >= 1 {
		return ErrInvalidTime
	}

	_, err := ParseLevel(c.Log.Level)

	return err
}

// ParseLevel maps a level name to its slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warning", "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, ErrInvalidLogLevel
	}
}
