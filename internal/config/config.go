// Package config provides YAML-based game configuration loading and
// difficulty management for Meme Coin Madness.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config contains all configuration for the game.
type Config struct {
	Session     SessionConfig     `yaml:"session"`
	Field       FieldConfig       `yaml:"field"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
	Badge       BadgeConfig       `yaml:"badge"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// SessionConfig defines the length of a run and the session clock period.
type SessionConfig struct {
	DurationMs      int `yaml:"duration_ms"`
	ClockIntervalMs int `yaml:"clock_interval_ms"`
}

// FieldConfig defines spawn and motion parameters. Positions are normalized
// to the visible field, 0 is the top/left edge and 1 the bottom/right edge.
type FieldConfig struct {
	SpawnIntervalMs  int     `yaml:"spawn_interval_ms"`
	MotionIntervalMs int     `yaml:"motion_interval_ms"`
	MaxIcons         int     `yaml:"max_icons"`
	BaseFallSpeed    float64 `yaml:"base_fall_speed"`  // Per motion tick
	SpeedFactorMin   float64 `yaml:"speed_factor_min"` // Random factor is min + r*span
	SpeedFactorSpan  float64 `yaml:"speed_factor_span"`
	Drift            float64 `yaml:"drift"` // Horizontal velocity range, centered on 0
	SpawnXMin        float64 `yaml:"spawn_x_min"`
	SpawnXSpan       float64 `yaml:"spawn_x_span"`
	SpawnY           float64 `yaml:"spawn_y"`
	WallMin          float64 `yaml:"wall_min"`
	WallMax          float64 `yaml:"wall_max"`
	CullY            float64 `yaml:"cull_y"`
}

// ScoringConfig defines points and combo rules.
type ScoringConfig struct {
	PointsPerHit int `yaml:"points_per_hit"`
	MaxCombo     int `yaml:"max_combo"`
	MarkerTTLMs  int `yaml:"marker_ttl_ms"`
}

// BadgeConfig defines the high-score badge stub.
type BadgeConfig struct {
	Threshold int `yaml:"threshold"`
}

// LeaderboardConfig defines where and how much of the leaderboard is kept.
type LeaderboardConfig struct {
	Key      string `yaml:"key"`
	BadgeKey string `yaml:"badge_key"`
	Capacity int    `yaml:"capacity"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "time", "score", or "none"
	MaxAt int    `yaml:"max_at"` // Milliseconds or score at which max difficulty is reached, 0 = session duration for "time"
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to the fall speed factor at max difficulty
}

// Duration returns the session length.
func (c SessionConfig) Duration() time.Duration {
	return time.Duration(c.DurationMs) * time.Millisecond
}

// ClockInterval returns the session clock period.
func (c SessionConfig) ClockInterval() time.Duration {
	return time.Duration(c.ClockIntervalMs) * time.Millisecond
}

// SpawnInterval returns the spawn tick period.
func (c FieldConfig) SpawnInterval() time.Duration {
	return time.Duration(c.SpawnIntervalMs) * time.Millisecond
}

// MotionInterval returns the motion tick period.
func (c FieldConfig) MotionInterval() time.Duration {
	return time.Duration(c.MotionIntervalMs) * time.Millisecond
}

// MarkerTTL returns how long a hit marker stays visible.
func (c ScoringConfig) MarkerTTL() time.Duration {
	return time.Duration(c.MarkerTTLMs) * time.Millisecond
}

// DifficultyRamp returns the difficulty settings with an unset time ramp
// stretched over the session duration.
func (c Config) DifficultyRamp() DifficultyConfig {
	d := c.Difficulty
	if d.Progression.Type == "time" && d.Progression.MaxAt <= 0 {
		d.Progression.MaxAt = c.Session.DurationMs
	}
	return d
}

// Validate reports configuration values the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Session.DurationMs <= 0 {
		errs = append(errs, fmt.Errorf("session.duration_ms must be positive, got %d", c.Session.DurationMs))
	}
	if c.Session.ClockIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("session.clock_interval_ms must be positive, got %d", c.Session.ClockIntervalMs))
	}
	if c.Field.SpawnIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("field.spawn_interval_ms must be positive, got %d", c.Field.SpawnIntervalMs))
	}
	if c.Field.MotionIntervalMs <= 0 {
		errs = append(errs, fmt.Errorf("field.motion_interval_ms must be positive, got %d", c.Field.MotionIntervalMs))
	}
	if c.Field.MaxIcons <= 0 {
		errs = append(errs, fmt.Errorf("field.max_icons must be positive, got %d", c.Field.MaxIcons))
	}
	if c.Field.WallMin >= c.Field.WallMax {
		errs = append(errs, fmt.Errorf("field.wall_min (%v) must be below field.wall_max (%v)", c.Field.WallMin, c.Field.WallMax))
	}
	if c.Difficulty.Progression.MaxAt < 0 {
		errs = append(errs, fmt.Errorf("difficulty.progression.max_at must not be negative, got %d", c.Difficulty.Progression.MaxAt))
	}
	if c.Scoring.MaxCombo < 1 {
		errs = append(errs, fmt.Errorf("scoring.max_combo must be at least 1, got %d", c.Scoring.MaxCombo))
	}
	if c.Leaderboard.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("leaderboard.capacity must be positive, got %d", c.Leaderboard.Capacity))
	}
	if c.Leaderboard.Key == "" {
		errs = append(errs, errors.New("leaderboard.key must not be empty"))
	}
	return errors.Join(errs...)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Unknown values yield "",
// which keeps the config's own difficulty settings.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
