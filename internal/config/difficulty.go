package config

import (
	"time"

	"github.com/vovakirdan/memecoin-madness/internal/core"
)

// DifficultyManager calculates the fall speed factor based on elapsed time or score.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = core.ClampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(score int, elapsed time.Duration) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "time":
		progress = float64(elapsed.Milliseconds()) / maxAt
	case "score":
		progress = float64(score) / maxAt
	default:
		return d.initialLevel
	}

	progress = core.ClampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Factor returns the multiplier applied to the base fall rate.
// With the defaults it ramps linearly from 1.0 to 2.5 over the session and holds.
func (d *DifficultyManager) Factor(score int, elapsed time.Duration) float64 {
	return 1.0 + d.Level(score, elapsed)*d.cfg.Scaling.SpeedMultiplier
}

// Speed returns baseSpeed scaled by the current factor.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, elapsed time.Duration) float64 {
	return baseSpeed * d.Factor(score, elapsed)
}
