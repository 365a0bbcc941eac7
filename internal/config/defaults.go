package config

import (
	_ "embed"
)

//go:embed defaults/madness.yaml
var defaultMadnessYAML []byte

// DefaultConfig returns the default game configuration.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			DurationMs:      60_000,
			ClockIntervalMs: 200,
		},
		Field: FieldConfig{
			SpawnIntervalMs:  650,
			MotionIntervalMs: 40,
			MaxIcons:         24,
			BaseFallSpeed:    0.012,
			SpeedFactorMin:   0.6,
			SpeedFactorSpan:  0.8,
			Drift:            0.02,
			SpawnXMin:        0.1,
			SpawnXSpan:       0.8,
			SpawnY:           -0.1,
			WallMin:          0.05,
			WallMax:          0.95,
			CullY:            1.2,
		},
		Scoring: ScoringConfig{
			PointsPerHit: 10,
			MaxCombo:     10,
			MarkerTTLMs:  200,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 0, // Session duration
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
			},
		},
		Badge: BadgeConfig{
			Threshold: 300,
		},
		Leaderboard: LeaderboardConfig{
			Key:      "mcm_leaderboard_v1",
			BadgeKey: "mcm_badges_v1",
			Capacity: 10,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultMadnessYAML
}
