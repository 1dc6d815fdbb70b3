package config

import (
	_ "embed"
)

//go:embed defaults/setfall.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration.
// It mirrors defaults/setfall.yaml and is used when the embedded file cannot be parsed.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Field: FieldConfig{
			Width:        800,
			Height:       500,
			GroundHeight: 120,
			IconSize:     48,
			TextOffset:   14,
			TextPadding:  4,
			TopBand:      0.25,
		},
		Spawn: SpawnConfig{
			DelayMs:      500,
			MaxActive:    1,
			MaxAttempts:  10,
			PaddingMax:   150,
			PaddingRatio: 0.15,
		},
		Physics: PhysicsConfig{
			BaseSpeed:   0.8,
			SpeedJitter: 0.25,
			TitleSpeed:  0.4,
			TitleIcons:  12,
		},
		Gameplay: GameplayConfig{
			Lives:        3,
			GraceMs:      1500,
			SuccessTicks: 30,
			FailureTicks: 60,
			MessageMs:    1500,
		},
		Hints: HintsConfig{
			Thresholds:    [4]float64{0.20, 0.35, 0.55, 0.75},
			AlwaysVisible: []string{"classic", "core set", "edition"},
		},
		Waves: WavesConfig{
			Size: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "correct",
				MaxAt: 40,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGameYAML
}
