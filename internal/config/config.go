// Package config provides YAML-based game configuration loading and
// difficulty management for setfall.
package config

// GameConfig contains all configuration for the falling-icon game.
type GameConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Gameplay   GameplayConfig   `yaml:"gameplay"`
	Hints      HintsConfig      `yaml:"hints"`
	Waves      WavesConfig      `yaml:"waves"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig describes the play field in world units.
// The renderer scales world units onto whatever screen it is given.
type FieldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
	IconSize     float64 `yaml:"icon_size"`
	TextOffset   float64 `yaml:"text_offset"`  // Distance from icon y to the label's top edge
	TextPadding  float64 `yaml:"text_padding"` // Extra allowance below the ground line
	TopBand      float64 `yaml:"top_band"`     // Fraction of the field height treated as the spawn band
}

// SpawnConfig controls the spawn gate and placement.
type SpawnConfig struct {
	DelayMs      int     `yaml:"delay_ms"`
	MaxActive    int     `yaml:"max_active"`
	MaxAttempts  int     `yaml:"max_attempts"`
	PaddingMax   float64 `yaml:"padding_max"`
	PaddingRatio float64 `yaml:"padding_ratio"`
}

// PhysicsConfig controls icon fall speed.
type PhysicsConfig struct {
	BaseSpeed   float64 `yaml:"base_speed"`   // World units per tick
	SpeedJitter float64 `yaml:"speed_jitter"` // Max random fraction added to base speed
	TitleSpeed  float64 `yaml:"title_speed"`  // Idle-screen background drift
	TitleIcons  int     `yaml:"title_icons"`
}

// GameplayConfig defines lives and pacing.
type GameplayConfig struct {
	Lives        int `yaml:"lives"`
	GraceMs      int `yaml:"grace_ms"`
	SuccessTicks int `yaml:"success_ticks"`
	FailureTicks int `yaml:"failure_ticks"`
	MessageMs    int `yaml:"message_ms"`
}

// HintsConfig controls the progressive-reveal hints.
type HintsConfig struct {
	Disabled      bool       `yaml:"disabled"`
	Thresholds    [4]float64 `yaml:"thresholds"`
	AlwaysVisible []string   `yaml:"always_visible"`
}

// WavesConfig controls the extended wave mode.
type WavesConfig struct {
	Size int `yaml:"size"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a session.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "correct", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Correct guesses or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to fall speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

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
