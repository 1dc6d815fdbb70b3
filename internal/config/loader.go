package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.setfall/configs/setfall.yaml -> ./configs/setfall.yaml -> embedded default.
// Files only need to set the keys they override; everything else keeps its default.
func Load(customPath string) (GameConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultGameConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultGameConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("setfall.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/setfall.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultGameYAML)
	if err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the built-in defaults and sanitizes the result.
func Parse(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	sanitize(&cfg)
	return cfg, nil
}

// sanitize replaces values that would stall or break the simulation.
func sanitize(cfg *GameConfig) {
	def := DefaultGameConfig()
	if cfg.Field.Width <= 0 {
		cfg.Field.Width = def.Field.Width
	}
	if cfg.Field.Height <= 0 {
		cfg.Field.Height = def.Field.Height
	}
	if cfg.Field.GroundHeight < 0 || cfg.Field.GroundHeight >= cfg.Field.Height {
		cfg.Field.GroundHeight = def.Field.GroundHeight
	}
	if cfg.Field.IconSize <= 0 {
		cfg.Field.IconSize = def.Field.IconSize
	}
	if cfg.Spawn.MaxActive < 1 {
		cfg.Spawn.MaxActive = 1
	}
	if cfg.Spawn.MaxAttempts < 1 {
		cfg.Spawn.MaxAttempts = 1
	}
	if cfg.Physics.BaseSpeed <= 0 {
		cfg.Physics.BaseSpeed = def.Physics.BaseSpeed
	}
	if cfg.Gameplay.Lives < 1 {
		cfg.Gameplay.Lives = def.Gameplay.Lives
	}
	if cfg.Gameplay.SuccessTicks < 1 {
		cfg.Gameplay.SuccessTicks = def.Gameplay.SuccessTicks
	}
	if cfg.Gameplay.FailureTicks < 1 {
		cfg.Gameplay.FailureTicks = def.Gameplay.FailureTicks
	}
	if cfg.Waves.Size < 1 {
		cfg.Waves.Size = def.Waves.Size
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".setfall", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Physics.BaseSpeed *= 0.75
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Spawn.MaxActive = 2
	}
}
