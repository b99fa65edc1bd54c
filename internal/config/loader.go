package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSkyRaid loads Sky Raid configuration.
// Search order: customPath -> ~/.skyraid/configs/skyraid.yaml -> ./configs/skyraid.yaml -> embedded default
//
// Files are decoded over the hardcoded defaults, so a partial file only
// overrides the keys it names.
func LoadSkyRaid(customPath string) (SkyRaidConfig, error) {
	cfg := DefaultSkyRaidConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultSkyRaidConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if data, ok := readSearchPath("skyraid.yaml"); ok {
		candidate := DefaultSkyRaidConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	if err := yaml.Unmarshal(defaultSkyRaidYAML, &cfg); err != nil {
		return DefaultSkyRaidConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadProgression loads ship upgrades and the world difficulty table.
// Search order: customPath -> ~/.skyraid/configs/upgrades.yaml -> ./configs/upgrades.yaml -> embedded default
func LoadProgression(customPath string) (Progression, error) {
	prog := DefaultProgression()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return prog, fmt.Errorf("failed to read upgrades %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &prog); err != nil {
			return DefaultProgression(), fmt.Errorf("failed to parse upgrades %s: %w", customPath, err)
		}
		return prog, nil
	}

	if data, ok := readSearchPath("upgrades.yaml"); ok {
		candidate := DefaultProgression()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	if err := yaml.Unmarshal(defaultUpgradesYAML, &prog); err != nil {
		return DefaultProgression(), nil
	}
	return prog, nil
}

// readSearchPath tries the user config directory, then ./configs.
func readSearchPath(filename string) ([]byte, bool) {
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			return data, true
		}
	}
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		return data, true
	}
	return nil, false
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skyraid", "configs", filename)
}

// ApplySkyRaidPreset modifies the config based on a difficulty preset.
func ApplySkyRaidPreset(cfg *SkyRaidConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Player.Bombs = 3
		cfg.Enemies.HPScale = 0.8
		cfg.Enemies.SpeedScale = 0.9
		cfg.Enemies.FireScale = 1.25
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Player.Bombs = 1
		cfg.Enemies.HPScale = 1.3
		cfg.Enemies.SpeedScale = 1.15
		cfg.Enemies.FireScale = 0.8
	case DifficultyNormal, DifficultyFixed:
		cfg.Enemies.HPScale = 1.0
		cfg.Enemies.SpeedScale = 1.0
		cfg.Enemies.FireScale = 1.0
	}
}
