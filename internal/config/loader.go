package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search directories.
const FileName = "platformer.yaml"

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads the platformer configuration.
// Search order: customPath -> ~/.platformer/configs/platformer.yaml ->
// ./configs/platformer.yaml -> embedded default -> hard-coded default.
// Values missing from a file keep their defaults.
func Load(customPath string) (PlatformerConfig, error) {
	cfg := DefaultPlatformerConfig()

	// A custom path is explicit, so its errors are reported.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, Validate(cfg)
	}

	for _, path := range searchPaths() {
		if data, err := os.ReadFile(path); err == nil {
			candidate := DefaultPlatformerConfig()
			if err := yaml.Unmarshal(data, &candidate); err == nil && Validate(candidate) == nil {
				return candidate, nil
			}
		}
	}

	if err := yaml.Unmarshal(defaultPlatformerYAML, &cfg); err != nil {
		return DefaultPlatformerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// searchPaths lists the implicit config locations in priority order.
func searchPaths() []string {
	var paths []string
	if p := userConfigPath(FileName); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", FileName))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "configs", filename)
}

// Validate rejects configurations the simulation cannot run with.
func Validate(cfg PlatformerConfig) error {
	switch {
	case cfg.World.TileSize <= 0:
		return fmt.Errorf("%w: world.tile_size must be positive", ErrInvalidConfig)
	case cfg.Physics.MaxDT <= 0:
		return fmt.Errorf("%w: physics.max_dt must be positive", ErrInvalidConfig)
	case cfg.Physics.MaxDT > MaxFrameDT:
		return fmt.Errorf("%w: physics.max_dt must be at most %g", ErrInvalidConfig, MaxFrameDT)
	case cfg.Physics.TerminalFallSpeed <= 0:
		return fmt.Errorf("%w: physics.terminal_fall_speed must be positive", ErrInvalidConfig)
	case cfg.Player.Width <= 0 || cfg.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	case cfg.Player.MaxHealth <= 0:
		return fmt.Errorf("%w: player.max_health must be positive", ErrInvalidConfig)
	case cfg.Player.MaxJumps < 1:
		return fmt.Errorf("%w: player.max_jumps must be at least 1", ErrInvalidConfig)
	}
	return nil
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHealth = 5
		cfg.Player.Invulnerability = 2.0
	case DifficultyHard:
		cfg.Player.MaxHealth = 2
		cfg.Player.Invulnerability = 1.0
	}
}
