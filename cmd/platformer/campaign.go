package main

import (
	"fmt"

	"github.com/vovakirdan/tui-platformer/internal/config"
	"github.com/vovakirdan/tui-platformer/internal/levels"
)

// levelLoader returns the loader selected by --levels.
func levelLoader() *levels.Loader {
	if flagLevels != "" {
		return levels.NewLoader(flagLevels)
	}
	return levels.Builtin()
}

// loadConfig reads the config file and applies a difficulty preset.
func loadConfig(path, difficulty string) (config.PlatformerConfig, error) {
	preset, ok := config.ParsePreset(difficulty)
	if !ok {
		return config.PlatformerConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", difficulty)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}
