package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML PlatformerConfig
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if fromYAML != DefaultPlatformerConfig() {
		t.Errorf("embedded defaults drifted from DefaultPlatformerConfig():\nyaml: %+v\ncode: %+v", fromYAML, DefaultPlatformerConfig())
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("player:\n  jump_force: 600\nscoring:\n  coin: 7\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Player.JumpForce != 600 {
		t.Errorf("JumpForce = %v, expected 600", cfg.Player.JumpForce)
	}
	if cfg.Scoring.Coin != 7 {
		t.Errorf("Coin = %d, expected 7", cfg.Scoring.Coin)
	}
	if cfg.Physics.Gravity != 980 {
		t.Errorf("Gravity = %v, expected default 980", cfg.Physics.Gravity)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [1, 2"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("Load() of malformed yaml should fail")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("world:\n  tile_size: 0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidateMaxDT(t *testing.T) {
	tests := []struct {
		name    string
		maxDT   float64
		wantErr bool
	}{
		{"default", 0.1, false},
		{"smaller", 0.02, false},
		{"zero", 0, true},
		{"negative", -0.1, true},
		{"above limit", 0.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			cfg.Physics.MaxDT = tt.maxDT
			err := Validate(cfg)
			if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate(max_dt=%v) error = %v, expected ErrInvalidConfig", tt.maxDT, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate(max_dt=%v) unexpected error: %v", tt.maxDT, err)
			}
		})
	}
}

func TestLoadLocalConfigsDirectory(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir) // keep a real ~/.platformer out of the way
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join("configs", FileName), []byte("player:\n  max_health: 9\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Player.MaxHealth != 9 {
		t.Errorf("MaxHealth = %d, expected 9 from ./configs", cfg.Player.MaxHealth)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg != DefaultPlatformerConfig() {
		t.Error("Load() without files should return the defaults")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		enabled   bool
		initial   float64
		maxHealth int
	}{
		{DifficultyEasy, true, 0.0, 5},
		{DifficultyNormal, true, 0.3, 3},
		{DifficultyHard, true, 0.7, 2},
		{DifficultyFixed, false, 0.0, 3},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultPlatformerConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initial {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.initial)
			}
			if cfg.Player.MaxHealth != tc.maxHealth {
				t.Errorf("MaxHealth = %d, expected %d", cfg.Player.MaxHealth, tc.maxHealth)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if _, ok := ParsePreset("hard"); !ok {
		t.Error("hard should be a valid preset")
	}
	if _, ok := ParsePreset(""); !ok {
		t.Error("empty preset should be accepted")
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("unknown preset should be rejected")
	}
}

func TestDifficultyManagerLevelProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "level", MaxAt: 10},
		Scaling:     ScalingConfig{EnemySpeedMultiplier: 1.0, PatrolRangeBonus: 100},
	})

	if got := d.Level(1, 0); got != 0 {
		t.Errorf("Level(1) = %v, expected 0", got)
	}
	if got := d.Level(6, 0); got != 0.5 {
		t.Errorf("Level(6) = %v, expected 0.5", got)
	}
	if got := d.Level(50, 0); got != 1 {
		t.Errorf("Level(50) = %v, expected 1 (clamped)", got)
	}
	base := EnemyConfig{Speed: 80, PatrolRange: 150, Health: 2}
	if got := d.Tune(base, 11, 0); got.Speed != 160 || got.PatrolRange != 250 || got.Health != 2 {
		t.Errorf("Tune() at max difficulty = %+v", got)
	}
	if got := d.Tune(base, 6, 0); got.Speed != 120 || got.PatrolRange != 200 {
		t.Errorf("Tune() at half difficulty = %+v", got)
	}
}

func TestDifficultyManagerDisabled(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.4,
		Progression:  ProgressionConfig{Type: "level", MaxAt: 10},
		Scaling:      ScalingConfig{EnemySpeedMultiplier: 1.0},
	})

	if d.IsEnabled() {
		t.Error("manager should be disabled")
	}
	if got := d.Level(9, 9999); got != 0.4 {
		t.Errorf("Level() = %v, expected initial 0.4", got)
	}
	if got := d.Tune(EnemyConfig{Speed: 100}, 9, 0); got.Speed != 140 {
		t.Errorf("Tune() should hold the initial level, got speed %v", got.Speed)
	}
}
