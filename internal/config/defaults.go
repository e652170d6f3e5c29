package config

import (
	_ "embed"
)

//go:embed defaults/platformer.yaml
var defaultPlatformerYAML []byte

// DefaultPlatformerConfig returns the hard-coded configuration used when no
// YAML source is available.
func DefaultPlatformerConfig() PlatformerConfig {
	return PlatformerConfig{
		Physics: PhysicsConfig{
			Gravity:           980,
			TerminalFallSpeed: 600,
			GroundFriction:    0.85,
			AirResistance:     0.98,
			MaxDT:             0.1,
		},
		World: WorldConfig{
			TileSize:   48,
			FallMargin: 400,
		},
		Player: PlayerConfig{
			Width:             32,
			Height:            44,
			MoveSpeed:         250,
			JumpForce:         450,
			JumpCutMultiplier: 2,
			MaxJumps:          2,
			MaxHealth:         3,
			Invulnerability:   1.5,
			KnockbackX:        250,
			KnockbackY:        250,
			StompBounce:       300,
		},
		Enemies: EnemiesConfig{
			Walker: EnemyConfig{Width: 40, Height: 40, Speed: 80, PatrolRange: 150, Health: 2},
			Flyer: FlyerConfig{
				EnemyConfig: EnemyConfig{Width: 40, Height: 32, Speed: 100, PatrolRange: 150, Health: 1},
				Amplitude:   60,
				Frequency:   2,
			},
			Spinner: EnemyConfig{Width: 40, Height: 40, Health: 3},
		},
		Items: ItemsConfig{
			CoinSize:    24,
			PowerUpSize: 40,
			SpikeWidth:  48,
			SpikeHeight: 48,
			GoalWidth:   48,
			GoalHeight:  96,
		},
		PowerUps: PowerUpsConfig{
			Speed:      SpeedPowerUp{TimedPowerUp: TimedPowerUp{Duration: 10}, MoveSpeed: 400},
			Shield:     TimedPowerUp{Duration: 15},
			TripleJump: JumpPowerUp{TimedPowerUp: TimedPowerUp{Duration: 20}, MaxJumps: 3},
			Health:     HealthPowerUp{Amount: 1},
		},
		Scoring: ScoringConfig{
			Coin:        100,
			EnemyHit:    25,
			EnemyDefeat: 50,
		},
		Camera: CameraConfig{
			LookAheadX: 96,
			LookAheadY: -24,
			SmoothingX: 6,
			SmoothingY: 4.8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 10,
			},
			Scaling: ScalingConfig{
				EnemySpeedMultiplier: 1.0,
				PatrolRangeBonus:     96,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPlatformerYAML
}
