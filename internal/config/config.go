// Package config provides YAML-based game configuration loading and
// difficulty management for the platformer.
package config

// PlatformerConfig contains every tunable of the simulation.
type PlatformerConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Enemies    EnemiesConfig    `yaml:"enemies"`
	Items      ItemsConfig      `yaml:"items"`
	PowerUps   PowerUpsConfig   `yaml:"powerups"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Camera     CameraConfig     `yaml:"camera"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// MaxFrameDT is the largest tick delta the simulation accepts, in seconds.
const MaxFrameDT = 0.1

// PhysicsConfig defines world physics.
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`
	TerminalFallSpeed float64 `yaml:"terminal_fall_speed"`
	GroundFriction    float64 `yaml:"ground_friction"` // per-tick multiplier
	AirResistance     float64 `yaml:"air_resistance"`  // per-tick multiplier
	MaxDT             float64 `yaml:"max_dt"`          // seconds, at most MaxFrameDT
}

// WorldConfig defines level geometry scale.
type WorldConfig struct {
	TileSize   float64 `yaml:"tile_size"`
	FallMargin float64 `yaml:"fall_margin"` // distance below the map that counts as a fall death
}

// PlayerConfig defines the player character.
type PlayerConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	MoveSpeed         float64 `yaml:"move_speed"`
	JumpForce         float64 `yaml:"jump_force"`
	JumpCutMultiplier float64 `yaml:"jump_cut_multiplier"` // extra gravity while rising with jump released
	MaxJumps          int     `yaml:"max_jumps"`
	MaxHealth         int     `yaml:"max_health"`
	Invulnerability   float64 `yaml:"invulnerability"` // seconds after a hit
	KnockbackX        float64 `yaml:"knockback_x"`
	KnockbackY        float64 `yaml:"knockback_y"`
	StompBounce       float64 `yaml:"stomp_bounce"`
}

// EnemiesConfig groups the enemy archetypes.
type EnemiesConfig struct {
	Walker  EnemyConfig `yaml:"walker"`
	Flyer   FlyerConfig `yaml:"flyer"`
	Spinner EnemyConfig `yaml:"spinner"`
}

// EnemyConfig defines a patrolling ground enemy.
type EnemyConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	Speed       float64 `yaml:"speed"`
	PatrolRange float64 `yaml:"patrol_range"`
	Health      int     `yaml:"health"`
}

// FlyerConfig defines a sine-wave flying enemy.
type FlyerConfig struct {
	EnemyConfig `yaml:",inline"`
	Amplitude   float64 `yaml:"amplitude"`
	Frequency   float64 `yaml:"frequency"` // radians per second
}

// ItemsConfig defines sizes of static pickups and markers.
type ItemsConfig struct {
	CoinSize    float64 `yaml:"coin_size"`
	PowerUpSize float64 `yaml:"powerup_size"`
	SpikeWidth  float64 `yaml:"spike_width"`
	SpikeHeight float64 `yaml:"spike_height"`
	GoalWidth   float64 `yaml:"goal_width"`
	GoalHeight  float64 `yaml:"goal_height"`
}

// PowerUpsConfig defines power-up effects.
type PowerUpsConfig struct {
	Speed      SpeedPowerUp  `yaml:"speed"`
	Shield     TimedPowerUp  `yaml:"shield"`
	TripleJump JumpPowerUp   `yaml:"triple_jump"`
	Health     HealthPowerUp `yaml:"health"`
}

// TimedPowerUp is a power-up that lasts for a duration.
type TimedPowerUp struct {
	Duration float64 `yaml:"duration"` // seconds
}

// SpeedPowerUp raises the player's run speed.
type SpeedPowerUp struct {
	TimedPowerUp `yaml:",inline"`
	MoveSpeed    float64 `yaml:"move_speed"`
}

// JumpPowerUp raises the number of air jumps.
type JumpPowerUp struct {
	TimedPowerUp `yaml:",inline"`
	MaxJumps     int `yaml:"max_jumps"`
}

// HealthPowerUp restores health.
type HealthPowerUp struct {
	Amount int `yaml:"amount"`
}

// ScoringConfig defines point awards.
type ScoringConfig struct {
	Coin        int `yaml:"coin"`
	EnemyHit    int `yaml:"enemy_hit"`    // stomped but still alive
	EnemyDefeat int `yaml:"enemy_defeat"` // stomped to death
}

// CameraConfig defines camera follow behaviour.
type CameraConfig struct {
	LookAheadX float64 `yaml:"look_ahead_x"`
	LookAheadY float64 `yaml:"look_ahead_y"`
	SmoothingX float64 `yaml:"smoothing_x"` // per second
	SmoothingY float64 `yaml:"smoothing_y"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level", "score", or "none"
	MaxAt int    `yaml:"max_at"` // level number or score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	EnemySpeedMultiplier float64 `yaml:"enemy_speed_multiplier"` // added to enemy speed at max difficulty
	PatrolRangeBonus     float64 `yaml:"patrol_range_bonus"`     // added to patrol range at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	}
	return "", false
}

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
