package config

// DifficultyManager maps campaign progress to a difficulty in [0, 1] and
// tunes enemies with it.
type DifficultyManager struct {
	cfg   DifficultyConfig
	floor float64 // difficulty before any progress
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, floor: unit(cfg.InitialLevel)}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// progress returns the position along the progression axis in [0, 1].
func (d *DifficultyManager) progress(levelNum, score int) (float64, bool) {
	span := float64(max(d.cfg.Progression.MaxAt, 1))
	switch d.cfg.Progression.Type {
	case "level":
		return unit(float64(levelNum-1) / span), true
	case "score":
		return unit(float64(score) / span), true
	}
	return 0, false
}

// Level returns the difficulty for a 1-based level number and score. With
// progression off it stays at the initial level.
func (d *DifficultyManager) Level(levelNum, score int) float64 {
	if !d.IsEnabled() {
		return d.floor
	}
	p, ok := d.progress(levelNum, score)
	if !ok {
		return d.floor
	}
	return d.floor + p*(1-d.floor)
}

// Tune returns base with speed and patrol range scaled for the difficulty at
// levelNum and score.
func (d *DifficultyManager) Tune(base EnemyConfig, levelNum, score int) EnemyConfig {
	lv := d.Level(levelNum, score)
	base.Speed *= 1 + lv*d.cfg.Scaling.EnemySpeedMultiplier
	base.PatrolRange += lv * d.cfg.Scaling.PatrolRangeBonus
	return base
}

func unit(v float64) float64 {
	return min(max(v, 0), 1)
}
