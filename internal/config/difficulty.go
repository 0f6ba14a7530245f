package config

import "math"

// DifficultyManager calculates dynamic game parameters based on wave/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on wave/ticks.
// Waves are 1-based, so wave 1 always maps to the initial level.
func (d *DifficultyManager) Level(wave int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "wave":
		progress = float64(wave-1) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the enemy speed multiplier for a wave.
func (d *DifficultyManager) Speed(baseSpeed float64, wave int, ticks int) float64 {
	level := d.Level(wave, ticks)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// HatchTicks returns how long an egg rests before hatching.
func (d *DifficultyManager) HatchTicks(base int, wave int, ticks int) int {
	level := d.Level(wave, ticks)
	result := base - int(level*float64(d.cfg.Scaling.HatchReduction))
	return max(result, base/4, 1)
}

// PterodactylTicks returns the delay before a pterodactyl appears.
func (d *DifficultyManager) PterodactylTicks(base int, wave int, ticks int) int {
	level := d.Level(wave, ticks)
	result := base - int(level*float64(d.cfg.Scaling.PterodactylReduction))
	return max(result, base/4, 1)
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
