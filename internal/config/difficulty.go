package config

import (
	"math"
	"time"
)

// DifficultyManager calculates level and gravity from cleared lines.
type DifficultyManager struct {
	cfg DifficultyConfig
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	if cfg.LinesPerLevel <= 0 {
		cfg.LinesPerLevel = 10
	}
	return &DifficultyManager{cfg: cfg}
}

// SetStartLevel overrides the start level.
func (d *DifficultyManager) SetStartLevel(level int) {
	d.cfg.StartLevel = max(level, 0)
}

// IsEnabled returns whether level progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Progression
}

// Level returns the level reached after clearing lines.
func (d *DifficultyManager) Level(lines int) int {
	if !d.cfg.Progression || lines <= 0 {
		return d.cfg.StartLevel
	}
	return d.cfg.StartLevel + lines/d.cfg.LinesPerLevel
}

// Gravity returns the drop interval at a level. The interval shrinks
// geometrically and never goes below the configured minimum.
func (d *DifficultyManager) Gravity(level int) time.Duration {
	g := d.cfg.Gravity
	if g.Base <= 0 {
		return 0
	}
	factor := clampF(g.Factor, 0.01, 1.0)
	interval := time.Duration(float64(g.Base) * math.Pow(factor, float64(max(level, 0))))
	if interval < g.Min {
		interval = g.Min
	}
	return interval
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
