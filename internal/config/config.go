// Package config provides YAML-based configuration loading and difficulty
// management for the tetris core.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tetris-core/internal/anim"
)

// Game events that can be mapped to an effect.
const (
	EventLineClear = "line-clear"
	EventTetris    = "tetris"
	EventCombo     = "combo"
	EventScore     = "score"
	EventLevelUp   = "level-up"
	EventHardDrop  = "hard-drop"
	EventGameOver  = "game-over"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid")

// Config contains all configuration for a tetris session.
type Config struct {
	Board      BoardConfig              `yaml:"board"`
	Difficulty DifficultyConfig         `yaml:"difficulty"`
	Preview    int                      `yaml:"preview"` // pieces visible in the queue
	Seed       int64                    `yaml:"seed"`    // 0 = time based
	Effects    map[string]EffectConfig  `yaml:"effects"`
	Budgets    map[string]time.Duration `yaml:"budgets"`
}

// BoardConfig defines the playfield size.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DifficultyConfig defines the level progression and gravity curve.
type DifficultyConfig struct {
	Preset        DifficultyPreset `yaml:"preset"`
	StartLevel    int              `yaml:"start_level"`
	LinesPerLevel int              `yaml:"lines_per_level"`
	Progression   bool             `yaml:"progression"` // false keeps the start level
	Gravity       GravityConfig    `yaml:"gravity"`
}

// GravityConfig defines how long a piece hangs before dropping one row.
type GravityConfig struct {
	Base   time.Duration `yaml:"base"`   // interval at level 0
	Factor float64       `yaml:"factor"` // multiplier applied per level
	Min    time.Duration `yaml:"min"`    // fastest interval
}

// EffectConfig maps a game event to an animation request.
type EffectConfig struct {
	Channel     string        `yaml:"channel"`
	Priority    int           `yaml:"priority"`
	Duration    time.Duration `yaml:"duration"`
	Easing      string        `yaml:"easing"`
	Cancellable bool          `yaml:"cancellable"`
	Category    string        `yaml:"category"` // budget category, optional
}

// ToAnim converts the effect into an orchestrator config.
func (e EffectConfig) ToAnim() (anim.Config, error) {
	easing, err := anim.ParseEasing(e.Easing)
	if err != nil {
		return anim.Config{}, err
	}
	return anim.Config{
		Duration:    e.Duration,
		Easing:      easing,
		Cancellable: e.Cancellable,
		Category:    e.Category,
	}, nil
}

// Validate checks the config for values the engine cannot run with.
func (c Config) Validate() error {
	if c.Board.Width < 4 || c.Board.Height < 4 {
		return fmt.Errorf("%w: board %dx%d is smaller than 4x4", ErrInvalid, c.Board.Width, c.Board.Height)
	}
	if c.Preview < 0 {
		return fmt.Errorf("%w: preview %d is negative", ErrInvalid, c.Preview)
	}
	d := c.Difficulty
	if d.StartLevel < 0 {
		return fmt.Errorf("%w: start_level %d is negative", ErrInvalid, d.StartLevel)
	}
	if d.LinesPerLevel <= 0 {
		return fmt.Errorf("%w: lines_per_level must be positive", ErrInvalid)
	}
	if d.Gravity.Base <= 0 || d.Gravity.Min <= 0 || d.Gravity.Min > d.Gravity.Base {
		return fmt.Errorf("%w: gravity needs 0 < min <= base", ErrInvalid)
	}
	if d.Gravity.Factor <= 0 || d.Gravity.Factor > 1 {
		return fmt.Errorf("%w: gravity factor %v outside (0, 1]", ErrInvalid, d.Gravity.Factor)
	}
	for event, e := range c.Effects {
		if e.Channel == "" {
			return fmt.Errorf("%w: effect %q has no channel", ErrInvalid, event)
		}
		if e.Priority < anim.PriorityMin || e.Priority > anim.PriorityMax {
			return fmt.Errorf("%w: effect %q priority %d outside [%d, %d]",
				ErrInvalid, event, e.Priority, anim.PriorityMin, anim.PriorityMax)
		}
		if e.Duration < 0 {
			return fmt.Errorf("%w: effect %q has negative duration", ErrInvalid, event)
		}
		if _, err := anim.ParseEasing(e.Easing); err != nil {
			return fmt.Errorf("%w: effect %q: %v", ErrInvalid, event, err)
		}
	}
	for category, limit := range c.Budgets {
		if limit < 0 {
			return fmt.Errorf("%w: budget %q is negative", ErrInvalid, category)
		}
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset resolves a preset name.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("%w: unknown difficulty preset %q", ErrInvalid, s)
}

// StartLevelForPreset returns the start level for a difficulty preset.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 3
	case DifficultyHard:
		return 8
	default:
		return 0
	}
}

// ApplyPreset modifies the config based on a difficulty preset. The fixed
// preset keeps the configured start level and disables progression.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
	if preset == DifficultyFixed {
		cfg.Difficulty.Progression = false
		return
	}
	cfg.Difficulty.Progression = true
	cfg.Difficulty.StartLevel = StartLevelForPreset(preset)
}
