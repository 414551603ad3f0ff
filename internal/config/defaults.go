package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tetris-core/internal/anim"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// Effect channels used by the default mapping.
const (
	ChannelLineClear   = "line-clear-flash"
	ChannelCombo       = "combo-feedback"
	ChannelScore       = "score-count"
	ChannelCelebration = "level-celebration"
	ChannelDrop        = "drop-impact"
)

// DefaultConfig returns the default tetris configuration.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Difficulty: DifficultyConfig{
			Preset:        DifficultyEasy,
			StartLevel:    0,
			LinesPerLevel: 10,
			Progression:   true,
			Gravity: GravityConfig{
				Base:   800 * time.Millisecond,
				Factor: 0.85,
				Min:    50 * time.Millisecond,
			},
		},
		Preview: 5,
		Effects: DefaultEffects(),
		Budgets: anim.DefaultLimits(),
	}
}

// DefaultEffects returns the default event to effect mapping. Durations sit
// below the budget of their category.
func DefaultEffects() map[string]EffectConfig {
	return map[string]EffectConfig{
		EventLineClear: {
			Channel:     ChannelLineClear,
			Priority:    3,
			Duration:    60 * time.Millisecond,
			Easing:      string(anim.EaseOutQuad),
			Cancellable: true,
			Category:    anim.CategoryLineClear,
		},
		EventTetris: {
			Channel:     ChannelLineClear,
			Priority:    6,
			Duration:    70 * time.Millisecond,
			Easing:      string(anim.EaseOutBack),
			Cancellable: true,
			Category:    anim.CategoryLineClear,
		},
		EventCombo: {
			Channel:     ChannelCombo,
			Priority:    4,
			Duration:    40 * time.Millisecond,
			Easing:      string(anim.EaseOutQuad),
			Cancellable: true,
			Category:    anim.CategoryComboFeedback,
		},
		EventScore: {
			Channel:     ChannelScore,
			Priority:    2,
			Duration:    1500 * time.Millisecond,
			Easing:      string(anim.EaseInOutCubic),
			Cancellable: true,
			Category:    anim.CategoryScoreCount,
		},
		EventLevelUp: {
			Channel:  ChannelCelebration,
			Priority: anim.PriorityLevelUp,
			Duration: 1200 * time.Millisecond,
			Easing:   string(anim.EaseOutBack),
		},
		EventHardDrop: {
			Channel:     ChannelDrop,
			Priority:    1,
			Duration:    30 * time.Millisecond,
			Easing:      string(anim.EaseLinear),
			Cancellable: true,
		},
		EventGameOver: {
			Channel:  ChannelCelebration,
			Priority: 9,
			Duration: 800 * time.Millisecond,
			Easing:   string(anim.EaseInOutCubic),
		},
	}
}
