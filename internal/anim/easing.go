package anim

import (
	"fmt"
	"sort"
	"strings"
)

// Easing maps linear progress in [0, 1] to eased progress.
type Easing string

const (
	EaseLinear     Easing = "linear"
	EaseOutQuad    Easing = "ease-out-quad"
	EaseInOutCubic Easing = "ease-in-out-cubic"
	EaseOutBack    Easing = "ease-out-back"

	defaultEasing = EaseLinear
)

const (
	backOvershoot    = 1.70158
	backOvershootMul = backOvershoot + 1
)

var easings = map[Easing]func(float64) float64{
	EaseLinear: func(t float64) float64 { return t },
	// smooth deceleration
	EaseOutQuad: func(t float64) float64 { return t * (2 - t) },
	EaseInOutCubic: func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		f := 2*t - 2
		return 1 + f*f*f/2
	},
	EaseOutBack: func(t float64) float64 {
		f := t - 1
		return 1 + backOvershootMul*f*f*f + backOvershoot*f*f
	},
}

// ParseEasing resolves an easing name. The empty string selects linear.
func ParseEasing(s string) (Easing, error) {
	name := Easing(strings.ToLower(strings.TrimSpace(s)))
	if name == "" {
		return defaultEasing, nil
	}
	if _, ok := easings[name]; !ok {
		return "", fmt.Errorf("anim: unknown easing %q (known: %s)", s, strings.Join(EasingNames(), ", "))
	}
	return name, nil
}

// EasingNames lists the supported easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for e := range easings {
		names = append(names, string(e))
	}
	sort.Strings(names)
	return names
}

// Apply evaluates the easing at t, clamping t to [0, 1]. Unknown easings
// behave as linear.
func (e Easing) Apply(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	fn, ok := easings[e]
	if !ok {
		fn = easings[defaultEasing]
	}
	return fn(t)
}
