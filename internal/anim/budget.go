package anim

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Budget categories measured by default.
const (
	CategoryScoreCount    = "score-count"
	CategoryComboFeedback = "combo-feedback"
	CategoryLineClear     = "line-clear-flash"
	CategoryFrame         = "frame"
)

// FrameBudget is one frame at 60 frames per second.
const FrameBudget = time.Second / 60

// DefaultLimits returns the advisory ceilings per category.
func DefaultLimits() map[string]time.Duration {
	return map[string]time.Duration{
		CategoryScoreCount:    2 * time.Second,
		CategoryComboFeedback: 50 * time.Millisecond,
		CategoryLineClear:     80 * time.Millisecond,
		CategoryFrame:         FrameBudget,
	}
}

// Observer receives budget overruns.
type Observer interface {
	BudgetExceeded(category string, elapsed, limit time.Duration)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(category string, elapsed, limit time.Duration)

// BudgetExceeded calls f.
func (f ObserverFunc) BudgetExceeded(category string, elapsed, limit time.Duration) {
	f(category, elapsed, limit)
}

// LogObserver reports overruns as structured warnings.
type LogObserver struct {
	Logger *log.Logger
}

// BudgetExceeded logs a warning with the category, measured time and limit.
func (o LogObserver) BudgetExceeded(category string, elapsed, limit time.Duration) {
	logger := o.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Warn("time budget exceeded",
		"category", category,
		"elapsed", elapsed,
		"limit", limit,
		"over", elapsed-limit,
	)
}

// Budget checks measured durations against per-category ceilings.
// Overruns are reported, never enforced. A nil *Budget accepts everything.
type Budget struct {
	mu       sync.RWMutex
	limits   map[string]time.Duration
	observer Observer
	clock    Clock
}

// NewBudget creates a budget with the given limits. A nil observer discards
// overruns.
func NewBudget(limits map[string]time.Duration, obs Observer) *Budget {
	copied := make(map[string]time.Duration, len(limits))
	for k, v := range limits {
		if v > 0 {
			copied[k] = v
		}
	}
	return &Budget{
		limits:   copied,
		observer: obs,
		clock:    SystemClock{},
	}
}

// WithClock replaces the clock used by Track and returns the budget.
func (b *Budget) WithClock(c Clock) *Budget {
	if b != nil && c != nil {
		b.clock = c
	}
	return b
}

// SetLimit installs or, for a non-positive limit, removes a ceiling.
func (b *Budget) SetLimit(category string, limit time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if limit <= 0 {
		delete(b.limits, category)
		return
	}
	b.limits[category] = limit
}

// Limit returns the ceiling for a category.
func (b *Budget) Limit(category string) (time.Duration, bool) {
	if b == nil || category == "" {
		return 0, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	limit, ok := b.limits[category]
	return limit, ok
}

// Observe checks elapsed against the category ceiling. It returns false and
// notifies the observer when the ceiling was passed. Unknown categories are
// always within budget.
func (b *Budget) Observe(category string, elapsed time.Duration) bool {
	limit, ok := b.Limit(category)
	if !ok || elapsed <= limit {
		return true
	}
	if b.observer != nil {
		b.observer.BudgetExceeded(category, elapsed, limit)
	}
	return false
}

// Track starts a measurement; the returned function stops it, observes the
// elapsed time and returns it.
func (b *Budget) Track(category string) func() time.Duration {
	var clock Clock = SystemClock{}
	if b != nil && b.clock != nil {
		clock = b.clock
	}
	start := clock.Now()
	return func() time.Duration {
		elapsed := clock.Now().Sub(start)
		b.Observe(category, elapsed)
		return elapsed
	}
}
