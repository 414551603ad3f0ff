package anim

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	categories []string
	elapsed    []time.Duration
}

func (r *recordingObserver) BudgetExceeded(category string, elapsed, _ time.Duration) {
	r.categories = append(r.categories, category)
	r.elapsed = append(r.elapsed, elapsed)
}

func TestBudgetObserve(t *testing.T) {
	obs := &recordingObserver{}
	b := NewBudget(DefaultLimits(), obs)

	assert.True(t, b.Observe(CategoryComboFeedback, 40*time.Millisecond))
	assert.True(t, b.Observe(CategoryComboFeedback, 50*time.Millisecond), "limit is inclusive")
	assert.False(t, b.Observe(CategoryComboFeedback, 51*time.Millisecond))
	assert.True(t, b.Observe("unmeasured", time.Hour))

	assert.Equal(t, []string{CategoryComboFeedback}, obs.categories)
	assert.Equal(t, []time.Duration{51 * time.Millisecond}, obs.elapsed)
}

func TestBudgetSetLimit(t *testing.T) {
	b := NewBudget(map[string]time.Duration{"skip": 0}, nil)

	_, ok := b.Limit("skip")
	assert.False(t, ok, "non-positive limits are dropped")

	b.SetLimit("custom", time.Millisecond)
	limit, ok := b.Limit("custom")
	require.True(t, ok)
	assert.Equal(t, time.Millisecond, limit)
	assert.False(t, b.Observe("custom", 2*time.Millisecond), "nil observer still reports false")

	b.SetLimit("custom", 0)
	_, ok = b.Limit("custom")
	assert.False(t, ok)
}

func TestNilBudget(t *testing.T) {
	var b *Budget
	assert.True(t, b.Observe(CategoryFrame, time.Hour))
	stop := b.Track(CategoryFrame)
	assert.GreaterOrEqual(t, stop(), time.Duration(0))
}

func TestBudgetTrack(t *testing.T) {
	clock := newFakeClock()
	obs := &recordingObserver{}
	b := NewBudget(DefaultLimits(), obs).WithClock(clock)

	stop := b.Track(CategoryFrame)
	clock.Advance(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, stop())
	assert.Empty(t, obs.categories)

	stop = b.Track(CategoryFrame)
	clock.Advance(20 * time.Millisecond)
	stop()
	assert.Equal(t, []string{CategoryFrame}, obs.categories)
}

func TestLogObserverWritesWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	LogObserver{Logger: logger}.BudgetExceeded(CategoryLineClear, 120*time.Millisecond, 80*time.Millisecond)

	out := buf.String()
	assert.True(t, strings.Contains(out, "time budget exceeded"), out)
	assert.True(t, strings.Contains(out, CategoryLineClear), out)
}
