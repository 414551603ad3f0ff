package game

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tetris-core/internal/anim"
	"github.com/vovakirdan/tetris-core/internal/config"
)

// EffectResult records what happened to the effect of one event.
type EffectResult struct {
	Seq      int
	Event    Event
	Channel  string
	Priority int
	Accepted bool         // false when Register rejected the request
	Outcome  anim.Outcome // zero when not accepted
}

// Dispatcher maps game events to animation requests and awaits them in the
// background. Dispatch calls are serialized so that the request a Dispatch
// registers is the one it begins.
type Dispatcher struct {
	orch    *anim.Orchestrator
	effects map[string]config.EffectConfig
	logger  *log.Logger

	group *errgroup.Group

	dispatchMu sync.Mutex
	seq        int

	mu      sync.Mutex
	results []EffectResult
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(orch *anim.Orchestrator, effects map[string]config.EffectConfig, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Dispatcher{
		orch:    orch,
		effects: effects,
		logger:  logger,
		group:   new(errgroup.Group),
	}
}

// Dispatch starts the effect mapped to ev. It returns false when no effect is
// mapped or the orchestrator rejected the request. Errors report a broken
// effect config or orchestrator misuse. Cancelling ctx cancels the effect
// while it is still waiting.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (bool, error) {
	d.dispatchMu.Lock()
	defer d.dispatchMu.Unlock()

	effect, ok := d.effects[string(ev.Kind)]
	if !ok {
		d.logger.Debug("no effect for event", "event", ev.Kind)
		return false, nil
	}
	cfg, err := effect.ToAnim()
	if err != nil {
		return false, fmt.Errorf("game: effect %s: %w", ev.Kind, err)
	}

	if ev.Kind == EventGameOver {
		if n := d.orch.CancelAll(); n > 0 {
			d.logger.Debug("cancelled effects on game over", "count", n)
		}
	}

	d.seq++
	res := EffectResult{
		Seq:      d.seq,
		Event:    ev,
		Channel:  effect.Channel,
		Priority: effect.Priority,
	}
	if !d.orch.Submit(anim.Request{Channel: effect.Channel, Config: cfg, Priority: effect.Priority}) {
		d.record(res)
		return false, nil
	}
	run, err := d.orch.Begin(effect.Channel)
	if err != nil {
		return false, fmt.Errorf("game: effect %s: %w", ev.Kind, err)
	}
	res.Accepted = true

	d.group.Go(func() error {
		res.Outcome = run.Wait(ctx)
		d.logger.Debug("effect finished",
			"event", ev.Kind, "channel", res.Channel,
			"status", res.Outcome.Status, "reason", res.Outcome.Reason, "elapsed", res.Outcome.Elapsed)
		d.record(res)
		return nil
	})
	return true, nil
}

// DispatchAll dispatches events in order and stops at the first error.
func (d *Dispatcher) DispatchAll(ctx context.Context, events []Event) error {
	for _, ev := range events {
		if _, err := d.Dispatch(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

// Wait blocks until every effect dispatched so far has resolved and returns
// all results in dispatch order. The dispatcher stays usable afterwards.
func (d *Dispatcher) Wait() ([]EffectResult, error) {
	err := d.group.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]EffectResult, len(d.results))
	copy(out, d.results)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Seq < out[j].Seq
	})
	return out, err
}

func (d *Dispatcher) record(res EffectResult) {
	d.mu.Lock()
	d.results = append(d.results, res)
	d.mu.Unlock()
}
