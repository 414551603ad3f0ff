// Package anim arbitrates visual effects. Each named channel runs at most one
// effect; a higher-priority request preempts a lower-priority one, and every
// waiter eventually observes a terminal outcome.
package anim

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Priority bounds. PriorityMax is reserved for the level-up celebration so
// that nothing can preempt it.
const (
	PriorityMin     = 0
	PriorityMax     = 10
	PriorityLevelUp = PriorityMax
)

// Misuse errors. Preemption and cancellation are never reported as errors.
var (
	ErrUnknownChannel = errors.New("anim: unknown channel")
	ErrNotPending     = errors.New("anim: no pending request on channel")
	ErrAlreadyRunning = errors.New("anim: channel already running")
)

// Status is the lifecycle state of a channel occupant.
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusRunning
	StatusCompleted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Terminal reports whether the status is completed or cancelled.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CancelReason says why a run ended without completing.
type CancelReason string

const (
	ReasonNone      CancelReason = ""
	ReasonPreempted CancelReason = "preempted"
	ReasonExplicit  CancelReason = "cancelled"
	ReasonContext   CancelReason = "context"
)

// Outcome is the terminal result observed by a waiter.
type Outcome struct {
	Status  Status // StatusCompleted or StatusCancelled
	Reason  CancelReason
	Elapsed time.Duration
}

// Completed reports whether the effect ran its full duration.
func (o Outcome) Completed() bool {
	return o.Status == StatusCompleted
}

// Cancelled reports whether the effect was preempted or cancelled.
func (o Outcome) Cancelled() bool {
	return o.Status == StatusCancelled
}

// Config describes one effect.
type Config struct {
	Duration    time.Duration
	Easing      Easing
	// Cancellable allows Cancel and CancelAll to stop the run. Preemption
	// is decided by priority alone, and a waiter's context ends any run.
	Cancellable bool
	// Category selects the time budget the run is measured against.
	Category string
}

// Request is a channel/config/priority triple.
type Request struct {
	Channel  string
	Config   Config
	Priority int
}

// ChannelView is a read-only projection of one channel.
type ChannelView struct {
	Name     string
	Status   Status
	Priority int
	Progress float64
	Config   Config
}

type handle struct {
	channel  string
	cfg      Config
	priority int
	status   Status
	started  time.Time
	timer    Timer
	outcome  Outcome
	done     chan struct{}
}

// report is a budget measurement collected under the lock and delivered
// after it is released.
type report struct {
	category string
	elapsed  time.Duration
}

// OrchestratorConfig holds the collaborators of an Orchestrator. Zero values
// select the system clock, no budget and the default logger.
type OrchestratorConfig struct {
	Clock  Clock
	Budget *Budget
	Logger *log.Logger
}

// Orchestrator owns the channel table. It is safe for concurrent use.
type Orchestrator struct {
	clock  Clock
	budget *Budget
	logger *log.Logger

	mu       sync.Mutex
	channels map[string]*handle // channel -> current or last occupant
}

// New creates an orchestrator.
func New(cfg OrchestratorConfig) *Orchestrator {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &Orchestrator{
		clock:    cfg.Clock,
		budget:   cfg.Budget,
		logger:   cfg.Logger,
		channels: make(map[string]*handle),
	}
}

// Register queues a request on a channel. It is rejected when the channel is
// running an effect of equal or higher priority. Otherwise any pending or
// running occupant is cancelled and the new request becomes pending.
func (o *Orchestrator) Register(channel string, cfg Config, priority int) bool {
	priority = o.clampPriority(channel, priority)

	o.mu.Lock()
	cur := o.channels[channel]
	if cur != nil && cur.status == StatusRunning && cur.priority >= priority {
		o.mu.Unlock()
		o.logger.Debug("animation rejected",
			"channel", channel, "priority", priority, "running", cur.priority)
		return false
	}

	var rep *report
	if cur != nil && !cur.status.Terminal() {
		rep = o.resolveLocked(cur, Outcome{Status: StatusCancelled, Reason: ReasonPreempted})
		o.logger.Debug("animation preempted",
			"channel", channel, "priority", cur.priority, "by", priority)
	}
	o.channels[channel] = &handle{
		channel:  channel,
		cfg:      cfg,
		priority: priority,
		status:   StatusPending,
		done:     make(chan struct{}),
	}
	o.mu.Unlock()

	o.deliver(rep)
	return true
}

// Submit registers a Request. It is Register with the fields of r.
func (o *Orchestrator) Submit(r Request) bool {
	return o.Register(r.Channel, r.Config, r.Priority)
}

// Run is a started effect.
type Run struct {
	o *Orchestrator
	h *handle
}

// Channel returns the channel the run occupies.
func (r *Run) Channel() string {
	return r.h.channel
}

// Priority returns the clamped priority of the run.
func (r *Run) Priority() int {
	return r.h.priority
}

// Done is closed once the run has resolved.
func (r *Run) Done() <-chan struct{} {
	return r.h.done
}

// Wait blocks until the run completes or is cancelled. Cancelling ctx
// cancels the run with ReasonContext even when it is not Cancellable.
func (r *Run) Wait(ctx context.Context) Outcome {
	select {
	case <-r.h.done:
	case <-ctx.Done():
		r.o.resolve(r.h, Outcome{Status: StatusCancelled, Reason: ReasonContext})
		<-r.h.done
	}
	return r.h.outcome
}

// Begin moves the pending request of a channel to running and starts its
// timer without waiting for it.
func (o *Orchestrator) Begin(channel string) (*Run, error) {
	o.mu.Lock()
	h, ok := o.channels[channel]
	if !ok {
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrUnknownChannel, channel)
	}
	switch h.status {
	case StatusPending:
	case StatusRunning:
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: %q", ErrAlreadyRunning, channel)
	default:
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: %q is %s", ErrNotPending, channel, h.status)
	}
	h.status = StatusRunning
	h.started = o.clock.Now()
	if h.cfg.Duration <= 0 {
		rep := o.resolveLocked(h, Outcome{Status: StatusCompleted})
		o.mu.Unlock()
		o.deliver(rep)
		return &Run{o: o, h: h}, nil
	}
	h.timer = o.clock.AfterFunc(h.cfg.Duration, func() {
		o.resolve(h, Outcome{Status: StatusCompleted})
	})
	o.mu.Unlock()

	return &Run{o: o, h: h}, nil
}

// Execute starts the pending request of a channel and blocks until it
// completes or is cancelled. Errors report misuse only.
func (o *Orchestrator) Execute(ctx context.Context, channel string) (Outcome, error) {
	run, err := o.Begin(channel)
	if err != nil {
		return Outcome{}, err
	}
	return run.Wait(ctx), nil
}

// Cancel stops a running, cancellable effect. It returns false, leaving the
// channel untouched, if nothing cancellable is running.
func (o *Orchestrator) Cancel(channel string) bool {
	o.mu.Lock()
	h, ok := o.channels[channel]
	if !ok || h.status != StatusRunning || !h.cfg.Cancellable {
		o.mu.Unlock()
		return false
	}
	rep := o.resolveLocked(h, Outcome{Status: StatusCancelled, Reason: ReasonExplicit})
	o.mu.Unlock()

	o.deliver(rep)
	return true
}

// CancelAll cancels every running cancellable effect and returns how many
// were stopped.
func (o *Orchestrator) CancelAll() int {
	o.mu.Lock()
	var reps []*report
	for _, h := range o.channels {
		if h.status == StatusRunning && h.cfg.Cancellable {
			reps = append(reps, o.resolveLocked(h, Outcome{Status: StatusCancelled, Reason: ReasonExplicit}))
		}
	}
	o.mu.Unlock()

	for _, rep := range reps {
		o.deliver(rep)
	}
	return len(reps)
}

// Status returns the state of a channel. Unknown channels are idle.
func (o *Orchestrator) Status(channel string) Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	if h, ok := o.channels[channel]; ok {
		return h.status
	}
	return StatusIdle
}

// Progress returns the eased progress of a running channel.
func (o *Orchestrator) Progress(channel string) (float64, bool) {
	now := o.clock.Now()
	o.mu.Lock()
	defer o.mu.Unlock()
	h, ok := o.channels[channel]
	if !ok || h.status != StatusRunning {
		return 0, false
	}
	return h.progress(now), true
}

// Snapshot returns a view of every known channel sorted by name.
func (o *Orchestrator) Snapshot() []ChannelView {
	now := o.clock.Now()
	o.mu.Lock()
	views := make([]ChannelView, 0, len(o.channels))
	for name, h := range o.channels {
		v := ChannelView{
			Name:     name,
			Status:   h.status,
			Priority: h.priority,
			Config:   h.cfg,
		}
		switch h.status {
		case StatusRunning:
			v.Progress = h.progress(now)
		case StatusCompleted:
			v.Progress = 1
		}
		views = append(views, v)
	}
	o.mu.Unlock()

	sort.Slice(views, func(i, j int) bool {
		return views[i].Name < views[j].Name
	})
	return views
}

func (h *handle) progress(now time.Time) float64 {
	if h.cfg.Duration <= 0 {
		return 1
	}
	t := float64(now.Sub(h.started)) / float64(h.cfg.Duration)
	return h.cfg.Easing.Apply(t)
}

// resolve settles a handle once; later calls are no-ops.
func (o *Orchestrator) resolve(h *handle, out Outcome) {
	o.mu.Lock()
	rep := o.resolveLocked(h, out)
	o.mu.Unlock()
	o.deliver(rep)
}

func (o *Orchestrator) resolveLocked(h *handle, out Outcome) *report {
	if h.status.Terminal() {
		return nil
	}
	wasRunning := h.status == StatusRunning
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	if wasRunning {
		out.Elapsed = o.clock.Now().Sub(h.started)
	}
	h.status = out.Status
	h.outcome = out
	close(h.done)

	if !wasRunning || h.cfg.Category == "" {
		return nil
	}
	return &report{category: h.cfg.Category, elapsed: out.Elapsed}
}

func (o *Orchestrator) deliver(rep *report) {
	if rep == nil || o.budget == nil {
		return
	}
	o.budget.Observe(rep.category, rep.elapsed)
}

func (o *Orchestrator) clampPriority(channel string, p int) int {
	if p >= PriorityMin && p <= PriorityMax {
		return p
	}
	clamped := p
	if clamped < PriorityMin {
		clamped = PriorityMin
	}
	if clamped > PriorityMax {
		clamped = PriorityMax
	}
	o.logger.Warn("animation priority out of range",
		"channel", channel, "priority", p, "clamped", clamped)
	return clamped
}
