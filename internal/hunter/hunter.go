// Package hunter drives the sequential availability hunt loop.
package hunter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/verte-zerg/namehunt/internal/generator"
	"github.com/verte-zerg/namehunt/internal/model"
)

// Checker performs a single remote availability check. Implementations must
// observe ctx and return OutcomeAborted when it fires mid-call.
type Checker interface {
	Check(ctx context.Context, candidate string) model.Outcome
}

// Timing holds the loop's delay policy.
type Timing struct {
	// ThrottlePause is how long the loop sleeps after a throttled outcome.
	ThrottlePause time.Duration
	// ErrorDelay is applied after a transient check failure.
	ErrorDelay time.Duration
	// RequestGap is the fixed delay between consecutive checks.
	RequestGap time.Duration
}

// DefaultTiming returns the production delay policy.
func DefaultTiming() Timing {
	return Timing{
		ThrottlePause: 60 * time.Second,
		ErrorDelay:    5 * time.Second,
		RequestGap:    1500 * time.Millisecond,
	}
}

// Hunter generates candidates and checks them one at a time until cancelled
// or a fatal configuration error occurs. Exactly one check is in flight at
// any moment. Events are emitted to the sink in order; stats and the found
// list are readable via Snapshot between iterations.
type Hunter struct {
	cfg     model.Config
	gen     *generator.Generator
	checker Checker
	sink    model.EventSink
	timing  Timing

	mu        sync.Mutex
	stats     model.Stats
	found     []model.FoundUsername
	throttled bool
	running   bool
	stopped   bool
	cancel    context.CancelFunc
}

// New constructs a Hunter. The found list persists across hunts until
// ClearFound is called.
func New(cfg model.Config, gen *generator.Generator, checker Checker, sink model.EventSink, timing Timing) *Hunter {
	return &Hunter{
		cfg:     cfg,
		gen:     gen,
		checker: checker,
		sink:    sink,
		timing:  timing,
	}
}

// Run executes one hunt session and blocks until it ends. Stats and the
// throttle flag are reset at start; the found list is kept. Run returns
// immediately if a hunt is already in progress.
func (h *Hunter) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		cancel()
		return
	}
	h.running = true
	h.stopped = false
	h.throttled = false
	h.stats = model.Stats{}
	h.cancel = cancel
	h.mu.Unlock()

	defer func() {
		cancel()
		h.mu.Lock()
		h.running = false
		h.throttled = false
		h.cancel = nil
		h.mu.Unlock()
	}()

	h.loop(ctx)
}

// Stop cancels the current hunt. It is idempotent: the "stopped by user"
// event is emitted at most once per hunt, and stopping an idle hunter is a
// no-op.
func (h *Hunter) Stop() {
	h.mu.Lock()
	if !h.running || h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	h.throttled = false
	cancel := h.cancel
	h.mu.Unlock()

	h.emit(model.LevelAccent, "stopped by user")
	if cancel != nil {
		cancel()
	}
}

// Running reports whether a hunt is in progress.
func (h *Hunter) Running() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

// Throttled reports whether the loop is waiting out a rate limit.
func (h *Hunter) Throttled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.throttled
}

// Snapshot returns the current counters and a copy of the found list.
func (h *Hunter) Snapshot() (model.Stats, []model.FoundUsername) {
	h.mu.Lock()
	defer h.mu.Unlock()
	found := make([]model.FoundUsername, len(h.found))
	copy(found, h.found)
	return h.stats, found
}

// ClearFound empties the accumulated found list.
func (h *Hunter) ClearFound() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.found = nil
}

func (h *Hunter) loop(ctx context.Context) {
	for {
		if h.Throttled() {
			h.emit(model.LevelAccent, fmt.Sprintf("rate limited, pausing for %s", h.timing.ThrottlePause))
			if !sleep(ctx, h.timing.ThrottlePause) {
				return
			}
			h.setThrottled(false)
			h.emit(model.LevelAccent, "resuming")
		}

		candidate, err := h.gen.Generate(h.cfg.Length)
		if err != nil {
			if errors.Is(err, generator.ErrEmptyAlphabet) {
				h.emit(model.LevelError, "cannot generate candidates: alphabet is empty")
			} else {
				h.emit(model.LevelError, fmt.Sprintf("cannot generate candidates: %v", err))
			}
			h.emit(model.LevelInfo, "hunt finished")
			return
		}

		h.emit(model.LevelMuted, "checking "+candidate)
		h.addAttempt()

		outcome := h.checker.Check(ctx, candidate)
		if ctx.Err() != nil || outcome == model.OutcomeAborted {
			h.emit(model.LevelMuted, "check aborted")
			return
		}

		switch outcome {
		case model.OutcomeAvailable:
			h.recordFound(candidate)
			h.emit(model.LevelSuccess, candidate+" is available")
		case model.OutcomeTaken:
			h.addTaken()
			if h.cfg.Verbose {
				h.emit(model.LevelMuted, candidate+" is taken")
			}
		case model.OutcomeThrottled:
			h.setThrottled(true)
		case model.OutcomeTransient:
			// Already reported by the checker.
			if !sleep(ctx, h.timing.ErrorDelay) {
				return
			}
		}

		if !sleep(ctx, h.timing.RequestGap) {
			return
		}
	}
}

func (h *Hunter) emit(level model.Level, text string) {
	h.sink.Emit(model.Event{Level: level, Text: text, At: time.Now()})
}

func (h *Hunter) addAttempt() {
	h.mu.Lock()
	h.stats.Attempts++
	h.mu.Unlock()
}

func (h *Hunter) addTaken() {
	h.mu.Lock()
	h.stats.Taken++
	h.mu.Unlock()
}

func (h *Hunter) recordFound(candidate string) {
	h.mu.Lock()
	h.stats.Available++
	h.found = append(h.found, model.FoundUsername{Name: candidate, FoundAt: time.Now()})
	h.mu.Unlock()
}

func (h *Hunter) setThrottled(v bool) {
	h.mu.Lock()
	h.throttled = v
	h.mu.Unlock()
}

// sleep waits for d or until ctx is cancelled. It reports whether the full
// duration elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
