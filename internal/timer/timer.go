// Package timer implements the pomodoro countdown engine: a
// focus/break phase cycle with pausable, always-cancellable handles.
package timer

import (
	"sync"
	"time"

	"github.com/estudia-cli/estudia/internal/domain"
)

// Config sets the phase lengths and break cadence.
type Config struct {
	FocusMin         int
	ShortBreakMin    int
	LongBreakMin     int
	CyclesBeforeLong int
}

// DefaultConfig is the classic 25/5/15 cycle with a long break every fourth
// focus interval.
func DefaultConfig() Config {
	return Config{
		FocusMin:         25,
		ShortBreakMin:    5,
		LongBreakMin:     15,
		CyclesBeforeLong: 4,
	}
}

// PhaseDuration returns the configured length of a phase.
func (c Config) PhaseDuration(phase domain.PomodoroPhase) time.Duration {
	switch phase {
	case domain.PhaseShortBreak:
		return time.Duration(c.ShortBreakMin) * time.Minute
	case domain.PhaseLongBreak:
		return time.Duration(c.LongBreakMin) * time.Minute
	default:
		return time.Duration(c.FocusMin) * time.Minute
	}
}

// NextPhase returns the phase that follows a completed one. completedFocus
// counts finished focus intervals including the one just completed.
func (c Config) NextPhase(current domain.PomodoroPhase, completedFocus int) domain.PomodoroPhase {
	if current != domain.PhaseFocus {
		return domain.PhaseFocus
	}
	if c.CyclesBeforeLong > 0 && completedFocus%c.CyclesBeforeLong == 0 {
		return domain.PhaseLongBreak
	}
	return domain.PhaseShortBreak
}

// Callbacks receive countdown progress. Both are invoked from the handle's
// goroutine and may be nil.
type Callbacks struct {
	OnTick func(remaining time.Duration)
	OnDone func(phase domain.PomodoroPhase)
}

// Handle is one running countdown. Stop is idempotent and always releases
// the underlying goroutine, whether the countdown finished, was paused, or
// is still running.
type Handle struct {
	phase    domain.PomodoroPhase
	interval time.Duration

	mu        sync.Mutex
	remaining time.Duration
	paused    bool

	done     chan struct{}
	stopOnce sync.Once
}

// Start launches a countdown of the given duration, ticking at interval.
// Production callers tick once per second; tests tick faster.
func Start(phase domain.PomodoroPhase, duration, interval time.Duration, cb Callbacks) *Handle {
	h := &Handle{
		phase:     phase,
		interval:  interval,
		remaining: duration,
		done:      make(chan struct{}),
	}
	go h.run(cb)
	return h
}

func (h *Handle) run(cb Callbacks) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			finished := h.advance()
			h.mu.Lock()
			remaining := h.remaining
			paused := h.paused
			h.mu.Unlock()

			if paused {
				continue
			}
			if cb.OnTick != nil {
				cb.OnTick(remaining)
			}
			if finished {
				if cb.OnDone != nil {
					cb.OnDone(h.phase)
				}
				h.Stop()
				return
			}
		}
	}
}

// advance reduces the remaining time by one interval and reports completion.
func (h *Handle) advance() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.paused {
		return false
	}
	h.remaining -= h.interval
	return h.remaining <= 0
}

// Phase returns the phase this countdown runs.
func (h *Handle) Phase() domain.PomodoroPhase { return h.phase }

// Remaining returns the time left on the countdown.
func (h *Handle) Remaining() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.remaining < 0 {
		return 0
	}
	return h.remaining
}

// Pause freezes the countdown. Ticks keep arriving but no time is consumed.
func (h *Handle) Pause() {
	h.mu.Lock()
	h.paused = true
	h.mu.Unlock()
}

// Resume continues a paused countdown.
func (h *Handle) Resume() {
	h.mu.Lock()
	h.paused = false
	h.mu.Unlock()
}

// Paused reports whether the countdown is currently frozen.
func (h *Handle) Paused() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.paused
}

// Stop cancels the countdown and releases its goroutine. Safe to call any
// number of times and after completion.
func (h *Handle) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

// Done is closed when the countdown stops, whether it completed or was
// cancelled.
func (h *Handle) Done() <-chan struct{} { return h.done }
