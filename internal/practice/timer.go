package practice

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTransition is returned when a state machine is asked to move
// along an edge it does not have.
var ErrInvalidTransition = errors.New("invalid state transition")

// Mode selects how a Timer counts.
type Mode int

const (
	Countdown Mode = iota // shows remaining time, finishes at zero
	Stopwatch             // shows elapsed time, finishes at the limit
)

func (m Mode) String() string {
	if m == Stopwatch {
		return "stopwatch"
	}
	return "countdown"
}

// TimerState is the lifecycle state of a Timer.
type TimerState int

const (
	TimerPaused   TimerState = iota // not counting; also the initial state
	TimerRunning                    // counting on each Tick
	TimerFinished                   // reached its limit; Reset to reuse
)

func (s TimerState) String() string {
	switch s {
	case TimerRunning:
		return "running"
	case TimerFinished:
		return "finished"
	}
	return "paused"
}

// lowThreshold is the countdown value at which the clock is shown as low.
const lowThreshold = 10

// Timer counts whole seconds toward a limit. It is not safe for concurrent
// use; Run is the only method that should be active while it ticks.
type Timer struct {
	mode       Mode
	limit      int
	elapsed    int
	state      TimerState
	onComplete func()
}

// NewTimer creates a paused timer with the given limit in seconds.
// onComplete, when non-nil, runs once when the timer finishes.
func NewTimer(mode Mode, seconds int, onComplete func()) *Timer {
	return &Timer{mode: mode, limit: seconds, onComplete: onComplete}
}

// Start moves a paused timer to running.
func (t *Timer) Start() error {
	switch t.state {
	case TimerRunning:
		return nil
	case TimerFinished:
		return fmt.Errorf("%w: start a finished timer", ErrInvalidTransition)
	}
	t.state = TimerRunning
	return nil
}

// Pause stops counting without losing progress.
func (t *Timer) Pause() error {
	if t.state != TimerRunning {
		return fmt.Errorf("%w: pause a %s timer", ErrInvalidTransition, t.state)
	}
	t.state = TimerPaused
	return nil
}

// Reset returns the timer to its initial paused state.
func (t *Timer) Reset() {
	t.elapsed = 0
	t.state = TimerPaused
}

// Tick advances a running timer by one second.
func (t *Timer) Tick() {
	if t.state != TimerRunning {
		return
	}
	t.elapsed++
	if t.elapsed >= t.limit {
		t.elapsed = t.limit
		t.state = TimerFinished
		if t.onComplete != nil {
			t.onComplete()
		}
	}
}

// State returns the current state.
func (t *Timer) State() TimerState { return t.state }

// Mode returns how the timer counts.
func (t *Timer) Mode() Mode { return t.mode }

// Elapsed returns the seconds counted so far.
func (t *Timer) Elapsed() int { return t.elapsed }

// Remaining returns the seconds left before the limit.
func (t *Timer) Remaining() int { return t.limit - t.elapsed }

// Value is the number shown on the clock: remaining for a countdown,
// elapsed for a stopwatch.
func (t *Timer) Value() int {
	if t.mode == Countdown {
		return t.Remaining()
	}
	return t.elapsed
}

// Display formats Value as MM:SS.
func (t *Timer) Display() string {
	v := t.Value()
	return fmt.Sprintf("%02d:%02d", v/60, v%60)
}

// Progress returns Value as a percentage of the limit.
func (t *Timer) Progress() float64 {
	if t.limit <= 0 {
		return 0
	}
	return float64(t.Value()) / float64(t.limit) * 100
}

// IsLow reports whether a countdown is in its last ten seconds.
func (t *Timer) IsLow() bool {
	return t.mode == Countdown && t.Value() <= lowThreshold
}

// Run starts the timer and ticks it every interval until it finishes or
// ctx is done. The ticker is always stopped before Run returns; on
// cancellation the timer is left paused and ctx.Err() is returned.
func (t *Timer) Run(ctx context.Context, interval time.Duration, onTick func(*Timer)) error {
	if err := t.Start(); err != nil {
		return err
	}
	if t.limit <= 0 {
		t.state = TimerFinished
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.state = TimerPaused
			return ctx.Err()
		case <-ticker.C:
			t.Tick()
			if onTick != nil {
				onTick(t)
			}
			if t.state == TimerFinished {
				return nil
			}
		}
	}
}
