package timesheet

import (
	"fmt"
	"math"
	"sync"
	"time"
)

// TimerState is the engine's lifecycle state.
type TimerState int

const (
	TimerIdle TimerState = iota
	TimerRunning
)

// Timer is an elapsed-time counter in whole seconds. Starting again
// after a pause resumes from the elapsed value; Stop and Reset discard it.
// Selecting a project before starting is the caller's precondition,
// not the engine's.
type Timer struct {
	mu      sync.Mutex
	state   TimerState
	origin  time.Time
	elapsed int64
	now     func() time.Time
}

// NewTimer returns an idle timer on the wall clock.
func NewTimer() *Timer {
	return newTimer(time.Now)
}

func newTimer(now func() time.Time) *Timer {
	return &Timer{now: now}
}

// Start transitions Idle -> Running, counting from the current elapsed
// value by recording a synthetic origin. No-op while already running.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == TimerRunning {
		return
	}
	t.origin = t.now().Add(-time.Duration(t.elapsed) * time.Second)
	t.state = TimerRunning
}

// Elapsed recomputes and returns the whole seconds since the origin.
func (t *Timer) Elapsed() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == TimerRunning {
		t.elapsed = int64(t.now().Sub(t.origin) / time.Second)
	}
	return t.elapsed
}

// Stop halts the timer and returns the final elapsed seconds. The
// caller converts seconds to hours and zeroes the session.
func (t *Timer) Stop() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == TimerRunning {
		t.elapsed = int64(t.now().Sub(t.origin) / time.Second)
		t.state = TimerIdle
	}
	final := t.elapsed
	t.elapsed = 0
	return final
}

// Pause halts counting but keeps the elapsed value so a later Start
// resumes from it.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state == TimerRunning {
		t.elapsed = int64(t.now().Sub(t.origin) / time.Second)
		t.state = TimerIdle
	}
}

// Reset halts the timer and zeroes elapsed, discarding the session.
// Permitted while running.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = TimerIdle
	t.elapsed = 0
}

// Running reports whether the timer is counting.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == TimerRunning
}

// Ticks emits the elapsed seconds once per second until the timer
// leaves Running or stop is closed. The ticker is released on every
// exit path.
func (t *Timer) Ticks(stop <-chan struct{}) <-chan int64 {
	out := make(chan int64)
	go func() {
		defer close(out)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if !t.Running() {
					return
				}
				select {
				case out <- t.Elapsed():
				case <-stop:
					return
				}
			}
		}
	}()
	return out
}

// HoursFromSeconds converts timer seconds to hours rounded to two
// decimals, so 5 seconds is 0.00, not 0.0014.
func HoursFromSeconds(sec int64) float64 {
	return Round2(float64(sec) / 3600)
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatClock renders seconds as HH:MM:SS.
func FormatClock(sec int64) string {
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
