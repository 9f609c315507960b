package timesheet

import (
	"testing"
	"time"
)

// fakeClock is a manually advanced clock for timer tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeTimer() (*Timer, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)}
	return newTimer(clock.Now), clock
}

func TestTimerRoundTrip(t *testing.T) {
	timer, clock := newFakeTimer()

	timer.Start()
	clock.Advance(5 * time.Second)

	if got := timer.Elapsed(); got != 5 {
		t.Errorf("Elapsed = %d, want 5", got)
	}
	final := timer.Stop()
	if final != 5 {
		t.Errorf("Stop = %d, want 5", final)
	}
	// 5s is 0.0014h; two-decimal rounding makes it 0.00, not 0.0014.
	if got := HoursFromSeconds(final); got != 0 {
		t.Errorf("HoursFromSeconds(5) = %v, want 0", got)
	}
	if got := timer.Elapsed(); got != 0 {
		t.Errorf("elapsed after stop = %d, want 0", got)
	}
}

func TestTimerResumeFromStop(t *testing.T) {
	timer, clock := newFakeTimer()

	timer.Start()
	clock.Advance(10 * time.Second)
	if got := timer.Elapsed(); got != 10 {
		t.Fatalf("Elapsed = %d, want 10", got)
	}

	// Restarting while running is a no-op; elapsed keeps counting from
	// the same origin.
	timer.Start()
	clock.Advance(5 * time.Second)
	if got := timer.Elapsed(); got != 15 {
		t.Errorf("Elapsed after redundant Start = %d, want 15", got)
	}
}

func TestTimerPauseResume(t *testing.T) {
	timer, clock := newFakeTimer()

	timer.Start()
	clock.Advance(10 * time.Second)
	timer.Pause()

	if timer.Running() {
		t.Error("timer still running after Pause")
	}

	// Paused time does not count.
	clock.Advance(30 * time.Second)
	if got := timer.Elapsed(); got != 10 {
		t.Fatalf("Elapsed while paused = %d, want 10", got)
	}

	timer.Start()
	clock.Advance(5 * time.Second)
	if got := timer.Stop(); got != 15 {
		t.Errorf("Stop after resume = %d, want 15", got)
	}
}

func TestTimerReset(t *testing.T) {
	timer, clock := newFakeTimer()

	timer.Start()
	clock.Advance(42 * time.Second)
	timer.Reset()

	if timer.Running() {
		t.Error("timer still running after Reset")
	}
	if got := timer.Elapsed(); got != 0 {
		t.Errorf("Elapsed after Reset = %d, want 0", got)
	}

	// Reset while idle is also fine.
	timer.Reset()
	if got := timer.Stop(); got != 0 {
		t.Errorf("Stop after Reset = %d, want 0", got)
	}
}

func TestTimerStopWhileIdle(t *testing.T) {
	timer, _ := newFakeTimer()
	if got := timer.Stop(); got != 0 {
		t.Errorf("Stop on idle timer = %d, want 0", got)
	}
}

func TestTimerWholeSeconds(t *testing.T) {
	timer, clock := newFakeTimer()
	timer.Start()
	clock.Advance(2500 * time.Millisecond)
	if got := timer.Elapsed(); got != 2 {
		t.Errorf("Elapsed = %d, want floor 2", got)
	}
}

func TestTimerTicksReleaseOnStop(t *testing.T) {
	timer := NewTimer()
	timer.Start()

	stop := make(chan struct{})
	ticks := timer.Ticks(stop)

	// Stopping the engine must end the tick stream.
	timer.Stop()
	select {
	case _, ok := <-ticks:
		if ok {
			// One in-flight tick may still arrive; the channel must
			// close right after.
			if _, ok := <-ticks; ok {
				t.Error("tick stream still open after Stop")
			}
		}
	case <-time.After(3 * time.Second):
		t.Error("tick stream did not close after Stop")
	}
	close(stop)
}

func TestHoursFromSeconds(t *testing.T) {
	tests := []struct {
		sec  int64
		want float64
	}{
		{0, 0},
		{5, 0},
		{18, 0.01},   // 0.005h rounds up
		{3600, 1},
		{5400, 1.5},
		{4500, 1.25},
		{30600, 8.5},
	}
	for _, tt := range tests {
		if got := HoursFromSeconds(tt.sec); got != tt.want {
			t.Errorf("HoursFromSeconds(%d) = %v, want %v", tt.sec, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		sec  int64
		want string
	}{
		{0, "00:00:00"},
		{61, "00:01:01"},
		{3661, "01:01:01"},
		{36000, "10:00:00"},
	}
	for _, tt := range tests {
		if got := FormatClock(tt.sec); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}
