package concurrent

import (
	"testing"
	"time"

	"github.com/cancelei/aria-lang-sub001/internal/config"
)

func TestTimerWheelAdvanceFiresDueEntries(t *testing.T) {
	w := NewTimerWheelConfig(time.Millisecond, 16)
	fired := false
	w.Schedule(0, func() { fired = true })

	expired := w.Advance()
	if len(expired) != 1 {
		t.Fatalf("expected 1 expired callback, got %d", len(expired))
	}
	expired[0]()
	if !fired {
		t.Fatal("expected callback to run")
	}
}

func TestTimerWheelCancelBeatsExpiry(t *testing.T) {
	w := NewTimerWheelConfig(time.Millisecond, 16)
	fired := false
	handle := w.Schedule(0, func() { fired = true })

	if !handle.Cancel() {
		t.Fatal("expected Cancel to win the race against an unstarted wheel")
	}

	for _, cb := range w.Advance() {
		cb()
	}
	if fired {
		t.Fatal("cancelled timer must not fire")
	}
}

func TestTimerHandleCancelIsIdempotent(t *testing.T) {
	w := NewTimerWheelConfig(time.Millisecond, 16)
	handle := w.Schedule(0, func() {})

	if !handle.Cancel() {
		t.Fatal("expected the first Cancel to win")
	}
	if handle.Cancel() {
		t.Fatal("expected the second Cancel to report it was already cancelled")
	}
}

func TestTimerWheelWrapsAroundCorrectly(t *testing.T) {
	w := NewTimerWheelConfig(time.Millisecond, 4)
	fired := false
	// delayTicks=5 on a 4-slot wheel means the deadline's slot (index 1) is
	// visited once too early (tick 1) before the wheel wraps back to it
	// (tick 5), so this exercises the "requeue, don't fire yet" path too.
	w.Schedule(5*time.Millisecond, func() { fired = true })

	for i := 0; i < 6; i++ {
		for _, cb := range w.Advance() {
			cb()
		}
	}
	if !fired {
		t.Fatal("expected the wrapped timer to eventually fire")
	}
}

func TestNewTimerWheelFromConfigUsesTunables(t *testing.T) {
	o := config.New(config.WithTickInterval(2*time.Millisecond), config.WithWheelSize(8))
	w := NewTimerWheelFromConfig(o)
	if w.TickInterval() != 2*time.Millisecond {
		t.Fatalf("expected 2ms tick interval, got %v", w.TickInterval())
	}
	if len(w.slots) != 8 {
		t.Fatalf("expected 8 slots, got %d", len(w.slots))
	}
}

func TestTimerWheelStartAndStop(t *testing.T) {
	w := NewTimerWheelConfig(time.Millisecond, 64)
	fired := make(chan struct{})
	w.Start()
	defer w.Stop()

	w.Schedule(2*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire within the deadline")
	}
}
