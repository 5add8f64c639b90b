package concurrent

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cancelei/aria-lang-sub001/internal/config"
)

const (
	defaultTickInterval = time.Millisecond
	defaultWheelSize    = 1024
)

// TimerHandle can cancel a scheduled timer before it fires.
type TimerHandle struct {
	id        uint64
	cancelled *atomic.Bool
}

// Cancel cancels the timer. Returns true if this call is the one that beat
// expiry, false if the timer had already fired (or already been
// cancelled).
func (h TimerHandle) Cancel() bool {
	return !h.cancelled.Swap(true)
}

// IsCancelled reports whether the timer's shared flag is set: by a Cancel
// that beat expiry, or by the wheel once the timer has fired.
func (h TimerHandle) IsCancelled() bool { return h.cancelled.Load() }

// ID returns the timer's identifier.
func (h TimerHandle) ID() uint64 { return h.id }

type timerEntry struct {
	deadlineTicks uint64
	callback      func()
	id            uint64
	cancelled     *atomic.Bool
}

// TimerWheel is a single-level timing wheel: O(1) scheduling and
// cancellation, one goroutine advancing a tick counter and draining the
// slot it lands on. Grounded on aria-runtime/src/timer.rs's WheelInner,
// translated from parking_lot::Mutex-per-slot + a dedicated tick thread to
// a []sync.Mutex-guarded container/list slot per tick and a ticker
// goroutine.
type TimerWheel struct {
	slots        []*wheelSlot
	tickInterval time.Duration
	wheelSize    uint64

	currentTick atomic.Uint64
	nextID      atomic.Uint64

	stop    chan struct{}
	running atomic.Bool
}

type wheelSlot struct {
	mu      sync.Mutex
	entries *list.List
}

// NewTimerWheel returns a wheel with the default 1ms tick and 1024 slots
// (~1 second of range before wraparound).
func NewTimerWheel() *TimerWheel {
	return NewTimerWheelConfig(defaultTickInterval, defaultWheelSize)
}

// NewTimerWheelConfig returns a wheel with a custom tick interval and slot
// count.
func NewTimerWheelConfig(tickInterval time.Duration, wheelSize int) *TimerWheel {
	slots := make([]*wheelSlot, wheelSize)
	for i := range slots {
		slots[i] = &wheelSlot{entries: list.New()}
	}
	w := &TimerWheel{
		slots:        slots,
		tickInterval: tickInterval,
		wheelSize:    uint64(wheelSize),
	}
	w.nextID.Store(1)
	return w
}

// NewTimerWheelFromConfig builds a wheel from config.Options'
// TickInterval/WheelSize tunables.
func NewTimerWheelFromConfig(o *config.Options) *TimerWheel {
	return NewTimerWheelConfig(o.TickInterval, o.WheelSize)
}

// Schedule inserts callback to run after delay, returning a handle that can
// cancel it before it fires.
func (w *TimerWheel) Schedule(delay time.Duration, callback func()) TimerHandle {
	id := w.nextID.Add(1)
	cancelled := new(atomic.Bool)

	delayTicks := uint64(delay / w.tickInterval)
	deadline := w.currentTick.Load() + delayTicks
	slotIdx := deadline % w.wheelSize

	entry := &timerEntry{deadlineTicks: deadline, callback: callback, id: id, cancelled: cancelled}

	slot := w.slots[slotIdx]
	slot.mu.Lock()
	slot.entries.PushBack(entry)
	slot.mu.Unlock()

	return TimerHandle{id: id, cancelled: cancelled}
}

// ScheduleAt schedules callback to run at the given absolute deadline.
func (w *TimerWheel) ScheduleAt(deadline time.Time, callback func()) TimerHandle {
	delay := time.Until(deadline)
	if delay < 0 {
		delay = 0
	}
	return w.Schedule(delay, callback)
}

// Advance manually drives the wheel forward by one tick and returns the
// callbacks that expired, for deterministic tests. Start's tick goroutine
// calls this internally once per tick interval.
func (w *TimerWheel) Advance() []func() {
	current := w.currentTick.Add(1) - 1
	slotIdx := current % w.wheelSize
	slot := w.slots[slotIdx]

	var expired []func()

	slot.mu.Lock()
	var remaining list.List
	for e := slot.entries.Front(); e != nil; e = e.Next() {
		entry := e.Value.(*timerEntry)
		if entry.cancelled.Load() {
			continue
		}
		if entry.deadlineTicks <= current {
			// Claim the shared flag so a later Cancel reports that expiry won.
			if entry.cancelled.CompareAndSwap(false, true) {
				expired = append(expired, entry.callback)
			}
		} else {
			remaining.PushBack(entry)
		}
	}
	slot.entries.Init()
	slot.entries.PushBackList(&remaining)
	slot.mu.Unlock()

	return expired
}

// Start launches the tick goroutine. Must be called before scheduled
// timers will fire on their own; tests that only need deterministic
// behavior can call Advance directly instead.
func (w *TimerWheel) Start() {
	if !w.running.CompareAndSwap(false, true) {
		return
	}
	w.stop = make(chan struct{})

	go func() {
		ticker := time.NewTicker(w.tickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-w.stop:
				return
			case <-ticker.C:
				for _, cb := range w.Advance() {
					cb()
				}
			}
		}
	}()
}

// Stop halts the tick goroutine. Safe to call more than once.
func (w *TimerWheel) Stop() {
	if !w.running.CompareAndSwap(true, false) {
		return
	}
	close(w.stop)
}

// CurrentTick returns the wheel's current tick count.
func (w *TimerWheel) CurrentTick() uint64 { return w.currentTick.Load() }

// TickInterval returns the wheel's configured tick duration.
func (w *TimerWheel) TickInterval() time.Duration { return w.tickInterval }
