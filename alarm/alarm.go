// Package alarm provides the engine's wake-up primitive: an opaque,
// single-pending-task timed callback used by the main loop to sleep until
// the next tag is due without waking any earlier than required.
//
// The contract (spec.md §4.5) only promises the callback never fires before
// the requested delay has elapsed; it says nothing about how that is
// achieved, so this is the one piece of the core the spec deliberately
// leaves to the implementation. No dependency in the reference pack offers
// a sub-millisecond-accurate, cancellable one-shot timer primitive, so this
// package is implemented directly on the standard library's time.Timer plus
// a short busy-spin for the final stretch — see DESIGN.md.
package alarm

import (
	"sync"
	"time"
)

// SpinThreshold is the delay below which Alarm busy-polls instead of
// relying on the host timer's resolution.
const SpinThreshold = 25 * time.Millisecond

// Callback receives the actual delay observed between Set and firing.
type Callback func(actual time.Duration)

// Alarm holds at most one pending task. A second Set cancels the first:
// its callback never runs.
type Alarm struct {
	mu         sync.Mutex
	generation uint64
	pending    bool
}

// New returns an Alarm with no pending task.
func New() *Alarm {
	return &Alarm{}
}

// Set arms the alarm to invoke cb after delay has elapsed, canceling any
// task previously armed with Set. Delays at or below SpinThreshold are
// realized by busy polling from the moment Set is called; longer delays
// sleep on a standard timer until the remaining delay drops to
// SpinThreshold, then spin for the rest, trading some CPU in the final
// stretch for precision the host timer alone cannot guarantee.
func (a *Alarm) Set(delay time.Duration, cb Callback) {
	a.mu.Lock()
	a.generation++
	gen := a.generation
	a.pending = true
	a.mu.Unlock()

	if delay < 0 {
		delay = 0
	}

	go a.run(gen, delay, cb)
}

// Unset cancels the pending task, if any. Its callback will not run.
func (a *Alarm) Unset() {
	a.mu.Lock()
	a.generation++
	a.pending = false
	a.mu.Unlock()
}

// Pending reports whether a task is currently armed.
func (a *Alarm) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}

func (a *Alarm) run(gen uint64, delay time.Duration, cb Callback) {
	start := time.Now()

	remaining := delay - SpinThreshold
	if remaining > 0 {
		timer := time.NewTimer(remaining)
		<-timer.C
		if !a.stillCurrent(gen) {
			return
		}
	}

	for time.Since(start) < delay {
		if !a.stillCurrent(gen) {
			return
		}
		// Yield briefly rather than a hard spin: keeps the final stretch
		// CPU-cheap while still polling far more often than a coarse
		// host timer would wake us.
		time.Sleep(time.Microsecond * 50)
	}

	a.mu.Lock()
	current := gen == a.generation && a.pending
	if current {
		a.pending = false
	}
	a.mu.Unlock()

	if !current {
		return
	}

	if cb != nil {
		cb(time.Since(start))
	}
}

func (a *Alarm) stillCurrent(gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return gen == a.generation && a.pending
}
