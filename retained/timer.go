package retained

import (
	"sync/atomic"
	"time"
)

// TimerID uniquely identifies a timer.
type TimerID uint64

var nextTimerID atomic.Uint64

func newTimerID() TimerID {
	return TimerID(nextTimerID.Add(1))
}

// Timer calls a function after an interval of Gui time, once or
// repeatedly. Time only passes when the host calls Gui.AdvanceTime.
type Timer struct {
	id        TimerID
	interval  time.Duration
	remaining time.Duration
	repeat    bool
	fn        func()
	stopped   bool
}

// ID returns the timer's unique identifier.
func (t *Timer) ID() TimerID { return t.id }

// Stop cancels the timer. A stopped timer never fires again.
func (t *Timer) Stop() { t.stopped = true }

// IsStopped reports whether the timer was stopped or has fired for the
// last time.
func (t *Timer) IsStopped() bool { return t.stopped }

// Timers holds the pending timers of a Gui.
type Timers struct {
	owner  *WidgetBase
	active []*Timer
}

// Schedule calls fn once after interval.
func (r *Timers) Schedule(interval time.Duration, fn func()) *Timer {
	return r.add(interval, fn, false)
}

// Repeat calls fn every interval until the timer is stopped.
func (r *Timers) Repeat(interval time.Duration, fn func()) *Timer {
	return r.add(interval, fn, true)
}

func (r *Timers) add(interval time.Duration, fn func(), repeat bool) *Timer {
	t := &Timer{
		id:        newTimerID(),
		interval:  max(interval, 0),
		remaining: max(interval, 0),
		repeat:    repeat,
		fn:        fn,
	}
	r.active = append(r.active, t)
	return t
}

// Count returns the number of pending timers.
func (r *Timers) Count() int {
	n := 0
	for _, t := range r.active {
		if !t.stopped {
			n++
		}
	}
	return n
}

// advance moves time forward and fires due timers in scheduling order. A
// timer fires at most once per call, even if several intervals elapsed.
// Timers scheduled by callbacks start counting on the next call. It
// reports whether any timer fired.
func (r *Timers) advance(elapsed time.Duration) bool {
	if len(r.active) == 0 {
		return false
	}
	snapshot := make([]*Timer, len(r.active))
	copy(snapshot, r.active)

	fired := false
	for _, t := range snapshot {
		if t.stopped {
			continue
		}
		t.remaining -= elapsed
		if t.remaining > 0 {
			continue
		}
		if t.repeat {
			t.remaining = t.interval
		} else {
			t.stopped = true
		}
		fired = true
		if t.fn != nil {
			guard(r.owner, t.fn)
		}
	}

	live := r.active[:0]
	for _, t := range r.active {
		if !t.stopped {
			live = append(live, t)
		}
	}
	clear(r.active[len(live):])
	r.active = live
	return fired
}
