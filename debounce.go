package floaty

import "time"

// Debouncer runs fn once, delay after the most recent Call. It waits on the
// frame scheduler rather than a timer goroutine, so fn runs on the frame loop
// like everything else.
type Debouncer struct {
	sched    *FrameScheduler
	clock    TimeProvider
	delay    time.Duration
	fn       func()
	deadline time.Time
}

// NewDebouncer creates a debouncer. Nothing is scheduled until Call.
func NewDebouncer(sched *FrameScheduler, clock TimeProvider, delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{sched: sched, clock: clock, delay: delay, fn: fn}
}

// Call (re)starts the delay.
func (d *Debouncer) Call() {
	d.deadline = d.clock.Now().Add(d.delay)
	d.sched.Add(d)
}

// Pending reports whether a call is waiting to fire.
func (d *Debouncer) Pending() bool {
	return d.sched.Has(d)
}

// Cancel drops a pending call.
func (d *Debouncer) Cancel() {
	d.sched.Remove(d)
}

// Animate fires fn once the deadline has passed.
func (d *Debouncer) Animate(now time.Time) {
	if now.Before(d.deadline) {
		return
	}
	d.sched.Remove(d)
	d.fn()
}
