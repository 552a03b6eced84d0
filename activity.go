package floaty

import "time"

// ActivityMonitor watches a document for pointer input and announces idle and
// screensaver transitions on a bus:
//
//   - EventActivityIdle after IdleAfter without input, EventActivityActive on
//     the next input.
//   - EventScreensaverShown after ScreensaverAfter without input,
//     EventScreensaverHidden on the next input.
//
// A zero timeout disables that pair of events. The monitor registers itself
// with the scheduler and is evaluated once per frame.
type ActivityMonitor struct {
	IdleAfter        time.Duration
	ScreensaverAfter time.Duration

	doc   *Document
	bus   *Bus
	sched *FrameScheduler
	clock TimeProvider

	seq         uint64
	last        time.Time
	idle        bool
	screensaver bool
}

// NewActivityMonitor creates a monitor and starts it.
func NewActivityMonitor(doc *Document, bus *Bus, sched *FrameScheduler, clock TimeProvider) *ActivityMonitor {
	m := &ActivityMonitor{
		doc:   doc,
		bus:   bus,
		sched: sched,
		clock: clock,
		seq:   doc.InputSeq(),
		last:  clock.Now(),
	}
	sched.Add(m)
	return m
}

// Touch records activity that did not come through the document, such as a
// key press.
func (m *ActivityMonitor) Touch() {
	m.activity(m.clock.Now())
}

// Idle reports whether the user is currently idle.
func (m *ActivityMonitor) Idle() bool {
	return m.idle
}

// ScreensaverShown reports whether the screensaver is currently shown.
func (m *ActivityMonitor) ScreensaverShown() bool {
	return m.screensaver
}

// ShowScreensaver shows the screensaver immediately. The next activity hides
// it again.
func (m *ActivityMonitor) ShowScreensaver() {
	if !m.screensaver {
		m.screensaver = true
		m.bus.Emit(EventScreensaverShown, nil)
	}
}

// Stop unregisters the monitor.
func (m *ActivityMonitor) Stop() {
	m.sched.Remove(m)
}

// Animate checks for new input and fires any due transitions.
func (m *ActivityMonitor) Animate(now time.Time) {
	if seq := m.doc.InputSeq(); seq != m.seq {
		m.seq = seq
		m.activity(now)
		return
	}
	quiet := now.Sub(m.last)
	if m.IdleAfter > 0 && !m.idle && quiet >= m.IdleAfter {
		m.idle = true
		m.bus.Emit(EventActivityIdle, nil)
	}
	if m.ScreensaverAfter > 0 && !m.screensaver && quiet >= m.ScreensaverAfter {
		m.ShowScreensaver()
	}
}

func (m *ActivityMonitor) activity(now time.Time) {
	m.last = now
	if m.idle {
		m.idle = false
		m.bus.Emit(EventActivityActive, nil)
	}
	if m.screensaver {
		m.screensaver = false
		m.bus.Emit(EventScreensaverHidden, nil)
	}
}
