package floaty

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

type countingAnimator struct {
	calls int
	last  time.Time
	fn    func()
}

func (c *countingAnimator) Animate(now time.Time) {
	c.calls++
	c.last = now
	if c.fn != nil {
		c.fn()
	}
}

// --- FrameQueue ---

func TestFrameQueueFlushRunsOnce(t *testing.T) {
	q := NewFrameQueue()
	n := 0
	q.RequestFrame(func(time.Time) { n++ })
	q.Flush(testEpoch)
	q.Flush(testEpoch)
	if n != 1 {
		t.Errorf("callback ran %d times, want 1", n)
	}
}

func TestFrameQueueRequestDuringFlushDefers(t *testing.T) {
	q := NewFrameQueue()
	n := 0
	var again func(time.Time)
	again = func(time.Time) {
		n++
		q.RequestFrame(again)
	}
	q.RequestFrame(again)
	q.Flush(testEpoch)
	if n != 1 {
		t.Fatalf("after first flush n = %d, want 1", n)
	}
	if q.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", q.Pending())
	}
	q.Flush(testEpoch)
	if n != 2 {
		t.Errorf("after second flush n = %d, want 2", n)
	}
}

func TestFrameQueueCancel(t *testing.T) {
	q := NewFrameQueue()
	ran := false
	id := q.RequestFrame(func(time.Time) { ran = true })
	q.CancelFrame(id)
	q.CancelFrame(id) // unknown ids are ignored
	q.Flush(testEpoch)
	if ran {
		t.Error("cancelled callback ran")
	}
}

// --- FrameScheduler ---

func TestSchedulerAddIsIdempotent(t *testing.T) {
	q := NewFrameQueue()
	s := NewFrameScheduler(q)
	a := &countingAnimator{}

	if !s.Add(a) {
		t.Fatal("first Add should return true")
	}
	if s.Add(a) {
		t.Error("second Add should return false")
	}
	q.Flush(testEpoch)
	if a.calls != 1 {
		t.Errorf("calls = %d, want 1", a.calls)
	}
	if !a.last.Equal(testEpoch) {
		t.Errorf("timestamp = %v, want %v", a.last, testEpoch)
	}
}

func TestSchedulerRemoveThenHas(t *testing.T) {
	s := NewFrameScheduler(NewFrameQueue())
	a := &countingAnimator{}
	s.Add(a)
	s.Remove(a)
	if s.Has(a) {
		t.Error("Has should be false after Remove")
	}
	s.Remove(a) // no-op
}

func TestSchedulerRequestOutstandingOnlyWhileNonEmpty(t *testing.T) {
	q := NewFrameQueue()
	s := NewFrameScheduler(q)
	a := &countingAnimator{}

	if q.Pending() != 0 || s.Running() {
		t.Fatal("empty scheduler should not request frames")
	}
	s.Add(a)
	if q.Pending() != 1 || !s.Running() {
		t.Fatalf("Pending = %d, Running = %v after Add", q.Pending(), s.Running())
	}
	q.Flush(testEpoch)
	if q.Pending() != 1 {
		t.Errorf("Pending = %d after tick, want 1", q.Pending())
	}
	s.Remove(a)
	if q.Pending() != 0 || s.Running() {
		t.Errorf("Pending = %d, Running = %v after last Remove", q.Pending(), s.Running())
	}
}

func TestSchedulerRunsInRegistrationOrder(t *testing.T) {
	q := NewFrameQueue()
	s := NewFrameScheduler(q)
	var order []string
	s.Add(NewFrameCallback(func(time.Time) { order = append(order, "a") }))
	s.Add(NewFrameCallback(func(time.Time) { order = append(order, "b") }))
	s.Add(NewFrameCallback(func(time.Time) { order = append(order, "c") }))
	q.Flush(testEpoch)
	if got := strings.Join(order, ""); got != "abc" {
		t.Errorf("order = %q, want abc", got)
	}
}

func TestSchedulerSkipsCallbackRemovedMidTick(t *testing.T) {
	q := NewFrameQueue()
	s := NewFrameScheduler(q)
	victim := &countingAnimator{}
	killer := &countingAnimator{fn: func() { s.Remove(victim) }}
	s.Add(killer)
	s.Add(victim)
	q.Flush(testEpoch)
	if victim.calls != 0 {
		t.Errorf("removed callback ran %d times", victim.calls)
	}
}

func TestSchedulerAddDuringTickRunsNextFrame(t *testing.T) {
	q := NewFrameQueue()
	s := NewFrameScheduler(q)
	late := &countingAnimator{}
	first := &countingAnimator{}
	first.fn = func() { s.Add(late) }
	s.Add(first)

	q.Flush(testEpoch)
	if late.calls != 0 {
		t.Errorf("callback added mid-tick ran in the same tick")
	}
	if q.Pending() != 1 {
		t.Fatalf("Pending = %d, want exactly 1 frame request", q.Pending())
	}
	q.Flush(testEpoch)
	if late.calls != 1 {
		t.Errorf("late.calls = %d, want 1", late.calls)
	}
}

func TestSchedulerSelfRemovalStopsLoop(t *testing.T) {
	q := NewFrameQueue()
	s := NewFrameScheduler(q)
	a := &countingAnimator{}
	a.fn = func() { s.Remove(a) }
	s.Add(a)
	q.Flush(testEpoch)
	if q.Pending() != 0 || s.Running() {
		t.Errorf("Pending = %d, Running = %v after self-removal", q.Pending(), s.Running())
	}
}

func TestSchedulerPauseResume(t *testing.T) {
	q := NewFrameQueue()
	s := NewFrameScheduler(q)
	a := &countingAnimator{}
	s.Add(a)

	s.Pause()
	if q.Pending() != 0 {
		t.Fatalf("Pending = %d while paused", q.Pending())
	}
	q.Flush(testEpoch)
	if a.calls != 0 {
		t.Errorf("paused scheduler ran callbacks")
	}
	if !s.Has(a) {
		t.Error("Pause must keep the registry")
	}

	s.Resume()
	q.Flush(testEpoch)
	if a.calls != 1 {
		t.Errorf("calls = %d after Resume, want 1", a.calls)
	}
}

func TestSchedulerRecoversPanics(t *testing.T) {
	q := NewFrameQueue()
	s := NewFrameScheduler(q)
	var got []error
	s.SetErrorHandler(func(err error) { got = append(got, err) })

	boom := errors.New("boom")
	s.Add(NewFrameCallback(func(time.Time) { panic(boom) }))
	after := &countingAnimator{}
	s.Add(after)

	q.Flush(testEpoch)
	if len(got) != 1 || !errors.Is(got[0], boom) {
		t.Fatalf("errors = %v, want one wrapping boom", got)
	}
	if after.calls != 1 {
		t.Errorf("tick did not continue after a panic")
	}
	if q.Pending() != 1 {
		t.Errorf("loop stopped after a panic")
	}
}

func TestSchedulerNilErrorHandlerDiscards(t *testing.T) {
	q := NewFrameQueue()
	s := NewFrameScheduler(q)
	s.SetErrorHandler(nil)
	s.Add(NewFrameCallback(func(time.Time) { panic("quiet") }))
	q.Flush(testEpoch) // must not panic
}
