package floaty

import (
	"testing"
	"time"
)

func TestDebouncerFiresOnceAfterQuiet(t *testing.T) {
	q := NewFrameQueue()
	sched := NewFrameScheduler(q)
	clock := NewMockClock(testEpoch)
	n := 0
	d := NewDebouncer(sched, clock, 200*time.Millisecond, func() { n++ })

	d.Call()
	q.Flush(clock.Advance(100 * time.Millisecond))
	d.Call() // restarts the delay
	q.Flush(clock.Advance(150 * time.Millisecond))
	if n != 0 {
		t.Fatalf("fired before the delay elapsed after the last call")
	}
	if !d.Pending() {
		t.Fatal("Pending should be true while waiting")
	}
	q.Flush(clock.Advance(60 * time.Millisecond))
	if n != 1 {
		t.Fatalf("n = %d, want 1", n)
	}
	q.Flush(clock.Advance(time.Second))
	if n != 1 || d.Pending() {
		t.Errorf("n = %d, pending = %v after firing", n, d.Pending())
	}
}

func TestDebouncerCancel(t *testing.T) {
	q := NewFrameQueue()
	sched := NewFrameScheduler(q)
	clock := NewMockClock(testEpoch)
	n := 0
	d := NewDebouncer(sched, clock, 10*time.Millisecond, func() { n++ })
	d.Call()
	d.Cancel()
	q.Flush(clock.Advance(time.Second))
	if n != 0 {
		t.Error("cancelled debouncer fired")
	}
}

func TestMockClock(t *testing.T) {
	c := NewMockClock(testEpoch)
	if got := c.Advance(time.Second); !got.Equal(testEpoch.Add(time.Second)) {
		t.Errorf("Advance = %v", got)
	}
	c.Set(testEpoch)
	if !c.Now().Equal(testEpoch) {
		t.Errorf("Now = %v after Set", c.Now())
	}
}
