package floaty

import "time"

// FrameID identifies an outstanding frame request. Zero is never issued.
type FrameID uint64

// FrameRequester is the one-shot per-frame timing primitive the scheduler is
// built on. A requested callback runs once, on the next frame, unless it is
// cancelled first.
type FrameRequester interface {
	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

type frameRequest struct {
	id FrameID
	fn func(time.Time)
}

// FrameQueue is a FrameRequester driven by an external loop calling Flush once
// per frame. The Ebitengine game adapter flushes it from Update; tests flush it
// by hand with a MockClock.
type FrameQueue struct {
	pending []frameRequest
	running []frameRequest
	nextID  FrameID
}

// NewFrameQueue creates an empty frame queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame queues fn for the next Flush.
func (q *FrameQueue) RequestFrame(fn func(now time.Time)) FrameID {
	q.nextID++
	q.pending = append(q.pending, frameRequest{id: q.nextID, fn: fn})
	return q.nextID
}

// CancelFrame drops a pending request. Unknown or already-run ids are ignored.
func (q *FrameQueue) CancelFrame(id FrameID) {
	for i := range q.pending {
		if q.pending[i].id == id {
			copy(q.pending[i:], q.pending[i+1:])
			q.pending[len(q.pending)-1] = frameRequest{}
			q.pending = q.pending[:len(q.pending)-1]
			return
		}
	}
}

// Pending returns the number of outstanding requests.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Flush runs every request queued before the call. Requests made while
// flushing are deferred to the next Flush.
func (q *FrameQueue) Flush(now time.Time) {
	if len(q.pending) == 0 {
		return
	}
	q.running = append(q.running[:0], q.pending...)
	for i := range q.pending {
		q.pending[i] = frameRequest{}
	}
	q.pending = q.pending[:0]
	for i := range q.running {
		q.running[i].fn(now)
		q.running[i] = frameRequest{}
	}
	q.running = q.running[:0]
}
