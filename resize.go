package floaty

import "time"

// ResizeOptions tunes an element resize subscription.
type ResizeOptions struct {
	// Immediate delivers every change synchronously instead of coalescing
	// changes into one callback on the next frame.
	Immediate bool
}

type resizeSub struct {
	fn        func(Size)
	immediate bool
	queued    bool
	closed    bool
	size      Size
}

// ResizeManager is the shared service for window and element size changes.
// Changes are coalesced: a subscriber sees at most one callback per frame,
// carrying the latest size.
type ResizeManager struct {
	doc   *Document
	sched *FrameScheduler
	queue []*resizeSub
	buf   []*resizeSub
}

// NewResizeManager creates a manager for doc that flushes on sched.
func NewResizeManager(doc *Document, sched *FrameScheduler) *ResizeManager {
	return &ResizeManager{doc: doc, sched: sched}
}

// OnWindow subscribes fn to viewport size changes.
func (m *ResizeManager) OnWindow(fn func(Size)) Handle {
	sub := &resizeSub{fn: fn}
	h := m.doc.onViewport(func(sz Size) { m.notify(sub, sz) })
	return NewHandle(func() {
		sub.closed = true
		h.Close()
	})
}

// OnElement subscribes fn to layout size changes of el.
func (m *ResizeManager) OnElement(el *Element, fn func(Size), opts ResizeOptions) Handle {
	sub := &resizeSub{fn: fn, immediate: opts.Immediate}
	h := el.onResize(func(sz Size) { m.notify(sub, sz) })
	return NewHandle(func() {
		sub.closed = true
		h.Close()
	})
}

// Element returns the current layout size of el.
func (m *ResizeManager) Element(el *Element) Size {
	if el == nil {
		return Size{}
	}
	return el.Size()
}

func (m *ResizeManager) notify(sub *resizeSub, sz Size) {
	if sub.closed {
		return
	}
	if sub.immediate {
		sub.fn(sz)
		return
	}
	sub.size = sz
	if sub.queued {
		return
	}
	sub.queued = true
	m.queue = append(m.queue, sub)
	m.sched.Add(m)
}

// Animate delivers every change queued since the last frame.
func (m *ResizeManager) Animate(time.Time) {
	m.sched.Remove(m)
	m.buf = append(m.buf[:0], m.queue...)
	for i := range m.queue {
		m.queue[i] = nil
	}
	m.queue = m.queue[:0]
	for i, sub := range m.buf {
		m.buf[i] = nil
		sub.queued = false
		if !sub.closed {
			sub.fn(sub.size)
		}
	}
}
