package floaty

import "time"

// IntersectionEntry reports one observed element's viewport membership.
type IntersectionEntry struct {
	Target         *Element
	IsIntersecting bool
	Bounds         Rect
}

type observed struct {
	el           *Element
	reported     bool
	intersecting bool
}

// IntersectionObserver watches elements against the viewport with a zero
// threshold: an element counts as intersecting when its layout box touches the
// viewport at all. Membership is evaluated once per frame and the callback
// receives only entries that changed; the first evaluation after Observe always
// reports.
type IntersectionObserver struct {
	sched    *FrameScheduler
	callback func([]IntersectionEntry)
	targets  []*observed
	entries  []IntersectionEntry
}

// NewIntersectionObserver creates an observer that evaluates on sched.
func NewIntersectionObserver(sched *FrameScheduler, callback func([]IntersectionEntry)) *IntersectionObserver {
	return &IntersectionObserver{sched: sched, callback: callback}
}

// Observe starts watching el.
func (o *IntersectionObserver) Observe(el *Element) {
	for _, t := range o.targets {
		if t.el == el {
			return
		}
	}
	o.targets = append(o.targets, &observed{el: el})
	o.sched.Add(o)
}

// Unobserve stops watching el.
func (o *IntersectionObserver) Unobserve(el *Element) {
	for i, t := range o.targets {
		if t.el == el {
			copy(o.targets[i:], o.targets[i+1:])
			o.targets[len(o.targets)-1] = nil
			o.targets = o.targets[:len(o.targets)-1]
			break
		}
	}
	if len(o.targets) == 0 {
		o.sched.Remove(o)
	}
}

// Disconnect stops watching everything. No callbacks fire afterwards.
func (o *IntersectionObserver) Disconnect() {
	for i := range o.targets {
		o.targets[i] = nil
	}
	o.targets = o.targets[:0]
	o.sched.Remove(o)
}

// Animate evaluates every target and reports changes.
func (o *IntersectionObserver) Animate(time.Time) {
	o.entries = o.entries[:0]
	for _, t := range o.targets {
		b := t.el.Bounds()
		in := false
		if doc := t.el.Document(); doc != nil && !t.el.disposed {
			in = b.Intersects(doc.ViewportRect())
		}
		if t.reported && in == t.intersecting {
			continue
		}
		t.reported = true
		t.intersecting = in
		o.entries = append(o.entries, IntersectionEntry{Target: t.el, IsIntersecting: in, Bounds: b})
	}
	if len(o.entries) > 0 {
		o.callback(o.entries)
	}
}
