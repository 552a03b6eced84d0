package floaty

// syntheticPointerEvent represents a single injected pointer event in
// document coordinates.
type syntheticPointerEvent struct {
	pointerID int
	x, y      float64
	pressed   bool
	kind      PointerType
}

// InjectMove queues a hover move of the mouse pointer to (x, y). The event is
// consumed on the next ProcessInput call, in place of real input.
func (d *Document) InjectMove(x, y float64) {
	d.injectQueue = append(d.injectQueue, syntheticPointerEvent{x: x, y: y, kind: PointerMouse})
}

// InjectTap queues a touch press followed by a release at (x, y) on touch
// slot 1. Consumes two ProcessInput calls.
func (d *Document) InjectTap(x, y float64) {
	d.injectQueue = append(d.injectQueue,
		syntheticPointerEvent{pointerID: 1, x: x, y: y, pressed: true, kind: PointerTouch},
		syntheticPointerEvent{pointerID: 1, x: x, y: y, pressed: false, kind: PointerTouch},
	)
}

// InjectClick queues a mouse press followed by a release at (x, y).
func (d *Document) InjectClick(x, y float64) {
	d.injectQueue = append(d.injectQueue,
		syntheticPointerEvent{x: x, y: y, pressed: true, kind: PointerMouse},
		syntheticPointerEvent{x: x, y: y, pressed: false, kind: PointerMouse},
	)
}

// PendingInjections returns the number of queued synthetic events.
func (d *Document) PendingInjections() int {
	return len(d.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed.
func (d *Document) processInjectedInput() bool {
	if len(d.injectQueue) == 0 {
		return false
	}
	evt := d.injectQueue[0]
	copy(d.injectQueue, d.injectQueue[1:])
	d.injectQueue = d.injectQueue[:len(d.injectQueue)-1]

	d.processPointer(evt.pointerID, evt.x, evt.y, evt.pressed, evt.kind)
	return true
}

// FlushInjected dispatches every queued synthetic event without polling
// Ebitengine. Front ends that read their own input, such as the terminal
// renderer, call it in place of ProcessInput.
func (d *Document) FlushInjected() {
	for d.processInjectedInput() {
	}
}
