package floaty

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

const maxPointers = 10 // pointer 0 = mouse, 1-9 = touch

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	hoverEl   *Element // last element the pointer was over (for enter/leave)
	pressedEl *Element
}

// interactive reports whether e wants pointer events at all.
func (e *Element) interactive() bool {
	if !e.Visible || e.disposed {
		return false
	}
	for i := range e.listeners {
		if len(e.listeners[i]) > 0 {
			return true
		}
	}
	return false
}

func (d *Document) collectInteractive(e *Element, buf []*Element) []*Element {
	if !e.Visible {
		return buf
	}
	if e.interactive() {
		buf = append(buf, e)
	}
	for _, c := range e.children {
		buf = d.collectInteractive(c, buf)
	}
	return buf
}

// HitTest returns the topmost interactive element under (x, y), or nil.
// Higher ZIndex wins; ties go to the later element in document order.
func (d *Document) HitTest(x, y float64) *Element {
	d.hitBuf = d.collectInteractive(d.root, d.hitBuf[:0])
	sort.SliceStable(d.hitBuf, func(i, j int) bool {
		return d.hitBuf[i].ZIndex < d.hitBuf[j].ZIndex
	})
	for i := len(d.hitBuf) - 1; i >= 0; i-- {
		if d.hitBuf[i].VisualBounds().Contains(x, y) {
			return d.hitBuf[i]
		}
	}
	return nil
}

// ProcessInput polls Ebitengine mouse and touch state (or one injected event,
// when any are queued) and dispatches pointer events.
func (d *Document) ProcessInput() {
	if d.processInjectedInput() {
		return
	}
	d.processMousePointer()
	d.processTouchPointers()
}

func (d *Document) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	d.processPointer(0, float64(mx), float64(my), pressed, PointerMouse)
}

// processTouchPointers handles touch input (pointers 1-9).
func (d *Document) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(d.prevTouchIDs[:0])
	d.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := d.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		d.processPointer(slot, float64(tx), float64(ty), true, PointerTouch)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if d.touchUsed[i] && !activeSlots[i] {
			ps := &d.pointers[i]
			if ps.down {
				d.processPointer(i, ps.lastX, ps.lastY, false, PointerTouch)
			}
			d.touchUsed[i] = false
			d.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (d *Document) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if d.touchUsed[i] && d.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !d.touchUsed[i] {
			d.touchUsed[i] = true
			d.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
func (d *Document) processPointer(pointerID int, x, y float64, pressed bool, pt PointerType) {
	ps := &d.pointers[pointerID]
	if x != ps.lastX || y != ps.lastY || pressed != ps.down {
		d.inputSeq++
	}
	target := d.HitTest(x, y)

	// Fire hover enter/leave when the hovered element changes.
	if target != ps.hoverEl {
		if ps.hoverEl != nil {
			d.fire(ps.hoverEl, EventPointerLeave, pointerID, pt, x, y)
		}
		if target != nil {
			d.fire(target, EventPointerEnter, pointerID, pt, x, y)
		}
		ps.hoverEl = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.pressedEl = target
		if target != nil {
			d.fire(target, EventPointerDown, pointerID, pt, x, y)
		}
	case !pressed && ps.down:
		ps.down = false
		ps.pressedEl = nil
		if target != nil {
			d.fire(target, EventPointerUp, pointerID, pt, x, y)
		}
		// A lifted touch contact no longer hovers anything.
		if pt == PointerTouch && ps.hoverEl != nil {
			d.fire(ps.hoverEl, EventPointerLeave, pointerID, pt, x, y)
			ps.hoverEl = nil
		}
	}
	ps.lastX = x
	ps.lastY = y
}

func (d *Document) fire(e *Element, typ EventType, pointerID int, pt PointerType, x, y float64) {
	e.Dispatch(PointerEvent{
		Type:        typ,
		PointerID:   pointerID,
		PointerType: pt,
		X:           x,
		Y:           y,
	})
}
