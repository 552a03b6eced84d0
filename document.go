package floaty

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

type visibilityListener struct {
	id uint32
	fn func(hidden bool)
}

type viewportListener struct {
	id uint32
	fn func(Size)
}

// Document is the top-level object that owns the element tree, the viewport,
// page visibility, and pointer state.
type Document struct {
	root     *Element
	viewport Size
	hidden   bool

	visibility []visibilityListener
	viewports  []viewportListener
	nextID     uint32

	// Input state
	pointers     [maxPointers]pointerState
	hitBuf       []*Element
	injectQueue  []syntheticPointerEvent
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	inputSeq     uint64

	commands []drawCommand
}

// NewDocument creates a document whose root element fills a w×h viewport.
func NewDocument(w, h float64) *Document {
	d := &Document{viewport: Size{Width: w, Height: h}}
	d.root = NewElement("body")
	d.root.doc = d
	d.root.width, d.root.height = w, h
	return d
}

// InputSeq returns a counter that advances whenever any pointer moves or
// changes button state. Compare successive values to detect user activity.
func (d *Document) InputSeq() uint64 {
	return d.inputSeq
}

// Root returns the document's root element.
func (d *Document) Root() *Element {
	return d.root
}

// Viewport returns the viewport size.
func (d *Document) Viewport() Size {
	return d.viewport
}

// ViewportRect returns the viewport as a document-space rectangle.
func (d *Document) ViewportRect() Rect {
	return Rect{Width: d.viewport.Width, Height: d.viewport.Height}
}

// SetViewport resizes the viewport and the root element, notifying viewport
// listeners when the size changes.
func (d *Document) SetViewport(w, h float64) {
	if w == d.viewport.Width && h == d.viewport.Height {
		return
	}
	d.viewport = Size{Width: w, Height: h}
	d.root.SetSize(w, h)
	for _, l := range slices.Clone(d.viewports) {
		l.fn(d.viewport)
	}
}

// onViewport subscribes fn to viewport size changes.
func (d *Document) onViewport(fn func(Size)) Handle {
	d.nextID++
	id := d.nextID
	d.viewports = append(d.viewports, viewportListener{id: id, fn: fn})
	return NewHandle(func() {
		d.viewports = slices.DeleteFunc(d.viewports, func(l viewportListener) bool {
			return l.id == id
		})
	})
}

// Hidden reports whether the page is hidden (minimized, backgrounded tab).
func (d *Document) Hidden() bool {
	return d.hidden
}

// SetHidden updates page visibility and notifies listeners on change.
func (d *Document) SetHidden(hidden bool) {
	if hidden == d.hidden {
		return
	}
	d.hidden = hidden
	for _, l := range slices.Clone(d.visibility) {
		l.fn(hidden)
	}
}

// OnVisibilityChange subscribes fn to page visibility changes.
func (d *Document) OnVisibilityChange(fn func(hidden bool)) Handle {
	d.nextID++
	id := d.nextID
	d.visibility = append(d.visibility, visibilityListener{id: id, fn: fn})
	return NewHandle(func() {
		d.visibility = slices.DeleteFunc(d.visibility, func(l visibilityListener) bool {
			return l.id == id
		})
	})
}

// Update runs every element's OnUpdate callback, depth-first.
func (d *Document) Update(dt float64) {
	updateElements(d.root, dt)
}

func updateElements(e *Element, dt float64) {
	if e.OnUpdate != nil {
		e.OnUpdate(dt)
	}
	for _, c := range e.children {
		updateElements(c, dt)
	}
}
