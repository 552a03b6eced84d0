package floaty

import (
	"fmt"
	"image"
	"slices"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// elementIDCounter is a plain counter; floaty is single-threaded.
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// Transform is the render-time offset and scale applied on top of an
// element's layout box. Scale is about the box center.
type Transform struct {
	TranslateX, TranslateY float64
	Scale                  float64
}

// String formats the transform the way it is written to the "transform" style.
func (t Transform) String() string {
	return fmt.Sprintf("translate3d(%gpx, %gpx, 0) scale(%g)", t.TranslateX, t.TranslateY, t.Scale)
}

// PointerEvent carries pointer event data to element listeners.
type PointerEvent struct {
	Type        EventType
	Target      *Element
	PointerID   int
	PointerType PointerType
	X, Y        float64
}

type elementListener struct {
	id uint32
	fn func(PointerEvent)
}

type resizeListener struct {
	id uint32
	fn func(Size)
}

// Element is the retained tree node that motion entities drive. It plays the
// part of a page element: it has classes, a layout box, inline styles, a
// transform, and pointer listeners.
type Element struct {
	// Identity
	ID   uint32
	Name string
	// Src is the image path read by FileLoader. Empty for elements whose
	// content is assigned directly with SetImage.
	Src string

	// Hierarchy
	Parent   *Element
	children []*Element
	doc      *Document // set only on a document root

	// Layout box, relative to the parent.
	X, Y          float64
	width, height float64

	// Rendering
	Opacity float64
	ZIndex  int
	Visible bool

	transform    Transform
	transformCSS string
	classes      []string
	style        map[string]string

	// Content. image is written by loaders on other goroutines before the
	// element is handed to an engine, so it is guarded.
	imgMu   sync.Mutex
	image   image.Image
	texture *ebiten.Image

	// Canvas, when set, is drawn instead of the image (debug overlays).
	Canvas *ebiten.Image
	// OnUpdate runs once per Document.Update.
	OnUpdate func(dt float64)

	listeners       [4][]elementListener
	resizeListeners []resizeListener
	nextListenerID  uint32

	disposed bool
}

// NewElement creates a detached element with the given classes.
func NewElement(name string, classes ...string) *Element {
	return &Element{
		ID:        nextElementID(),
		Name:      name,
		Opacity:   1,
		Visible:   true,
		transform: Transform{Scale: 1},
		classes:   slices.Clone(classes),
	}
}

// NewImageElement creates a floating-image element sized w×h that renders img.
func NewImageElement(name string, img image.Image, w, h float64) *Element {
	el := NewElement(name, DefaultSelector)
	el.image = img
	el.width, el.height = w, h
	return el
}

// --- Hierarchy ---

// AddChild appends child to e's children, detaching it from any previous
// parent first.
func (e *Element) AddChild(child *Element) {
	if child == nil || child == e {
		return
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = e
	e.children = append(e.children, child)
}

// RemoveChild detaches child from e. The child is not disposed.
func (e *Element) RemoveChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			child.Parent = nil
			return
		}
	}
}

// RemoveFromParent detaches e from its parent, if any.
func (e *Element) RemoveFromParent() {
	if e.Parent != nil {
		e.Parent.RemoveChild(e)
	}
}

// RemoveChildren detaches every child.
func (e *Element) RemoveChildren() {
	for i, c := range e.children {
		c.Parent = nil
		e.children[i] = nil
	}
	e.children = e.children[:0]
}

// Children returns e's children. The returned slice MUST NOT be mutated.
func (e *Element) Children() []*Element {
	return e.children
}

// Document returns the document e is attached to, or nil when detached.
func (e *Element) Document() *Document {
	top := e
	for top.Parent != nil {
		top = top.Parent
	}
	return top.doc
}

// Connected reports whether e is attached to a document.
func (e *Element) Connected() bool {
	return !e.disposed && e.Document() != nil
}

// QueryAll returns every descendant of e carrying class, in depth-first
// document order. e itself is not included.
func (e *Element) QueryAll(class string) []*Element {
	var out []*Element
	var walk func(*Element)
	walk = func(n *Element) {
		for _, c := range n.children {
			if c.HasClass(class) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(e)
	return out
}

// Dispose detaches e and its subtree and marks them unusable.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	for _, c := range e.children {
		c.Parent = nil
		c.Dispose()
	}
	e.children = nil
	for i := range e.listeners {
		e.listeners[i] = nil
	}
	e.resizeListeners = nil
	e.disposed = true
}

// IsDisposed reports whether Dispose has been called.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// --- Classes ---

// AddClass adds class if not already present.
func (e *Element) AddClass(class string) {
	if !e.HasClass(class) {
		e.classes = append(e.classes, class)
	}
}

// RemoveClass removes class.
func (e *Element) RemoveClass(class string) {
	if i := slices.Index(e.classes, class); i >= 0 {
		e.classes = slices.Delete(e.classes, i, i+1)
	}
}

// HasClass reports whether e carries class.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.classes, class)
}

// --- Layout ---

// Size returns the layout box size.
func (e *Element) Size() Size {
	return Size{Width: e.width, Height: e.height}
}

// SetSize resizes the layout box and notifies resize listeners on change.
func (e *Element) SetSize(w, h float64) {
	if w == e.width && h == e.height {
		return
	}
	e.width, e.height = w, h
	sz := Size{Width: w, Height: h}
	for _, l := range slices.Clone(e.resizeListeners) {
		l.fn(sz)
	}
}

// onResize subscribes fn to layout size changes.
func (e *Element) onResize(fn func(Size)) Handle {
	e.nextListenerID++
	id := e.nextListenerID
	e.resizeListeners = append(e.resizeListeners, resizeListener{id: id, fn: fn})
	return NewHandle(func() {
		e.resizeListeners = slices.DeleteFunc(e.resizeListeners, func(l resizeListener) bool {
			return l.id == id
		})
	})
}

// Origin returns the document-space position of e's layout box.
func (e *Element) Origin() Vec2 {
	var o Vec2
	for n := e; n != nil; n = n.Parent {
		o.X += n.X
		o.Y += n.Y
	}
	return o
}

// Bounds returns the document-space layout box, ignoring the transform.
func (e *Element) Bounds() Rect {
	o := e.Origin()
	return Rect{X: o.X, Y: o.Y, Width: e.width, Height: e.height}
}

// VisualBounds returns the document-space box after the transform is applied.
func (e *Element) VisualBounds() Rect {
	b := e.Bounds()
	t := e.transform
	w, h := b.Width*t.Scale, b.Height*t.Scale
	return Rect{
		X:      b.X + t.TranslateX + (b.Width-w)/2,
		Y:      b.Y + t.TranslateY + (b.Height-h)/2,
		Width:  w,
		Height: h,
	}
}

// --- Styles ---

// Transform returns the current render transform.
func (e *Element) Transform() Transform {
	return e.transform
}

// SetTransform replaces the render transform and its "transform" style.
func (e *Element) SetTransform(t Transform) {
	e.transform = t
	e.transformCSS = t.String()
}

// Style returns an inline style value. "transform" reflects SetTransform.
func (e *Element) Style(key string) string {
	if key == "transform" {
		return e.transformCSS
	}
	return e.style[key]
}

// SetStyle sets an inline style value.
func (e *Element) SetStyle(key, value string) {
	if e.style == nil {
		e.style = make(map[string]string)
	}
	e.style[key] = value
}

// RemoveStyle clears an inline style value.
func (e *Element) RemoveStyle(key string) {
	delete(e.style, key)
}

// --- Content ---

// SetImage assigns decoded image content. If the layout box is empty it takes
// the image's natural size.
func (e *Element) SetImage(img image.Image) {
	e.imgMu.Lock()
	e.image = img
	e.texture = nil
	e.imgMu.Unlock()
	if img != nil && e.Size().Empty() {
		b := img.Bounds()
		e.SetSize(float64(b.Dx()), float64(b.Dy()))
	}
}

// Image returns the decoded image content, if any.
func (e *Element) Image() image.Image {
	e.imgMu.Lock()
	defer e.imgMu.Unlock()
	return e.image
}

// Loaded reports whether e has content ready to show: an image, a canvas, or
// a non-empty layout box with no source to wait for.
func (e *Element) Loaded() bool {
	if e.Image() != nil || e.Canvas != nil {
		return true
	}
	return e.Src == "" && !e.Size().Empty()
}

// --- Events ---

// AddEventListener subscribes fn to pointer events of type typ on e.
func (e *Element) AddEventListener(typ EventType, fn func(PointerEvent)) Handle {
	e.nextListenerID++
	id := e.nextListenerID
	e.listeners[typ] = append(e.listeners[typ], elementListener{id: id, fn: fn})
	return NewHandle(func() {
		e.listeners[typ] = slices.DeleteFunc(e.listeners[typ], func(l elementListener) bool {
			return l.id == id
		})
	})
}

// ListenerCount returns the number of listeners for typ.
func (e *Element) ListenerCount(typ EventType) int {
	return len(e.listeners[typ])
}

// Dispatch delivers ev to e's listeners for ev.Type.
func (e *Element) Dispatch(ev PointerEvent) {
	if e.disposed {
		return
	}
	ev.Target = e
	for _, l := range slices.Clone(e.listeners[ev.Type]) {
		l.fn(ev)
	}
}
