package floaty

import (
	"math"

	"github.com/tanema/gween/ease"
)

// fadeInSeconds is the length of the spawn fade-in in frame time.
const fadeInSeconds = 0.6

// renderHints are the inline styles an entity sets on its element while it
// owns it. They are removed on Destroy.
var renderHints = [...][2]string{
	{"will-change", "transform"},
	{"backface-visibility", "hidden"},
	{"perspective", "1000px"},
}

// Entity binds one element to a motion model and renders the model's state as
// the element's transform. An entity owns its element's transform and style
// while alive; after Destroy every method is a no-op returning false.
type Entity struct {
	ID uint32

	el       *Element
	size     Size
	state    State
	model    Model
	subpixel bool

	fadeFactor float64
	fade       *FieldTween
}

// NewEntity wraps el, seeds the model inside bounds, and renders the first
// frame. The entity fades in as Fade is called with frame time.
func NewEntity(id uint32, el *Element, model Model, bounds Size, subpixel bool) *Entity {
	e := &Entity{ID: id, el: el, model: model, subpixel: subpixel}
	// Entities are placed purely by transform from the container's corner.
	el.X, el.Y = 0, 0
	for _, h := range renderHints {
		el.SetStyle(h[0], h[1])
	}
	e.size = el.Size()
	e.state.W, e.state.H = e.size.Width, e.size.Height
	model.Init(&e.state, bounds)
	e.fade = TweenField(el, &e.fadeFactor, 1, fadeInSeconds, ease.OutQuad)
	e.Render()
	return e
}

// Element returns the wrapped element, or nil once destroyed.
func (e *Entity) Element() *Element {
	return e.el
}

// State returns a copy of the simulated state.
func (e *Entity) State() State {
	return e.state
}

// Position returns the stored top-left position.
func (e *Entity) Position() Vec2 {
	return Vec2{X: e.state.X, Y: e.state.Y}
}

// SetPosition overwrites the stored position without rendering.
func (e *Entity) SetPosition(x, y float64) {
	e.state.X, e.state.Y = x, y
}

// Velocity returns the stored velocity.
func (e *Entity) Velocity() Vec2 {
	return Vec2{X: e.state.VX, Y: e.state.VY}
}

// SetVelocity overwrites the stored velocity.
func (e *Entity) SetVelocity(vx, vy float64) {
	e.state.VX, e.state.VY = vx, vy
}

// Model returns the entity's motion model.
func (e *Entity) Model() Model {
	return e.model
}

// Update advances the model one step scaled by mult and, when apply is true,
// renders the result. A mult of zero or less leaves the state untouched.
// Returns false if the entity has been destroyed.
func (e *Entity) Update(mult float64, bounds Size, apply bool) bool {
	if e.el == nil {
		return false
	}
	if mult > 0 {
		e.model.Step(&e.state, bounds, mult)
	}
	if apply {
		return e.Render()
	}
	return true
}

// Fade advances the spawn fade-in by dt seconds of frame time and writes the
// resulting opacity. It is independent of the motion multiplier, so entities
// held in place still become visible. Returns false if the entity has been
// destroyed.
func (e *Entity) Fade(dt float64) bool {
	if e.el == nil {
		return false
	}
	if e.fade == nil {
		return true
	}
	e.fade.Update(float32(dt))
	if e.fade.Done {
		e.fade = nil
	}
	e.el.Opacity = e.state.Opacity * e.fadeFactor
	return true
}

// Fading reports whether the spawn fade-in is still running.
func (e *Entity) Fading() bool {
	return e.fade != nil
}

// Render writes the current state to the element without advancing it.
// Returns false if the entity has been destroyed.
func (e *Entity) Render() bool {
	if e.el == nil {
		return false
	}
	s := &e.state
	x, y := s.X+s.OffsetX, s.Y+s.OffsetY
	if !e.subpixel {
		x, y = math.Round(x), math.Round(y)
	}
	scale := s.Scale
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	e.el.SetTransform(Transform{TranslateX: x, TranslateY: y, Scale: scale})
	e.el.Opacity = s.Opacity * e.fadeFactor
	e.el.ZIndex = s.Z
	return true
}

// ResetPosition asks the model for a fresh start and renders it.
func (e *Entity) ResetPosition(bounds Size) bool {
	if e.el == nil {
		return false
	}
	e.model.Reset(&e.state, bounds)
	return e.Render()
}

// UpdateSize re-reads the element's layout size.
func (e *Entity) UpdateSize() bool {
	if e.el == nil {
		return false
	}
	e.size = e.el.Size()
	e.state.W, e.state.H = e.size.Width, e.size.Height
	return true
}

// ClampPosition pulls the entity's whole box back inside bounds without
// changing its velocity. Wrapping and respawning modes are clamped too; they
// resume their own motion from the clamped position.
func (e *Entity) ClampPosition(bounds Size) bool {
	if e.el == nil {
		return false
	}
	clampState(&e.state, bounds)
	return true
}

// Destroy removes the render hints and releases the element. Idempotent.
func (e *Entity) Destroy() {
	if e.el == nil {
		return
	}
	for _, h := range renderHints {
		e.el.RemoveStyle(h[0])
	}
	e.el = nil
	e.fade = nil
}

// Destroyed reports whether Destroy has been called.
func (e *Entity) Destroyed() bool {
	return e.el == nil
}
