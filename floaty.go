package floaty

import (
	"errors"
	"math/rand/v2"
)

// DefaultSelector is the class that marks an element as motion-eligible.
const DefaultSelector = "floating-image"

// ErrInvalidContainer is returned by NewEngine when the container is nil or
// has been disposed.
var ErrInvalidContainer = errors.New("floaty: invalid container element")

// Vec2 is a 2D vector used for positions, velocities, and offsets.
type Vec2 struct {
	X, Y float64
}

// Size is a width/height pair in pixels. Zero values are valid and describe an
// element that has not been laid out.
type Size struct {
	Width, Height float64
}

// Empty reports whether either dimension is zero or negative.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Range is a general-purpose min/max range used by the motion models.
type Range struct {
	Min, Max float64
}

// Random returns a random float64 in [Min, Max].
func (r Range) Random() float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rand.Float64()*(r.Max-r.Min)
}

// HoverBehavior selects how an entity reacts while a pointer hovers over it.
type HoverBehavior uint8

const (
	HoverNone HoverBehavior = iota // hovering has no effect
	HoverSlow                      // hovered entities move at HoverSlowMultiplier
	HoverStop                      // hovered entities freeze in place
)

// String returns the config name of the behavior.
func (h HoverBehavior) String() string {
	switch h {
	case HoverSlow:
		return "slow"
	case HoverStop:
		return "stop"
	default:
		return "none"
	}
}

// MarshalText returns the config name of the behavior.
func (h HoverBehavior) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText parses "none", "slow", or "stop".
func (h *HoverBehavior) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "none":
		*h = HoverNone
	case "slow":
		*h = HoverSlow
	case "stop":
		*h = HoverStop
	default:
		return errors.New("floaty: unknown hover behavior " + string(text))
	}
	return nil
}

// PointerType identifies the device that produced a pointer event.
type PointerType uint8

const (
	PointerMouse PointerType = iota // mouse cursor (pointer 0)
	PointerTouch                    // touch contact (pointers 1-9)
	PointerPen                      // stylus
)

// EventType identifies a kind of pointer event delivered to an element.
type EventType uint8

const (
	EventPointerEnter EventType = iota // pointer moved onto the element
	EventPointerLeave                  // pointer moved off the element
	EventPointerDown                   // pointer pressed over the element
	EventPointerUp                     // pointer released over the element
)

// Handle detaches a subscription. Close is idempotent; calling it on the zero
// value is a no-op.
type Handle struct {
	close func()
}

// NewHandle wraps fn so it runs at most once.
func NewHandle(fn func()) Handle {
	done := false
	return Handle{close: func() {
		if done {
			return
		}
		done = true
		fn()
	}}
}

// Close detaches the subscription.
func (h Handle) Close() {
	if h.close != nil {
		h.close()
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
