package floaty

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FieldTween animates one float64 field. Call Update(dt) each frame; the value
// is written straight into the field. If the owning element is disposed, the
// tween stops immediately.
//
// There is no global animation manager; callers drive Update.
type FieldTween struct {
	tween *gween.Tween
	field *float64
	owner *Element
	Done  bool
}

// Update advances the tween by dt seconds and writes the value to the field.
// If the owner has been disposed, Done is set and no write occurs.
func (f *FieldTween) Update(dt float32) {
	if f.Done {
		return
	}
	if f.owner != nil && f.owner.IsDisposed() {
		f.Done = true
		return
	}
	val, finished := f.tween.Update(dt)
	*f.field = float64(val)
	f.Done = finished
}

// TweenField creates a FieldTween that animates *field from its current value
// to `to`. owner may be nil.
func TweenField(owner *Element, field *float64, to float64, duration float32, fn ease.TweenFunc) *FieldTween {
	return &FieldTween{
		tween: gween.New(float32(*field), float32(to), duration, fn),
		field: field,
		owner: owner,
	}
}

// TweenOpacity creates a FieldTween that animates el.Opacity.
func TweenOpacity(el *Element, to float64, duration float32, fn ease.TweenFunc) *FieldTween {
	return TweenField(el, &el.Opacity, to, duration, fn)
}
