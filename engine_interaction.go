package floaty

// bind attaches the pointer listeners an entity needs for the configured
// hover and tap behavior. The handles are kept per entity ID and closed by
// unbind.
func (e *Engine) bind(ent *Entity) {
	if e.opts.HoverBehavior == HoverNone && !e.opts.TapToFreeze {
		return
	}
	el := ent.Element()
	id := ent.ID
	var hs []Handle
	if e.opts.HoverBehavior != HoverNone {
		hs = append(hs,
			el.AddEventListener(EventPointerEnter, func(PointerEvent) { e.hoverStart(id) }),
			el.AddEventListener(EventPointerLeave, func(PointerEvent) { e.hoverEnd(id) }),
		)
	}
	if e.opts.TapToFreeze {
		hs = append(hs, el.AddEventListener(EventPointerUp, func(ev PointerEvent) {
			if ev.PointerType == PointerTouch {
				e.ToggleFreeze(id)
			}
		}))
	}
	e.bindings[id] = hs
}

func (e *Engine) unbind(id uint32) {
	for _, h := range e.bindings[id] {
		h.Close()
	}
	delete(e.bindings, id)
}

func (e *Engine) hoverStart(id uint32) {
	if e.destroyed {
		return
	}
	if _, ok := e.frozen[id]; ok {
		return
	}
	switch e.opts.HoverBehavior {
	case HoverSlow:
		e.overrides[id] = e.opts.HoverSlowMultiplier
	case HoverStop:
		e.overrides[id] = 0
	}
}

func (e *Engine) hoverEnd(id uint32) {
	if e.destroyed {
		return
	}
	if _, ok := e.frozen[id]; ok {
		return
	}
	delete(e.overrides, id)
}

// ToggleFreeze freezes the entity with the given ID in place, or releases it
// if it is already frozen. Touch taps call it when TapToFreeze is set.
func (e *Engine) ToggleFreeze(id uint32) {
	if e.destroyed {
		return
	}
	if _, ok := e.frozen[id]; ok {
		delete(e.frozen, id)
		delete(e.overrides, id)
		return
	}
	e.frozen[id] = struct{}{}
	e.overrides[id] = 0
}

// Frozen reports whether the entity with the given ID is frozen by a tap.
func (e *Engine) Frozen(id uint32) bool {
	_, ok := e.frozen[id]
	return ok
}

// multiplierFor resolves the speed of one entity: a freeze or hover override
// wins over the global multiplier.
func (e *Engine) multiplierFor(id uint32) float64 {
	if _, ok := e.frozen[id]; ok {
		return 0
	}
	if m, ok := e.overrides[id]; ok {
		return m
	}
	return e.speed
}
