package floaty

import "log/slog"

// subscribeSignals wires the engine to page visibility and, when configured,
// to the screensaver and activity events on the bus.
func (e *Engine) subscribeSignals() {
	if doc := e.container.Document(); doc != nil {
		if doc.Hidden() {
			e.pause |= PauseHidden
		}
		e.subs = append(e.subs, doc.OnVisibilityChange(e.onVisibility))
	}

	bus := e.svc.Bus
	if bus == nil {
		return
	}
	if e.opts.PauseOnScreensaver {
		e.subs = append(e.subs,
			bus.On(EventScreensaverShown, func(any) { e.screensaverShown() }),
			bus.On(EventScreensaverHidden, func(any) { e.screensaverHidden() }),
		)
	}
	if e.opts.PauseOnIdle {
		e.subs = append(e.subs,
			bus.On(EventActivityIdle, func(any) { e.Pause(PauseInactive) }),
			bus.On(EventActivityActive, func(any) { e.Resume(PauseInactive) }),
		)
	}
}

func (e *Engine) onVisibility(hidden bool) {
	if e.destroyed {
		return
	}
	if hidden {
		e.pause |= PauseHidden
	} else {
		e.pause &^= PauseHidden
	}
	e.log(slog.LevelDebug, "visibility changed", "hidden", hidden)
}

// screensaverShown parks the global speed at zero. The previous value is
// captured only once, so repeated shown events cannot lose it.
func (e *Engine) screensaverShown() {
	if e.destroyed {
		return
	}
	if !e.speedSaved {
		e.savedSpeed = e.speed
		e.speedSaved = true
	}
	e.speed = 0
	e.pause |= PauseScreensaver
	e.log(slog.LevelDebug, "paused for screensaver")
}

func (e *Engine) screensaverHidden() {
	if e.destroyed {
		return
	}
	if e.speedSaved {
		e.speed = e.savedSpeed
		e.speedSaved = false
	}
	e.pause &^= PauseScreensaver
	e.log(slog.LevelDebug, "resumed after screensaver", "speed", e.speed)
}
