package floaty

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	defaultHoverSlow      = 0.2
	defaultResizeDebounce = 200 * time.Millisecond
	debugStatsEvery       = 2 * time.Second
)

// Options configure one Engine. Zero values select the defaults noted on each
// field.
type Options struct {
	// Mode selects a built-in motion model. Ignored when Model is set.
	Mode Mode
	// Model supplies the motion model for each new entity.
	Model ModelFactory
	// Selector is the class marking motion-eligible elements
	// (default DefaultSelector).
	Selector string
	// MaxImages caps the pool. 0 uses the performance tier's recommendation.
	MaxImages int
	// SpeedMultiplier is the initial global speed. 0 uses the performance
	// tier's recommendation; use SetSpeedMultiplier(0) to pause at runtime.
	SpeedMultiplier float64
	// HoverBehavior controls what hovering an entity does.
	HoverBehavior HoverBehavior
	// HoverSlowMultiplier is the speed of a hovered entity under HoverSlow
	// (default 0.2).
	HoverSlowMultiplier float64
	// TapToFreeze lets a touch tap toggle an entity between frozen and moving.
	TapToFreeze bool
	// PauseOnScreensaver pauses the engine while the screensaver is shown.
	PauseOnScreensaver bool
	// PauseOnIdle pauses the engine while the user is reported idle.
	PauseOnIdle bool
	// ResizeDebounce delays resize handling (default 200ms).
	ResizeDebounce time.Duration
	// Debug enables debug-level logs and periodic pool statistics.
	Debug bool
}

// Services are the shared collaborators an Engine is wired to. Scheduler and
// Resize are required; the rest fall back to defaults.
type Services struct {
	Scheduler *FrameScheduler
	Resize    *ResizeManager
	Bus       *Bus
	Loader    ImageLoader
	Clock     TimeProvider
	Logger    *slog.Logger
}

// PauseReason is one independent condition that suppresses animation.
// Animation runs only while no reason is set.
type PauseReason uint8

const (
	PauseManual      PauseReason = 1 << iota // paused by the application
	PauseHidden                              // page hidden
	PauseScreensaver                         // screensaver shown
	PauseInactive                            // user idle
)

type discoveryResult struct {
	generation int
	images     []LoadedImage
	err        error
}

// Engine owns the pool of animated entities for one container element. It
// registers itself with the frame scheduler and advances every entity once
// per frame, unless the container is off screen, the global speed is zero,
// a pause reason is set, or the performance monitor asks to skip the frame.
//
// An Engine is not safe for concurrent use; drive it from the frame loop.
type Engine struct {
	id        string
	container *Element
	svc       Services
	opts      Options
	factory   ModelFactory
	perf      *PerformanceMonitor
	logger    *slog.Logger

	entities     []*Entity
	wrapped      map[*Element]uint32
	nextEntityID uint32
	bindings     map[uint32][]Handle
	overrides    map[uint32]float64
	frozen       map[uint32]struct{}

	maxImages    int
	subpixel     bool
	speed        float64
	savedSpeed   float64
	speedSaved   bool
	pause        PauseReason
	intersecting bool
	width        float64
	height       float64

	observer *IntersectionObserver
	resize   *Debouncer
	subs     []Handle

	results    chan discoveryResult
	discovered chan struct{}
	cancel     context.CancelFunc
	generation int

	lastFrame time.Time
	lastStats time.Time
	destroyed bool
}

// NewEngine creates an engine for container and starts discovering its
// motion-eligible elements in the background. The only error is
// ErrInvalidContainer; discovery failures are logged, not returned.
func NewEngine(container *Element, svc Services, opts Options) (*Engine, error) {
	if container == nil || container.IsDisposed() {
		return nil, ErrInvalidContainer
	}
	if svc.Scheduler == nil || svc.Resize == nil {
		panic("floaty: NewEngine requires Services.Scheduler and Services.Resize")
	}
	if svc.Loader == nil {
		svc.Loader = ReadyLoader{}
	}
	if svc.Clock == nil {
		svc.Clock = SystemClock{}
	}
	if svc.Logger == nil {
		svc.Logger = slog.Default()
	}
	if opts.Selector == "" {
		opts.Selector = DefaultSelector
	}
	if opts.HoverSlowMultiplier <= 0 {
		opts.HoverSlowMultiplier = defaultHoverSlow
	}
	if opts.ResizeDebounce <= 0 {
		opts.ResizeDebounce = defaultResizeDebounce
	}

	e := &Engine{
		id:           uuid.NewString(),
		container:    container,
		svc:          svc,
		opts:         opts,
		factory:      opts.Model,
		perf:         NewPerformanceMonitor(svc.Clock),
		wrapped:      make(map[*Element]uint32),
		bindings:     make(map[uint32][]Handle),
		overrides:    make(map[uint32]float64),
		frozen:       make(map[uint32]struct{}),
		intersecting: true,
		results:      make(chan discoveryResult, 1),
	}
	if e.factory == nil {
		e.factory = opts.Mode.Factory()
	}
	e.logger = svc.Logger.With("scope", logScope, "engine", e.id)

	rec := e.perf.RecommendedSettings()
	e.maxImages = opts.MaxImages
	if e.maxImages <= 0 {
		e.maxImages = rec.MaxImages
	}
	e.speed = opts.SpeedMultiplier
	if e.speed <= 0 {
		e.speed = rec.SpeedMultiplier
	}
	e.subpixel = rec.UseSubpixel

	sz := svc.Resize.Element(container)
	e.width, e.height = sz.Width, sz.Height

	e.observer = NewIntersectionObserver(svc.Scheduler, e.onIntersection)
	e.observer.Observe(container)

	e.resize = NewDebouncer(svc.Scheduler, svc.Clock, opts.ResizeDebounce, e.handleResize)
	e.subs = append(e.subs,
		svc.Resize.OnWindow(func(Size) { e.resize.Call() }),
		svc.Resize.OnElement(container, func(Size) { e.resize.Call() }, ResizeOptions{}),
	)
	e.subscribeSignals()

	svc.Scheduler.Add(e)
	e.discover()

	e.log(slog.LevelDebug, "engine created", "mode", opts.Mode.String(), "maxImages", e.maxImages)
	return e, nil
}

// ID returns the engine's unique id, used to tag its log records.
func (e *Engine) ID() string {
	return e.id
}

// Container returns the container element.
func (e *Engine) Container() *Element {
	return e.container
}

// Performance returns the engine's performance monitor.
func (e *Engine) Performance() *PerformanceMonitor {
	return e.perf
}

// Entities returns the live entities in pool order. The returned slice MUST
// NOT be mutated.
func (e *Engine) Entities() []*Entity {
	return e.entities
}

// Len returns the number of live entities.
func (e *Engine) Len() int {
	return len(e.entities)
}

// MaxImages returns the pool cap.
func (e *Engine) MaxImages() int {
	return e.maxImages
}

// Bounds returns the cached container size.
func (e *Engine) Bounds() Size {
	return Size{Width: e.width, Height: e.height}
}

// Intersecting reports whether the container was last seen in the viewport.
func (e *Engine) Intersecting() bool {
	return e.intersecting
}

// Destroyed reports whether Destroy has been called.
func (e *Engine) Destroyed() bool {
	return e.destroyed
}

// Discovered returns a channel closed once the most recent discovery pass has
// finished loading and its result is waiting to be applied on the next frame.
func (e *Engine) Discovered() <-chan struct{} {
	return e.discovered
}

// SpeedMultiplier returns the effective global speed multiplier. It reads 0
// while the screensaver holds the engine.
func (e *Engine) SpeedMultiplier() float64 {
	return e.speed
}

// SetSpeedMultiplier sets the global speed. 0 pauses every entity in place.
// While the screensaver holds the engine paused, the value is applied when it
// hides.
func (e *Engine) SetSpeedMultiplier(v float64) {
	if e.destroyed {
		return
	}
	if v < 0 {
		v = 0
	}
	if e.speedSaved {
		e.savedSpeed = v
		return
	}
	e.speed = v
}

// Pause sets reason. Animation stops until every reason is cleared.
func (e *Engine) Pause(reason PauseReason) {
	if e.destroyed {
		return
	}
	e.pause |= reason
}

// Resume clears reason.
func (e *Engine) Resume(reason PauseReason) {
	if e.destroyed {
		return
	}
	e.pause &^= reason
}

// Paused reports whether any pause reason is set.
func (e *Engine) Paused() bool {
	return e.pause != 0
}

// PauseReasons returns the set of active pause reasons.
func (e *Engine) PauseReasons() PauseReason {
	return e.pause
}

// Animate advances the pool by one frame. It is the engine's scheduler
// callback.
func (e *Engine) Animate(now time.Time) {
	if e.destroyed {
		return
	}
	e.drainDiscovery()

	var dt float64
	if !e.lastFrame.IsZero() && now.After(e.lastFrame) {
		dt = now.Sub(e.lastFrame).Seconds()
	}
	e.lastFrame = now
	if !e.intersecting {
		return
	}
	// Spawn fades advance on frame time, regardless of speed, pause reasons
	// and per-entity overrides.
	for _, ent := range e.entities {
		if ent.Fading() {
			ent.Fade(dt)
		}
	}
	if e.speed == 0 || e.pause != 0 {
		return
	}
	if e.perf.UpdateAt(now) {
		return
	}

	bounds := e.Bounds()
	live := e.entities[:0]
	for _, ent := range e.entities {
		mult := e.multiplierFor(ent.ID)
		var ok bool
		if mult <= 0 {
			ok = ent.Render()
		} else {
			ok = ent.Update(mult, bounds, true)
		}
		if ok {
			live = append(live, ent)
		} else {
			e.release(ent)
		}
	}
	for i := len(live); i < len(e.entities); i++ {
		e.entities[i] = nil
	}
	e.entities = live

	if e.opts.Debug {
		e.debugStats(now)
	}
}

// ResetAllImagePositions re-seeds every entity's position through its model.
func (e *Engine) ResetAllImagePositions() {
	if e.destroyed {
		return
	}
	bounds := e.Bounds()
	for _, ent := range e.entities {
		ent.ResetPosition(bounds)
	}
}

// ReinitializeImages destroys every entity and rebuilds the pool from the
// container's current children. Use it after the container's content was
// replaced. No-op once destroyed or while the container is detached.
func (e *Engine) ReinitializeImages() {
	if e.destroyed || !e.container.Connected() {
		return
	}
	e.releaseAll()
	sz := e.svc.Resize.Element(e.container)
	e.width, e.height = sz.Width, sz.Height
	e.discover()
	e.log(slog.LevelDebug, "images reinitialized")
}

// Destroy stops the engine for good: it leaves the scheduler, drops every
// subscription and pointer listener, and destroys every entity. Safe to call
// at any time, including while discovery is still running, and more than
// once.
func (e *Engine) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.svc.Scheduler.Remove(e)
	e.observer.Disconnect()
	e.resize.Cancel()
	for _, h := range e.subs {
		h.Close()
	}
	e.subs = nil
	e.releaseAll()
	e.width, e.height = 0, 0
	e.log(slog.LevelDebug, "engine destroyed")
}

// discover starts an asynchronous discovery pass over the container. The
// loader runs on its own goroutine; its result is applied by Animate.
func (e *Engine) discover() {
	if e.cancel != nil {
		e.cancel()
	}
	e.generation++
	gen := e.generation
	e.debugCheckChildCount()

	var candidates []*Element
	for _, el := range e.container.QueryAll(e.opts.Selector) {
		if _, ok := e.wrapped[el]; !ok {
			candidates = append(candidates, el)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	done := make(chan struct{})
	e.discovered = done
	loader := e.svc.Loader

	go func() {
		defer close(done)
		images, err := loader.Load(ctx, candidates)
		select {
		case e.results <- discoveryResult{generation: gen, images: images, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (e *Engine) drainDiscovery() {
	for {
		select {
		case r := <-e.results:
			e.adopt(r)
		default:
			return
		}
	}
}

// adopt wraps loaded elements as entities, up to the pool cap. Results from a
// superseded pass are dropped.
func (e *Engine) adopt(r discoveryResult) {
	if e.destroyed || r.generation != e.generation {
		return
	}
	if r.err != nil {
		e.log(slog.LevelWarn, "image discovery failed", "err", r.err.Error(), "loaded", len(r.images))
	}
	bounds := e.Bounds()
	added := 0
	for _, li := range r.images {
		if len(e.entities) >= e.maxImages {
			break
		}
		el := li.Element
		if el == nil || el.IsDisposed() || !e.owns(el) {
			continue
		}
		if _, ok := e.wrapped[el]; ok {
			continue
		}
		if li.Image != nil {
			el.SetImage(li.Image)
		}
		e.nextEntityID++
		ent := NewEntity(e.nextEntityID, el, e.factory(), bounds, e.subpixel)
		e.wrapped[el] = ent.ID
		e.entities = append(e.entities, ent)
		e.bind(ent)
		added++
	}
	e.log(slog.LevelDebug, "images discovered", "added", added, "total", len(e.entities))
}

// owns reports whether el is still inside the container.
func (e *Engine) owns(el *Element) bool {
	for p := el.Parent; p != nil; p = p.Parent {
		if p == e.container {
			return true
		}
	}
	return false
}

// release destroys one entity and every side-table entry keyed by it.
func (e *Engine) release(ent *Entity) {
	e.unbind(ent.ID)
	delete(e.overrides, ent.ID)
	delete(e.frozen, ent.ID)
	if el := ent.Element(); el != nil {
		delete(e.wrapped, el)
	} else {
		for el, id := range e.wrapped {
			if id == ent.ID {
				delete(e.wrapped, el)
				break
			}
		}
	}
	ent.Destroy()
}

func (e *Engine) releaseAll() {
	for i, ent := range e.entities {
		e.release(ent)
		e.entities[i] = nil
	}
	e.entities = e.entities[:0]
}

// handleResize resyncs the cached container size and every entity after a
// layout change.
func (e *Engine) handleResize() {
	if e.destroyed {
		return
	}
	if !e.container.Connected() {
		e.width, e.height = 0, 0
		e.log(slog.LevelWarn, "container detached during resize; dimensions zeroed")
		return
	}
	e.resync()
}

// resync re-reads the container size, then clamps and renders every entity
// against it.
func (e *Engine) resync() {
	sz := e.svc.Resize.Element(e.container)
	e.width, e.height = sz.Width, sz.Height
	bounds := e.Bounds()
	for _, ent := range e.entities {
		ent.UpdateSize()
		ent.ClampPosition(bounds)
		ent.Render()
	}
}

func (e *Engine) onIntersection(entries []IntersectionEntry) {
	if e.destroyed {
		return
	}
	for _, en := range entries {
		if en.Target != e.container {
			continue
		}
		was := e.intersecting
		e.intersecting = en.IsIntersecting
		// A container re-attached at its old size fires no resize, so the
		// dimensions zeroed while it was detached are restored here.
		if !was && e.intersecting && e.Bounds().Empty() && e.container.Connected() {
			e.resync()
		}
	}
}
