package floaty

import (
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Animator is anything that wants a callback once per frame. Registration
// identity is the interface value, so implementations should use pointer
// receivers.
type Animator interface {
	Animate(now time.Time)
}

// FrameCallback adapts a plain func into an Animator with pointer identity.
type FrameCallback struct {
	fn func(now time.Time)
}

// NewFrameCallback wraps fn.
func NewFrameCallback(fn func(now time.Time)) *FrameCallback {
	return &FrameCallback{fn: fn}
}

// Animate calls the wrapped func.
func (c *FrameCallback) Animate(now time.Time) {
	c.fn(now)
}

// FrameScheduler multiplexes every registered Animator onto a single frame
// request. The request is outstanding only while at least one Animator is
// registered and the scheduler is not paused.
type FrameScheduler struct {
	frames   FrameRequester
	onError  func(error)
	order    []Animator
	members  map[Animator]struct{}
	snapshot []Animator
	running  bool
	paused   bool
	ticking  bool
	handle   FrameID
	tickFn   func(time.Time)
}

// NewFrameScheduler creates a scheduler on top of frames. Callback panics are
// logged to stderr until SetErrorHandler replaces the handler.
func NewFrameScheduler(frames FrameRequester) *FrameScheduler {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	s := &FrameScheduler{
		frames:  frames,
		members: make(map[Animator]struct{}),
		onError: func(err error) {
			logger.Error("frame callback failed", "scope", "scheduler", "err", err)
		},
	}
	s.tickFn = s.tick
	return s
}

// SetErrorHandler replaces the handler that receives recovered callback
// panics. A nil fn discards them.
func (s *FrameScheduler) SetErrorHandler(fn func(error)) {
	if fn == nil {
		fn = func(error) {}
	}
	s.onError = fn
}

// Add registers a. Adding an already-registered Animator has no effect and
// returns false.
func (s *FrameScheduler) Add(a Animator) bool {
	if a == nil {
		return false
	}
	if _, ok := s.members[a]; ok {
		return false
	}
	s.members[a] = struct{}{}
	s.order = append(s.order, a)
	s.start()
	return true
}

// Remove deregisters a and stops the loop when nothing is left.
func (s *FrameScheduler) Remove(a Animator) {
	if _, ok := s.members[a]; !ok {
		return
	}
	delete(s.members, a)
	for i, cur := range s.order {
		if cur == a {
			copy(s.order[i:], s.order[i+1:])
			s.order[len(s.order)-1] = nil
			s.order = s.order[:len(s.order)-1]
			break
		}
	}
	if len(s.order) == 0 {
		s.stop()
	}
}

// Has reports whether a is registered.
func (s *FrameScheduler) Has(a Animator) bool {
	_, ok := s.members[a]
	return ok
}

// Len returns the number of registered Animators.
func (s *FrameScheduler) Len() int {
	return len(s.order)
}

// Running reports whether a frame request is outstanding.
func (s *FrameScheduler) Running() bool {
	return s.running
}

// Pause stops the loop without clearing the registry.
func (s *FrameScheduler) Pause() {
	s.paused = true
	s.stop()
}

// Resume restarts the loop if any Animator is still registered.
func (s *FrameScheduler) Resume() {
	s.paused = false
	s.start()
}

func (s *FrameScheduler) start() {
	if s.running || s.paused || len(s.order) == 0 {
		return
	}
	s.running = true
	if !s.ticking {
		s.handle = s.frames.RequestFrame(s.tickFn)
	}
}

func (s *FrameScheduler) stop() {
	if !s.running {
		return
	}
	s.running = false
	if s.handle != 0 {
		s.frames.CancelFrame(s.handle)
		s.handle = 0
	}
}

// tick runs one frame over a snapshot of the registry so callbacks may add or
// remove Animators (including themselves) while it runs.
func (s *FrameScheduler) tick(now time.Time) {
	s.handle = 0
	if !s.running {
		return
	}
	s.ticking = true
	s.snapshot = append(s.snapshot[:0], s.order...)
	for i, a := range s.snapshot {
		s.snapshot[i] = nil
		if _, ok := s.members[a]; !ok {
			continue
		}
		s.invoke(a, now)
	}
	s.snapshot = s.snapshot[:0]
	s.ticking = false
	if s.running {
		s.handle = s.frames.RequestFrame(s.tickFn)
	}
}

func (s *FrameScheduler) invoke(a Animator, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			s.onError(fmt.Errorf("animator %T: %w", a, err))
		}
	}()
	a.Animate(now)
}
