package floaty

import (
	"log/slog"
	"time"
)

// Bus event names the engine emits or listens for.
const (
	EventLog               = "log"
	EventScreensaverShown  = "screensaver:shown"
	EventScreensaverHidden = "screensaver:hidden"
	EventActivityIdle      = "activity:idle"
	EventActivityActive    = "activity:active"
)

// LogEvent is the payload of EventLog.
type LogEvent struct {
	Scope   string
	Level   slog.Level
	Message string
	Data    map[string]any
	Time    time.Time
}

type busHandler struct {
	id uint32
	fn func(payload any)
}

// Bus is a synchronous publish/subscribe registry keyed by event name.
// Like the rest of the package it is single-threaded: call it from the frame
// loop goroutine only.
type Bus struct {
	handlers map[string][]busHandler
	nextID   uint32
	buf      []busHandler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]busHandler)}
}

// On subscribes fn to name. Closing the returned Handle unsubscribes.
func (b *Bus) On(name string, fn func(payload any)) Handle {
	b.nextID++
	id := b.nextID
	b.handlers[name] = append(b.handlers[name], busHandler{id: id, fn: fn})
	return NewHandle(func() { b.off(name, id) })
}

func (b *Bus) off(name string, id uint32) {
	s := b.handlers[name]
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = busHandler{}
			s = s[:len(s)-1]
			break
		}
	}
	if len(s) == 0 {
		delete(b.handlers, name)
		return
	}
	b.handlers[name] = s
}

// Emit calls every handler subscribed to name, in subscription order.
// Handlers added during Emit do not receive the current event.
func (b *Bus) Emit(name string, payload any) {
	hs := b.handlers[name]
	if len(hs) == 0 {
		return
	}
	start := len(b.buf)
	b.buf = append(b.buf, hs...)
	for _, h := range b.buf[start:] {
		if !b.subscribed(name, h.id) {
			continue
		}
		h.fn(payload)
	}
	for i := start; i < len(b.buf); i++ {
		b.buf[i] = busHandler{}
	}
	b.buf = b.buf[:start]
}

// Count returns the number of handlers subscribed to name.
func (b *Bus) Count(name string) int {
	return len(b.handlers[name])
}

func (b *Bus) subscribed(name string, id uint32) bool {
	for _, h := range b.handlers[name] {
		if h.id == id {
			return true
		}
	}
	return false
}
