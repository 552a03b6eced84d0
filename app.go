package floaty

import (
	"log/slog"
	"time"
)

// App is the composition root: one document plus the shared frame queue,
// scheduler, resize manager, bus and clock that every engine on the page is
// wired to. Nothing in the package is global; create one App per page.
type App struct {
	Doc       *Document
	Frames    *FrameQueue
	Scheduler *FrameScheduler
	Resize    *ResizeManager
	Bus       *Bus
	Clock     TimeProvider
	Loader    ImageLoader
	Logger    *slog.Logger

	engines []*Engine
}

// AppConfig selects the collaborators of a new App. Zero fields use
// defaults: SystemClock, ReadyLoader, slog.Default.
type AppConfig struct {
	Width, Height float64
	Clock         TimeProvider
	Loader        ImageLoader
	Logger        *slog.Logger
}

// NewApp builds a document of the configured size and its services.
func NewApp(cfg AppConfig) *App {
	if cfg.Clock == nil {
		cfg.Clock = SystemClock{}
	}
	if cfg.Loader == nil {
		cfg.Loader = ReadyLoader{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	a := &App{
		Doc:    NewDocument(cfg.Width, cfg.Height),
		Frames: NewFrameQueue(),
		Bus:    NewBus(),
		Clock:  cfg.Clock,
		Loader: cfg.Loader,
		Logger: cfg.Logger,
	}
	a.Scheduler = NewFrameScheduler(a.Frames)
	a.Scheduler.SetErrorHandler(func(err error) {
		a.Logger.Error("frame callback failed", "scope", "scheduler", "err", err)
	})
	a.Resize = NewResizeManager(a.Doc, a.Scheduler)
	return a
}

// Services returns the collaborators to hand to NewEngine.
func (a *App) Services() Services {
	return Services{
		Scheduler: a.Scheduler,
		Resize:    a.Resize,
		Bus:       a.Bus,
		Loader:    a.Loader,
		Clock:     a.Clock,
		Logger:    a.Logger,
	}
}

// NewEngine creates an engine for container wired to the app's services. The
// app keeps track of it for Destroy.
func (a *App) NewEngine(container *Element, opts Options) (*Engine, error) {
	e, err := NewEngine(container, a.Services(), opts)
	if err != nil {
		return nil, err
	}
	a.engines = append(a.engines, e)
	return e, nil
}

// Engines returns the engines created through the app.
func (a *App) Engines() []*Engine {
	return a.engines
}

// Frame runs one animation frame at the clock's current time.
func (a *App) Frame() {
	a.Frames.Flush(a.Clock.Now())
}

// Destroy destroys every engine created through the app.
func (a *App) Destroy() {
	for _, e := range a.engines {
		e.Destroy()
	}
	a.engines = nil
}

// Step advances a MockClock by d and runs one frame. It panics if the app's
// clock is not a *MockClock; it exists for tests and scripted runs.
func (a *App) Step(d time.Duration) {
	a.Clock.(*MockClock).Advance(d)
	a.Frame()
}
