// Package floaty animates collections of "floating" images inside container
// elements, rendered with [Ebitengine] or, via package term, a terminal.
//
// A page is a [Document] holding a tree of [Element] values. Every element
// inside a container that carries the [DefaultSelector] class is picked up by
// an [Engine], wrapped as an [Entity], and moved every frame by a motion
// [Model]: drift, parallax, rain, brownian, warp or glitch.
//
// # Quick start
//
// [App] wires the shared services (frame queue, [FrameScheduler],
// [ResizeManager], [Bus], clock) for one document. [Run] opens a window and
// drives it:
//
//	app := floaty.NewApp(floaty.AppConfig{Width: 1280, Height: 720})
//	box := floaty.NewElement("box")
//	box.SetSize(1280, 720)
//	app.Doc.Root().AddChild(box)
//
//	orbs, _ := floaty.NewOrbElements(20, floaty.Range{Min: 24, Max: 48})
//	for _, o := range orbs {
//		box.AddChild(o)
//	}
//	app.NewEngine(box, floaty.Options{Mode: floaty.ModeRain})
//	floaty.Run(app, floaty.RunConfig{Title: "rain"})
//
// # Frames
//
// All animation runs on one [FrameScheduler], which keeps a single frame
// request outstanding while anything is registered. Engines, the resize
// manager, intersection observers and debouncers are all scheduler members.
// Tests drive frames deterministically with a [MockClock] and [App.Step].
//
// # Pausing
//
// An engine stops advancing while its container is off screen, while its
// global speed is zero, or while any [PauseReason] is set: page hidden,
// screensaver shown, user idle, or a manual pause. The [PerformanceMonitor]
// skips every other frame when the smoothed frame rate drops below 30.
//
// # Concurrency
//
// Everything except [ImageLoader.Load] runs on the frame loop goroutine.
// Loaders run in the background and the engine applies their results on the
// next frame.
//
// [Ebitengine]: https://ebitengine.org
package floaty
