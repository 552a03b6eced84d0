package floaty

import (
	"context"
	"log/slog"
	"time"
)

// logScope tags every engine log record and LogEvent.
const logScope = "motion"

// debugMaxChildCount is the container size above which discovery warns in
// debug mode.
const debugMaxChildCount = 1000

// log writes one record to the engine's logger and mirrors it on the bus as a
// LogEvent. Debug records are dropped unless Options.Debug is set.
func (e *Engine) log(level slog.Level, msg string, args ...any) {
	if level < slog.LevelInfo && !e.opts.Debug {
		return
	}
	e.logger.Log(context.Background(), level, msg, args...)

	if e.svc.Bus == nil {
		return
	}
	data := make(map[string]any, len(args)/2+1)
	data["engine"] = e.id
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok {
			data[k] = args[i+1]
		}
	}
	e.svc.Bus.Emit(EventLog, LogEvent{
		Scope:   logScope,
		Level:   level,
		Message: msg,
		Data:    data,
		Time:    e.svc.Clock.Now(),
	})
}

// debugStats logs pool statistics at most once every debugStatsEvery.
func (e *Engine) debugStats(now time.Time) {
	if !e.lastStats.IsZero() && now.Sub(e.lastStats) < debugStatsEvery {
		return
	}
	e.lastStats = now
	e.log(slog.LevelDebug, "pool stats",
		"entities", len(e.entities),
		"frozen", len(e.frozen),
		"overrides", len(e.overrides),
		"fps", e.perf.FPS(),
		"tier", e.perf.PerformanceLevel().String(),
		"speed", e.speed,
	)
}

// debugCheckChildCount warns when the container has an unusually large number
// of children.
func (e *Engine) debugCheckChildCount() {
	if !e.opts.Debug {
		return
	}
	if n := len(e.container.Children()); n > debugMaxChildCount {
		e.log(slog.LevelWarn, "container has many children", "children", n, "threshold", debugMaxChildCount)
	}
}
