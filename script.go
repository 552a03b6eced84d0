package floaty

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string  `yaml:"action"`
	Label  string  `yaml:"label,omitempty"`
	Event  string  `yaml:"event,omitempty"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	Frames int     `yaml:"frames,omitempty"`
}

type script struct {
	Steps []scriptStep `yaml:"steps"`
}

var errNoSteps = errors.New("no steps")

// ScriptRunner sequences injected input, bus signals, visibility changes and
// screenshots across frames, for demos and automated visual checks. Scripts
// are YAML (or JSON):
//
//	steps:
//	  - {action: move, x: 120, y: 80}
//	  - {action: wait, frames: 30}
//	  - {action: emit, event: "screensaver:shown"}
//	  - {action: screenshot, label: paused}
//
// Actions: move, tap, click, wait, emit, hide, show, viewport, screenshot.
type ScriptRunner struct {
	// Screenshot is called for screenshot steps. nil skips them.
	Screenshot func(label string)

	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a script.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: %w", errNoSteps)
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "move", "tap", "click", "wait", "hide", "show", "viewport", "screenshot":
		case "emit":
			if st.Event == "" {
				return nil, fmt.Errorf("parse script: step %d: emit needs an event", i)
			}
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame. Call it once per tick before input
// is processed.
func (r *ScriptRunner) Step(app *App) {
	if r.done {
		return
	}
	doc := app.Doc
	// Wait for pending injections to drain before advancing.
	if doc.PendingInjections() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "move":
		doc.InjectMove(st.X, st.Y)
	case "tap":
		doc.InjectTap(st.X, st.Y)
	case "click":
		doc.InjectClick(st.X, st.Y)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "emit":
		app.Bus.Emit(st.Event, nil)
	case "hide":
		doc.SetHidden(true)
	case "show":
		doc.SetHidden(false)
	case "viewport":
		doc.SetViewport(st.Width, st.Height)
	case "screenshot":
		if r.Screenshot != nil {
			r.Screenshot(st.Label)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && doc.PendingInjections() == 0 {
		r.done = true
	}
}
