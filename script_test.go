package floaty

import (
	"testing"
	"time"
)

func TestLoadScript(t *testing.T) {
	data := []byte(`
steps:
  - {action: move, x: 10, y: 20}
  - {action: wait, frames: 5}
  - {action: emit, event: "screensaver:shown"}
  - {action: viewport, width: 640, height: 480}
  - {action: screenshot, label: paused}
`)
	r, err := LoadScript(data)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(r.steps) != 5 {
		t.Fatalf("steps = %d, want 5", len(r.steps))
	}
	if r.steps[0].X != 10 || r.steps[1].Frames != 5 || r.steps[2].Event != "screensaver:shown" {
		t.Errorf("steps = %+v", r.steps)
	}
}

func TestLoadScriptJSON(t *testing.T) {
	if _, err := LoadScript([]byte(`{"steps": [{"action": "tap", "x": 1, "y": 2}]}`)); err != nil {
		t.Errorf("JSON script rejected: %v", err)
	}
}

func TestLoadScriptInvalid(t *testing.T) {
	for name, data := range map[string]string{
		"syntax":        `steps: [`,
		"empty":         `{"steps": []}`,
		"unknown":       `steps: [{action: dance}]`,
		"emit no event": `steps: [{action: emit}]`,
	} {
		if _, err := LoadScript([]byte(data)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestScriptRunnerDrivesApp(t *testing.T) {
	app := NewApp(AppConfig{Width: 100, Height: 100, Clock: NewMockClock(testEpoch)})
	var shown int
	app.Bus.On(EventScreensaverShown, func(any) { shown++ })

	r, err := LoadScript([]byte(`
steps:
  - {action: hide}
  - {action: emit, event: "screensaver:shown"}
  - {action: viewport, width: 320, height: 200}
  - {action: show}
  - {action: screenshot, label: end}
`))
	if err != nil {
		t.Fatal(err)
	}
	var shots []string
	r.Screenshot = func(label string) { shots = append(shots, label) }

	r.Step(app)
	if !app.Doc.Hidden() {
		t.Error("hide step did not hide the page")
	}
	r.Step(app)
	r.Step(app)
	if shown != 1 || app.Doc.Viewport() != (Size{Width: 320, Height: 200}) {
		t.Errorf("shown = %d, viewport = %+v", shown, app.Doc.Viewport())
	}
	r.Step(app)
	r.Step(app)
	if app.Doc.Hidden() || len(shots) != 1 || shots[0] != "end" {
		t.Errorf("hidden = %v, shots = %v", app.Doc.Hidden(), shots)
	}
	if !r.Done() {
		t.Error("runner not done after the last step")
	}
}

func TestScriptRunnerWait(t *testing.T) {
	app := NewApp(AppConfig{Clock: NewMockClock(testEpoch)})
	r, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 3}, {"action": "show"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	for i := range 3 {
		r.Step(app)
		if r.Done() {
			t.Fatalf("done during the wait at frame %d", i+1)
		}
	}
	r.Step(app)
	if !r.Done() {
		t.Error("runner should be done after the wait and the last step")
	}
}

func TestScriptRunnerWaitsForInjections(t *testing.T) {
	app := NewApp(AppConfig{Clock: NewMockClock(testEpoch)})
	r, err := LoadScript([]byte(`steps: [{action: click, x: 5, y: 5}, {action: hide}]`))
	if err != nil {
		t.Fatal(err)
	}
	r.Step(app)
	if app.Doc.PendingInjections() != 2 {
		t.Fatalf("pending = %d, want 2", app.Doc.PendingInjections())
	}
	r.Step(app)
	if app.Doc.Hidden() {
		t.Fatal("runner advanced with injections pending")
	}
	app.Doc.FlushInjected()
	r.Step(app)
	if !app.Doc.Hidden() || !r.Done() {
		t.Errorf("hidden = %v, done = %v after the queue drained", app.Doc.Hidden(), r.Done())
	}
}

func TestScriptTapFreezesEntity(t *testing.T) {
	f := newFixture(t, 1)
	e := f.start(t, Options{Model: stepFactory, TapToFreeze: true})
	vb := e.Entities()[0].Element().VisualBounds()

	r := &ScriptRunner{steps: []scriptStep{{Action: "tap", X: vb.X + 5, Y: vb.Y + 5}}}
	r.Step(f.app)
	f.app.Doc.FlushInjected()
	f.app.Step(time.Millisecond * 16)
	if !e.Frozen(e.Entities()[0].ID) {
		t.Error("scripted tap did not freeze the entity")
	}
}
