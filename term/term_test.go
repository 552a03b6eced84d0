package term

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/floaty"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestFitSetsViewport(t *testing.T) {
	screen := newScreen(t, 80, 24)
	doc := floaty.NewDocument(1, 1)
	r := New(screen, doc)

	sz := r.Fit()
	if sz.Width != 80*DefaultCellW || sz.Height != 24*DefaultCellH {
		t.Errorf("Fit = %+v", sz)
	}
	if doc.Viewport() != sz {
		t.Errorf("viewport = %+v, want %+v", doc.Viewport(), sz)
	}
}

func TestDrawPlacesGlyphAtCenter(t *testing.T) {
	screen := newScreen(t, 40, 10)
	doc := floaty.NewDocument(40*DefaultCellW, 10*DefaultCellH)
	r := New(screen, doc)

	el := floaty.NewElement("dot", floaty.DefaultSelector)
	el.SetSize(16, 16)
	el.SetTransform(floaty.Transform{TranslateX: 80, TranslateY: 32, Scale: 1})
	doc.Root().AddChild(el)

	r.Draw()

	// Center (88, 40) falls in cell (11, 2).
	got, _, _, _ := screen.GetContent(11, 2)
	if got != '•' {
		t.Errorf("cell (11,2) = %q, want '•'", got)
	}
}

func TestDrawSkipsHiddenAndTransparent(t *testing.T) {
	screen := newScreen(t, 20, 5)
	doc := floaty.NewDocument(20*DefaultCellW, 5*DefaultCellH)
	r := New(screen, doc)

	hidden := floaty.NewElement("hidden")
	hidden.SetSize(8, 16)
	hidden.Visible = false
	doc.Root().AddChild(hidden)

	faded := floaty.NewElement("faded")
	faded.SetSize(8, 16)
	faded.Opacity = 0
	doc.Root().AddChild(faded)

	r.Draw()
	got, _, _, _ := screen.GetContent(0, 0)
	if got != ' ' && got != 0 {
		t.Errorf("cell (0,0) = %q, want blank", got)
	}
}

func TestGlyphBySize(t *testing.T) {
	if Glyph(0.3) != '·' || Glyph(1) != '•' || Glyph(2) != '●' {
		t.Error("unexpected glyph ramp")
	}
}

func TestEngineRendersToTerminal(t *testing.T) {
	screen := newScreen(t, 40, 20)
	clock := floaty.NewMockClock(time.Unix(1000, 0))
	app := floaty.NewApp(floaty.AppConfig{Width: 1, Height: 1, Clock: clock})
	r := New(screen, app.Doc)
	sz := r.Fit()

	container := floaty.NewElement("container")
	container.SetSize(sz.Width, sz.Height)
	app.Doc.Root().AddChild(container)
	for range 5 {
		el := floaty.NewElement("img", floaty.DefaultSelector)
		el.SetSize(16, 16)
		container.AddChild(el)
	}

	e, err := app.NewEngine(container, floaty.Options{Mode: floaty.ModeDrift, MaxImages: 5})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	<-e.Discovered()
	// Run past the spawn fade-in.
	for range 60 {
		app.Step(16 * time.Millisecond)
	}
	if e.Len() != 5 {
		t.Fatalf("Len = %d, want 5", e.Len())
	}

	r.Draw()
	drawn := 0
	for y := range 20 {
		for x := range 40 {
			if c, _, _, _ := screen.GetContent(x, y); c != ' ' && c != 0 {
				drawn++
			}
		}
	}
	if drawn == 0 {
		t.Error("no entity glyphs drawn")
	}
	app.Destroy()
}

func TestMouseDragClicksOnce(t *testing.T) {
	screen := newScreen(t, 20, 5)
	doc := floaty.NewDocument(20*DefaultCellW, 5*DefaultCellH)
	r := New(screen, doc)

	for x := range 3 {
		r.handle(tcell.NewEventMouse(x, 1, tcell.Button1, tcell.ModNone), RunOptions{})
	}
	// One click (press and release) plus two drag moves.
	if n := doc.PendingInjections(); n != 4 {
		t.Fatalf("pending after drag = %d, want 4", n)
	}
	r.handle(tcell.NewEventMouse(3, 1, tcell.ButtonNone, tcell.ModNone), RunOptions{})
	r.handle(tcell.NewEventMouse(3, 1, tcell.Button1, tcell.ModNone), RunOptions{})
	if n := doc.PendingInjections(); n != 7 {
		t.Errorf("pending after release and press = %d, want 7", n)
	}
}
