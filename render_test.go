package floaty

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func canvasElement(name string, w, h float64) *Element {
	el := NewElement(name)
	el.Canvas = ebiten.NewImage(4, 4)
	el.SetSize(w, h)
	return el
}

func TestBuildCommandsSkipsHidden(t *testing.T) {
	doc := NewDocument(100, 100)
	shown := canvasElement("shown", 10, 10)
	hidden := canvasElement("hidden", 10, 10)
	hidden.Visible = false
	faded := canvasElement("faded", 10, 10)
	faded.Opacity = 0
	doc.Root().AddChild(shown)
	doc.Root().AddChild(hidden)
	doc.Root().AddChild(faded)

	doc.buildCommands()
	if len(doc.commands) != 1 || doc.commands[0].img != shown.Canvas {
		t.Errorf("commands = %d, want only the shown element", len(doc.commands))
	}
}

func TestBuildCommandsSkipsInvisibleSubtree(t *testing.T) {
	doc := NewDocument(100, 100)
	group := NewElement("group")
	group.Visible = false
	group.AddChild(canvasElement("child", 10, 10))
	doc.Root().AddChild(group)

	doc.buildCommands()
	if len(doc.commands) != 0 {
		t.Errorf("commands = %d, want 0", len(doc.commands))
	}
}

func TestBuildCommandsZIndexThenTreeOrder(t *testing.T) {
	doc := NewDocument(100, 100)
	a := canvasElement("a", 10, 10)
	b := canvasElement("b", 10, 10)
	c := canvasElement("c", 10, 10)
	a.ZIndex = 5
	b.ZIndex = 1
	c.ZIndex = 1
	doc.Root().AddChild(a)
	doc.Root().AddChild(b)
	doc.Root().AddChild(c)

	doc.buildCommands()
	want := []*ebiten.Image{b.Canvas, c.Canvas, a.Canvas}
	if len(doc.commands) != len(want) {
		t.Fatalf("commands = %d, want %d", len(doc.commands), len(want))
	}
	for i, img := range want {
		if doc.commands[i].img != img {
			t.Errorf("command %d out of order", i)
		}
	}
}

func TestBuildCommandsAccumulatesAlpha(t *testing.T) {
	doc := NewDocument(100, 100)
	group := NewElement("group")
	group.Opacity = 0.5
	child := canvasElement("child", 10, 10)
	child.Opacity = 0.5
	group.AddChild(child)
	doc.Root().AddChild(group)

	doc.buildCommands()
	if len(doc.commands) != 1 || doc.commands[0].alpha != 0.25 {
		t.Errorf("commands = %+v, want one at alpha 0.25", doc.commands)
	}
}

func TestCommandForMapsVisualBounds(t *testing.T) {
	el := canvasElement("el", 20, 10)
	el.X, el.Y = 5, 5
	el.SetTransform(Transform{TranslateX: 10, Scale: 2})

	cmd, ok := commandFor(el, el.Canvas, 1)
	if !ok {
		t.Fatal("commandFor rejected a sized element")
	}
	// 4x4 canvas onto a 40x20 box at (5, 0).
	x, y := cmd.geo.Apply(0, 0)
	if x != 5 || y != 0 {
		t.Errorf("origin maps to (%v, %v), want (5, 0)", x, y)
	}
	x, y = cmd.geo.Apply(4, 4)
	if x != 45 || y != 20 {
		t.Errorf("far corner maps to (%v, %v), want (45, 20)", x, y)
	}
}

func TestCommandForNaturalSize(t *testing.T) {
	el := NewElement("el")
	el.Canvas = ebiten.NewImage(8, 6)
	cmd, ok := commandFor(el, el.Canvas, 1)
	if !ok {
		t.Fatal("empty box should fall back to the natural size")
	}
	if x, y := cmd.geo.Apply(8, 6); x != 8 || y != 6 {
		t.Errorf("far corner maps to (%v, %v), want (8, 6)", x, y)
	}
}
