// Package term renders a floaty document onto a terminal with tcell. Each
// visible element is drawn as one glyph at the cell under its visual center,
// sized by its scale and dimmed by its opacity.
package term

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/floaty"
)

// Default cell geometry: a terminal cell is roughly twice as tall as wide.
const (
	DefaultCellW = 8
	DefaultCellH = 16
)

var palette = []tcell.Color{
	tcell.ColorAqua,
	tcell.ColorFuchsia,
	tcell.ColorYellow,
	tcell.ColorLime,
	tcell.ColorOrange,
	tcell.ColorSkyblue,
	tcell.ColorPink,
}

// Renderer draws one document onto one screen.
type Renderer struct {
	Screen tcell.Screen
	// CellW and CellH are the document pixels covered by one cell.
	CellW, CellH float64

	doc     *floaty.Document
	buf     []*floaty.Element
	pressed bool // Button1 held since the last mouse event
}

// New creates a renderer for doc on screen. The screen must already be
// initialized.
func New(screen tcell.Screen, doc *floaty.Document) *Renderer {
	return &Renderer{
		Screen: screen,
		CellW:  DefaultCellW,
		CellH:  DefaultCellH,
		doc:    doc,
	}
}

// Fit resizes the document viewport to cover the whole screen.
func (r *Renderer) Fit() floaty.Size {
	w, h := r.Screen.Size()
	sz := floaty.Size{Width: float64(w) * r.CellW, Height: float64(h) * r.CellH}
	r.doc.SetViewport(sz.Width, sz.Height)
	return sz
}

// Draw clears the screen and draws every visible element with content.
func (r *Renderer) Draw() {
	r.Screen.Clear()
	r.buf = collect(r.doc.Root(), 1, r.buf[:0])
	slices.SortStableFunc(r.buf, func(a, b *floaty.Element) int {
		return cmp.Compare(a.ZIndex, b.ZIndex)
	})
	w, h := r.Screen.Size()
	for _, el := range r.buf {
		vb := el.VisualBounds()
		cx := int((vb.X + vb.Width/2) / r.CellW)
		cy := int((vb.Y + vb.Height/2) / r.CellH)
		if cx < 0 || cy < 0 || cx >= w || cy >= h {
			continue
		}
		r.Screen.SetContent(cx, cy, Glyph(el.Transform().Scale), nil, style(el))
	}
	r.Screen.Show()
}

// Glyph returns the rune drawn for an element at the given scale.
func Glyph(scale float64) rune {
	switch {
	case scale < 0.6:
		return '·'
	case scale < 1.2:
		return '•'
	default:
		return '●'
	}
}

func style(el *floaty.Element) tcell.Style {
	s := tcell.StyleDefault.Foreground(palette[int(el.ID)%len(palette)])
	if el.Opacity < 0.4 {
		s = s.Dim(true)
	}
	return s
}

func collect(el *floaty.Element, alpha float64, buf []*floaty.Element) []*floaty.Element {
	for _, c := range el.Children() {
		if !c.Visible || c.IsDisposed() {
			continue
		}
		a := alpha * c.Opacity
		if a <= 0 {
			continue
		}
		if c.Loaded() {
			buf = append(buf, c)
		}
		buf = collect(c, a, buf)
	}
	return buf
}

// RunOptions configure Run.
type RunOptions struct {
	// Interval between frames (default 33ms).
	Interval time.Duration
	// OnKey is called for every key that does not quit.
	OnKey func(*tcell.EventKey)
	// OnResize is called after the viewport was refit.
	OnResize func(floaty.Size)
}

// Run drives app at a fixed interval until ctx is done or the user presses
// Esc, Ctrl-C or q. Mouse motion is injected as pointer moves and clicks as
// clicks, so hover behavior works in terminals that report the mouse.
func (r *Renderer) Run(ctx context.Context, app *floaty.App, opts RunOptions) error {
	if opts.Interval <= 0 {
		opts.Interval = 33 * time.Millisecond
	}
	r.Screen.EnableMouse()
	defer r.Screen.DisableMouse()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := r.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()
	dt := opts.Interval.Seconds()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !r.handle(ev, opts) {
				return nil
			}
		case <-ticker.C:
			app.Doc.FlushInjected()
			app.Doc.Update(dt)
			app.Frame()
			r.Draw()
		}
	}
}

// handle processes one terminal event. It returns false to quit.
func (r *Renderer) handle(ev tcell.Event, opts RunOptions) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
			(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if opts.OnKey != nil {
			opts.OnKey(ev)
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		px := (float64(x) + 0.5) * r.CellW
		py := (float64(y) + 0.5) * r.CellH
		down := ev.Buttons()&tcell.Button1 != 0
		if down && !r.pressed {
			r.doc.InjectClick(px, py)
		} else {
			r.doc.InjectMove(px, py)
		}
		r.pressed = down
	case *tcell.EventResize:
		r.Screen.Sync()
		sz := r.Fit()
		if opts.OnResize != nil {
			opts.OnResize(sz)
		}
	}
	return true
}
