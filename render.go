package floaty

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// drawCommand is a single image draw emitted during document traversal.
type drawCommand struct {
	img   *ebiten.Image
	geo   ebiten.GeoM
	alpha float32
	z     int
	order int // tree order, breaks ZIndex ties
}

// Draw renders the document to screen. Visible elements with content are
// drawn in ZIndex order (tree order within a ZIndex), each scaled into its
// visual bounds with its accumulated opacity.
func (d *Document) Draw(screen *ebiten.Image) {
	d.buildCommands()
	var op ebiten.DrawImageOptions
	for i := range d.commands {
		c := &d.commands[i]
		op.GeoM = c.geo
		op.ColorScale.Reset()
		op.ColorScale.ScaleAlpha(c.alpha)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(c.img, &op)
		c.img = nil
	}
}

// buildCommands traverses the tree and fills d.commands, sorted.
func (d *Document) buildCommands() {
	d.commands = d.commands[:0]
	order := 0
	d.traverse(d.root, 1, &order)
	slices.SortStableFunc(d.commands, func(a, b drawCommand) int {
		if c := cmp.Compare(a.z, b.z); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})
}

func (d *Document) traverse(e *Element, parentAlpha float64, order *int) {
	if !e.Visible || e.disposed {
		return
	}
	alpha := parentAlpha * e.Opacity
	if alpha <= 0 {
		return
	}
	if img := e.drawable(); img != nil {
		if cmd, ok := commandFor(e, img, alpha); ok {
			*order++
			cmd.order = *order
			d.commands = append(d.commands, cmd)
		}
	}
	for _, c := range e.children {
		d.traverse(c, alpha, order)
	}
}

// commandFor maps img onto e's visual bounds. Elements with an empty box are
// drawn at the image's natural size.
func commandFor(e *Element, img *ebiten.Image, alpha float64) (drawCommand, bool) {
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return drawCommand{}, false
	}
	vb := e.VisualBounds()
	if vb.Width == 0 && vb.Height == 0 {
		s := e.transform.Scale
		vb.Width, vb.Height = iw*s, ih*s
	}
	if vb.Width <= 0 || vb.Height <= 0 {
		return drawCommand{}, false
	}
	var geo ebiten.GeoM
	geo.Scale(vb.Width/iw, vb.Height/ih)
	geo.Translate(vb.X, vb.Y)
	return drawCommand{img: img, geo: geo, alpha: float32(alpha), z: e.ZIndex}, true
}

// drawable returns the GPU image for e, uploading decoded content on first
// use.
func (e *Element) drawable() *ebiten.Image {
	if e.Canvas != nil {
		return e.Canvas
	}
	e.imgMu.Lock()
	defer e.imgMu.Unlock()
	if e.texture == nil && e.image != nil {
		if ei, ok := e.image.(*ebiten.Image); ok {
			e.texture = ei
		} else {
			e.texture = ebiten.NewImageFromImage(e.image)
		}
	}
	return e.texture
}
