package floaty

import (
	"fmt"
	"image"
	"math"
	"math/rand/v2"

	"github.com/gogpu/gg"
)

// OrbImage renders a soft glowing orb of the given diameter: a radial gradient
// from a bright core in col to a transparent rim. It is the stand-in content
// for floating images when no files are configured.
func OrbImage(diameter int, col gg.RGBA) (image.Image, error) {
	if diameter <= 0 {
		return nil, fmt.Errorf("floaty: orb diameter %d must be positive", diameter)
	}
	dc := gg.NewContext(diameter, diameter)
	defer dc.Close()

	r := float64(diameter) / 2
	core := gg.RGBA{R: 1, G: 1, B: 1, A: col.A}
	rim := gg.RGBA{R: col.R, G: col.G, B: col.B, A: 0}
	brush := gg.NewRadialGradientBrush(r, r, 0, r).
		AddColorStop(0, core).
		AddColorStop(0.25, col).
		AddColorStop(1, rim)

	dc.ClearWithColor(gg.RGBA{})
	dc.SetFillBrush(brush)
	dc.DrawCircle(r, r, r)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("floaty: fill orb: %w", err)
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("floaty: flush orb: %w", err)
	}
	return dc.Image(), nil
}

// OrbPalette returns n pleasant, evenly spaced hues.
func OrbPalette(n int) []gg.RGBA {
	out := make([]gg.RGBA, n)
	offset := rand.Float64()
	for i := range out {
		h := math.Mod(offset+float64(i)/float64(max(n, 1)), 1)
		out[i] = hsv(h, 0.55, 1)
	}
	return out
}

// NewOrbElements creates n floating-image elements, each showing an orb with
// a diameter drawn from size.
func NewOrbElements(n int, size Range) ([]*Element, error) {
	palette := OrbPalette(n)
	els := make([]*Element, 0, n)
	for i := range n {
		d := int(math.Round(size.Random()))
		img, err := OrbImage(d, palette[i])
		if err != nil {
			return nil, err
		}
		els = append(els, NewImageElement(fmt.Sprintf("orb-%d", i), img, float64(d), float64(d)))
	}
	return els, nil
}

func hsv(h, s, v float64) gg.RGBA {
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)
	switch int(i) % 6 {
	case 0:
		return gg.RGBA{R: v, G: t, B: p, A: 1}
	case 1:
		return gg.RGBA{R: q, G: v, B: p, A: 1}
	case 2:
		return gg.RGBA{R: p, G: v, B: t, A: 1}
	case 3:
		return gg.RGBA{R: p, G: q, B: v, A: 1}
	case 4:
		return gg.RGBA{R: t, G: p, B: v, A: 1}
	default:
		return gg.RGBA{R: v, G: p, B: q, A: 1}
	}
}
