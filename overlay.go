package floaty

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween/ease"
)

// NewPerfOverlay creates an element that shows the smoothed FPS and tier of
// perf, plus the live entity count of each engine. It redraws every ~0.5
// seconds from its OnUpdate hook; add it to the document root to show it.
func NewPerfOverlay(perf *PerformanceMonitor, engines ...*Engine) *Element {
	// 160x48 fits "FPS: 60.0\nTier: medium\nEntities: 100"
	img := ebiten.NewImage(160, 48)

	el := NewElement("perf_overlay")
	el.Canvas = img
	el.SetSize(160, 48)
	el.ZIndex = 1 << 20 // above every entity
	el.Opacity = 0
	fade := TweenOpacity(el, 1, 0.3, ease.OutQuad)

	lastUpdate := 0.5
	el.OnUpdate = func(dt float64) {
		fade.Update(float32(dt))
		lastUpdate += dt
		if lastUpdate < 0.5 {
			return
		}
		lastUpdate = 0

		n := 0
		for _, e := range engines {
			n += e.Len()
		}
		img.Clear()
		// Semi-transparent background for readability
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTier: %s\nEntities: %d",
			perf.FPS(), perf.PerformanceLevel(), n))
	}
	return el
}
