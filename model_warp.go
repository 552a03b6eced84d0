package floaty

import (
	"math"
	"math/rand/v2"
)

var (
	warpStartScale = Range{Min: 0.12, Max: 0.34}
	warpStartSpeed = Range{Min: 0.6, Max: 1.4}
)

const (
	warpGrowth   = 0.02 // per-step growth of speed and scale at multiplier 1
	warpMaxScale = 3.2
)

// Warp enters from the edge nearest a random birth point and flies across the
// container through that point, speeding up and growing every step like a
// star in a warp-speed field. It respawns once it has left the container on
// every side or grown past the scale cap.
type Warp struct {
	dirX, dirY float64
	speed      float64
}

// Init spawns the entity.
func (w *Warp) Init(s *State, bounds Size) {
	w.spawn(s, bounds)
}

// Step accelerates, grows, and moves along the spawn direction.
func (w *Warp) Step(s *State, bounds Size, mult float64) {
	growth := 1 + warpGrowth*mult
	w.speed *= growth
	s.Scale *= growth
	s.VX = w.dirX * w.speed
	s.VY = w.dirY * w.speed
	s.X += s.VX * mult
	s.Y += s.VY * mult
	s.Opacity = math.Min(1, s.Scale)

	gone := s.X > bounds.Width || s.X+s.W < 0 ||
		s.Y > bounds.Height || s.Y+s.H < 0
	if gone || s.Scale > warpMaxScale {
		w.spawn(s, bounds)
	}
}

// Reset spawns the entity again.
func (w *Warp) Reset(s *State, bounds Size) {
	w.spawn(s, bounds)
}

// spawn picks a birth point inside the container, moves the entity just
// outside the edge nearest to it, and aims it through the birth point.
func (w *Warp) spawn(s *State, bounds Size) {
	bx := rand.Float64() * bounds.Width
	by := rand.Float64() * bounds.Height

	// Distance from the birth point to each edge.
	left, right := bx, bounds.Width-bx
	top, bottom := by, bounds.Height-by
	nearest := math.Min(math.Min(left, right), math.Min(top, bottom))

	var sx, sy float64
	switch nearest {
	case left:
		sx, sy = -s.W, by-s.H/2
	case right:
		sx, sy = bounds.Width, by-s.H/2
	case top:
		sx, sy = bx-s.W/2, -s.H
	default:
		sx, sy = bx-s.W/2, bounds.Height
	}

	w.dirX, w.dirY = aim(bx-(sx+s.W/2), by-(sy+s.H/2),
		bounds.Width/2-(sx+s.W/2), bounds.Height/2-(sy+s.H/2))
	w.speed = warpStartSpeed.Random()

	s.X, s.Y = sx, sy
	s.Scale = warpStartScale.Random()
	s.Opacity = s.Scale
	s.VX = w.dirX * w.speed
	s.VY = w.dirY * w.speed
}

// aim normalizes (dx, dy). When that vector is zero it falls back to
// (fx, fy), and when both are zero to +X, so the result is always a finite
// unit vector.
func aim(dx, dy, fx, fy float64) (float64, float64) {
	if mag := math.Hypot(dx, dy); mag > 1e-9 {
		return dx / mag, dy / mag
	}
	if mag := math.Hypot(fx, fy); mag > 1e-9 {
		return fx / mag, fy / mag
	}
	return 1, 0
}
