package floaty

import (
	"math"
	"math/rand/v2"
)

var parallaxDepth = Range{Min: 0.35, Max: 1.7}

const (
	parallaxPhaseStep = 0.02
	parallaxSway      = 0.3
)

// ParallaxDrift flows horizontally at a speed set by a per-entity depth.
// Deeper entities are larger, more opaque, drawn on top, and faster, which
// reads as several planes moving past each other. A slow sinusoidal sway is
// layered on top. Entities wrap to the opposite edge when they leave.
type ParallaxDrift struct {
	Depth float64
	phase float64
}

// Init assigns a depth and derives scale, opacity, z-order, and flow speed.
func (p *ParallaxDrift) Init(s *State, bounds Size) {
	p.Depth = parallaxDepth.Random()
	p.phase = rand.Float64() * 2 * math.Pi

	s.Scale = 0.45 + p.Depth*0.45
	s.Opacity = math.Min(1, 0.35+p.Depth*0.38)
	s.Z = int(math.Round(p.Depth * 100))
	s.VX = 0.25 + p.Depth*0.75
	s.VY = jitter(0.05)
	randomPosition(s, bounds)
}

// Step drifts and sways, then wraps.
func (p *ParallaxDrift) Step(s *State, bounds Size, mult float64) {
	p.phase += parallaxPhaseStep * mult
	swayX := math.Cos(p.phase*0.5) * parallaxSway * 0.3
	swayY := math.Sin(p.phase) * parallaxSway * p.Depth

	s.X += (s.VX + swayX) * mult
	s.Y += (s.VY + swayY) * mult

	switch {
	case s.X > bounds.Width:
		s.X = -s.W
		s.Y = rand.Float64() * s.MaxY(bounds)
	case s.X < -s.W:
		s.X = bounds.Width
		s.Y = rand.Float64() * s.MaxY(bounds)
	}
	switch {
	case s.Y > bounds.Height:
		s.Y = -s.H
	case s.Y < -s.H:
		s.Y = bounds.Height
	}
}

// Reset moves the entity to a random position, keeping its depth.
func (p *ParallaxDrift) Reset(s *State, bounds Size) {
	randomPosition(s, bounds)
}
