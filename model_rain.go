package floaty

import "math/rand/v2"

var (
	rainFall  = Range{Min: 1, Max: 2.8}
	rainDrift = Range{Min: -0.3, Max: 0.3}
)

// Rain falls from above the container, wraps horizontally, and respawns above
// the top once it has passed the bottom edge. Stateless; one instance is
// shared.
type Rain struct{}

// Init places the entity somewhere above the container so entities enter
// staggered.
func (Rain) Init(s *State, bounds Size) {
	s.X = rand.Float64() * s.MaxX(bounds)
	s.Y = -s.H - rand.Float64()*bounds.Height
	s.VX = rainDrift.Random()
	s.VY = rainFall.Random()
	s.Scale = 1
	s.Opacity = 1
}

// Step falls one frame and recycles at the bottom.
func (r Rain) Step(s *State, bounds Size, mult float64) {
	s.X += s.VX * mult
	s.Y += s.VY * mult

	switch {
	case s.X > bounds.Width:
		s.X = -s.W
	case s.X < -s.W:
		s.X = bounds.Width
	}

	if s.Y > bounds.Height {
		r.Reset(s, bounds)
	}
}

// Reset respawns the entity just above the top edge at a random column with
// a fresh fall speed.
func (Rain) Reset(s *State, bounds Size) {
	s.X = rand.Float64() * s.MaxX(bounds)
	s.Y = -s.H - 1 - rand.Float64()*s.H
	s.VX = rainDrift.Random()
	s.VY = rainFall.Random()
}
