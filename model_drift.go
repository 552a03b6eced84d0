package floaty

import "math"

const (
	driftSpeed      = 1.5  // initial per-axis velocity range is ±driftSpeed
	driftDamping    = 0.85 // velocity kept after an edge bounce
	driftMinBounce  = 0.1  // slowest allowed velocity away from an edge
	driftJitter     = 0.01
	driftSpeedLimit = 2.5
)

// Drift moves in a straight line with a little per-frame jitter and bounces
// off the container edges with damping. Stateless; one instance is shared.
type Drift struct{}

// Init places the entity at random with a random velocity.
func (Drift) Init(s *State, bounds Size) {
	randomPosition(s, bounds)
	s.VX = jitter(driftSpeed)
	s.VY = jitter(driftSpeed)
	s.Scale = 1
	s.Opacity = 1
}

// Step moves the entity and reflects it off any edge it reaches.
func (Drift) Step(s *State, bounds Size, mult float64) {
	s.VX += jitter(driftJitter)
	s.VY += jitter(driftJitter)
	s.VX, s.VY = limitSpeed(s.VX, s.VY, driftSpeedLimit)

	s.X += s.VX * mult
	s.Y += s.VY * mult

	s.X, s.VX = bounce(s.X, s.VX, s.MaxX(bounds))
	s.Y, s.VY = bounce(s.Y, s.VY, s.MaxY(bounds))
}

// Reset re-seeds position and velocity.
func (d Drift) Reset(s *State, bounds Size) {
	d.Init(s, bounds)
}

// bounce clamps pos into [0, hi] and, when it hit an edge, points v back
// inward with damping and a minimum magnitude.
func bounce(pos, v, hi float64) (float64, float64) {
	switch {
	case pos <= 0:
		return 0, math.Max(math.Abs(v)*driftDamping, driftMinBounce)
	case pos >= hi:
		return hi, -math.Max(math.Abs(v)*driftDamping, driftMinBounce)
	}
	return pos, v
}
