package floaty

import "math"

const (
	brownianStart      = 1.0
	brownianJitter     = 0.2
	brownianDamping    = 0.97
	brownianMargin     = 0.3 // fraction of the entity size that counts as "near an edge"
	brownianPush       = 0.06
	brownianSpeedLimit = 2.7
)

// Brownian performs a damped random walk, nudged back toward the interior
// whenever it strays near an edge. Stateless; one instance is shared.
type Brownian struct{}

// Init places the entity at random with a small random velocity.
func (Brownian) Init(s *State, bounds Size) {
	randomPosition(s, bounds)
	s.VX = jitter(brownianStart)
	s.VY = jitter(brownianStart)
	s.Scale = 1
	s.Opacity = 1
}

// Step perturbs, damps, steers away from edges, and moves.
func (Brownian) Step(s *State, bounds Size, mult float64) {
	s.VX = (s.VX + jitter(brownianJitter)) * brownianDamping
	s.VY = (s.VY + jitter(brownianJitter)) * brownianDamping

	s.VX += edgePush(s.X, s.MaxX(bounds), s.W*brownianMargin)
	s.VY += edgePush(s.Y, s.MaxY(bounds), s.H*brownianMargin)
	s.VX, s.VY = limitSpeed(s.VX, s.VY, brownianSpeedLimit)

	s.X += s.VX * mult
	s.Y += s.VY * mult

	if s.X < 0 || s.X > s.MaxX(bounds) {
		s.VX = -s.VX * 0.5
	}
	if s.Y < 0 || s.Y > s.MaxY(bounds) {
		s.VY = -s.VY * 0.5
	}
	clampState(s, bounds)
}

// Reset re-seeds position and velocity.
func (b Brownian) Reset(s *State, bounds Size) {
	b.Init(s, bounds)
}

// edgePush returns a velocity nudge pointing away from whichever edge pos is
// within margin of, or 0.
func edgePush(pos, hi, margin float64) float64 {
	if margin <= 0 || hi <= 0 {
		return 0
	}
	switch {
	case pos < margin:
		return brownianPush * math.Min(1, (margin-pos)/margin)
	case pos > hi-margin:
		return -brownianPush * math.Min(1, (pos-(hi-margin))/margin)
	}
	return 0
}
