package floaty

import (
	"math"
	"math/rand/v2"
)

const (
	glitchIdleJitter = 0.06
	glitchMinFrames  = 18
	glitchMaxFrames  = 80
	glitchPulse      = 0.35
	glitchPulseDecay = 0.82
	glitchTremorStep = 0.3
)

// GlitchJump idles with a faint jitter and tremor, then every 18-80 frames
// teleports to a random spot with a short scale pulse.
type GlitchJump struct {
	countdown float64
	boost     float64
	phase     float64
}

func (g *GlitchJump) rearm() {
	g.countdown = float64(glitchMinFrames + rand.IntN(glitchMaxFrames-glitchMinFrames+1))
}

// Init places the entity at random and arms the first jump.
func (g *GlitchJump) Init(s *State, bounds Size) {
	randomPosition(s, bounds)
	s.VX, s.VY = 0, 0
	s.Scale = 1
	s.Opacity = 1
	g.boost = 0
	g.phase = rand.Float64() * 2 * math.Pi
	g.rearm()
}

// Step jitters, advances the tremor, decays the pulse, and jumps when the
// countdown runs out.
func (g *GlitchJump) Step(s *State, bounds Size, mult float64) {
	s.X += jitter(glitchIdleJitter) * mult
	s.Y += jitter(glitchIdleJitter) * mult
	clampState(s, bounds)

	g.phase += glitchTremorStep * mult
	s.OffsetX = math.Sin(g.phase) * 0.8
	s.OffsetY = math.Cos(g.phase*1.3) * 0.6

	g.boost *= glitchPulseDecay
	if g.boost < 0.001 {
		g.boost = 0
	}

	g.countdown -= mult
	if g.countdown <= 0 {
		randomPosition(s, bounds)
		g.boost = glitchPulse
		g.rearm()
	}
	s.Scale = 1 + g.boost
}

// Reset teleports immediately without a pulse.
func (g *GlitchJump) Reset(s *State, bounds Size) {
	randomPosition(s, bounds)
	g.boost = 0
	s.Scale = 1
	g.rearm()
}
