package floaty

import (
	"errors"
	"math"
	"math/rand/v2"
)

// State is the simulated physical state of one entity. Models read and write
// it; the entity renders it.
type State struct {
	X, Y   float64 // top-left of the entity box, container space
	VX, VY float64 // pixels per step at multiplier 1
	W, H   float64 // entity box size

	Scale   float64
	Opacity float64
	Z       int

	// OffsetX/OffsetY are added at render time only and never stored into
	// X/Y (glitch tremor).
	OffsetX, OffsetY float64
}

// MaxX returns the largest in-bounds X for the entity in bounds.
func (s *State) MaxX(bounds Size) float64 {
	return math.Max(0, bounds.Width-s.W)
}

// MaxY returns the largest in-bounds Y for the entity in bounds.
func (s *State) MaxY(bounds Size) float64 {
	return math.Max(0, bounds.Height-s.H)
}

// Model is a per-frame motion strategy.
type Model interface {
	// Init seeds a freshly created entity.
	Init(s *State, bounds Size)
	// Step advances one frame. mult scales the distance travelled; it is
	// always > 0 when called.
	Step(s *State, bounds Size, mult float64)
	// Reset teleports the entity to a fresh random start.
	Reset(s *State, bounds Size)
}

// clampState forces s into [0, bounds-size] on both axes without touching
// velocity.
func clampState(s *State, bounds Size) {
	s.X = clamp(s.X, 0, s.MaxX(bounds))
	s.Y = clamp(s.Y, 0, s.MaxY(bounds))
}

func randomPosition(s *State, bounds Size) {
	s.X = rand.Float64() * s.MaxX(bounds)
	s.Y = rand.Float64() * s.MaxY(bounds)
}

// limitSpeed rescales (vx, vy) so its magnitude does not exceed limit.
func limitSpeed(vx, vy, limit float64) (float64, float64) {
	mag := math.Hypot(vx, vy)
	if mag <= limit || mag == 0 {
		return vx, vy
	}
	k := limit / mag
	return vx * k, vy * k
}

// jitter returns a uniform value in [-amount, amount].
func jitter(amount float64) float64 {
	return (rand.Float64()*2 - 1) * amount
}

// Mode names a built-in motion model.
type Mode uint8

const (
	ModeDrift    Mode = iota // straight-line drift bouncing off edges
	ModeParallax             // multi-plane horizontal flow
	ModeRain                 // falling and recycling from the top
	ModeBrownian             // random walk with soft edges
	ModeWarp                 // accelerating fly-through
	ModeGlitch               // idle jitter with periodic teleports
)

var modeNames = [...]string{"drift", "parallax", "rain", "brownian", "warp", "glitch"}

// Modes lists every built-in mode.
var Modes = []Mode{ModeDrift, ModeParallax, ModeRain, ModeBrownian, ModeWarp, ModeGlitch}

// String returns the config name of the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// MarshalText returns the config name of the mode.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText parses a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	for i, name := range modeNames {
		if name == string(text) {
			*m = Mode(i)
			return nil
		}
	}
	return errors.New("floaty: unknown motion mode " + string(text))
}

// ModelFactory returns the Model for one new entity. Stateless models may
// return a shared instance; stateful ones must return a fresh value.
type ModelFactory func() Model

var (
	sharedDrift    = &Drift{}
	sharedRain     = &Rain{}
	sharedBrownian = &Brownian{}
)

// Factory returns the ModelFactory for m.
func (m Mode) Factory() ModelFactory {
	switch m {
	case ModeParallax:
		return func() Model { return &ParallaxDrift{} }
	case ModeRain:
		return func() Model { return sharedRain }
	case ModeBrownian:
		return func() Model { return sharedBrownian }
	case ModeWarp:
		return func() Model { return &Warp{} }
	case ModeGlitch:
		return func() Model { return &GlitchJump{} }
	default:
		return func() Model { return sharedDrift }
	}
}
