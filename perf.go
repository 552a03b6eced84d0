package floaty

import "time"

// Tier is a discrete performance classification driving adaptive quality.
type Tier uint8

const (
	TierHigh   Tier = iota // smoothed fps >= 50
	TierMedium             // smoothed fps >= 30
	TierLow                // anything slower
)

// String returns "high", "medium", or "low".
func (t Tier) String() string {
	switch t {
	case TierMedium:
		return "medium"
	case TierLow:
		return "low"
	default:
		return "high"
	}
}

// Settings are the quality settings recommended for a tier.
type Settings struct {
	MaxImages       int
	SpeedMultiplier float64
	UseSubpixel     bool
}

const (
	seedFPS          = 60.0
	fpsSmoothing     = 0.9 // weight of the previous estimate
	skipBelowFPS     = 30.0
	highTierFPS      = 50.0
	mediumTierFPS    = 30.0
	minFrameDelta    = time.Millisecond
	tierRefreshAfter = time.Second
)

// SettingsFor returns the recommended settings for t.
func SettingsFor(t Tier) Settings {
	switch t {
	case TierMedium:
		return Settings{MaxImages: 25, SpeedMultiplier: 0.8, UseSubpixel: false}
	case TierLow:
		return Settings{MaxImages: 10, SpeedMultiplier: 0.5, UseSubpixel: false}
	default:
		return Settings{MaxImages: 50, SpeedMultiplier: 1.0, UseSubpixel: true}
	}
}

// PerformanceMonitor keeps an exponentially smoothed frame rate and derives
// a quality tier from it. The tier is re-evaluated at most once per second so
// a momentary stall does not flap it.
type PerformanceMonitor struct {
	clock TimeProvider

	fps        float64
	frameCount uint64
	lastFrame  time.Time

	tier          Tier
	lastTierCheck time.Time

	settings      Settings
	settingsTier  Tier
	settingsValid bool
}

// NewPerformanceMonitor creates a monitor seeded at 60 fps and the high tier.
func NewPerformanceMonitor(clock TimeProvider) *PerformanceMonitor {
	if clock == nil {
		clock = SystemClock{}
	}
	m := &PerformanceMonitor{clock: clock}
	m.Reset()
	return m
}

// Reset reseeds every field to the initial high-performance assumptions.
func (m *PerformanceMonitor) Reset() {
	m.fps = seedFPS
	m.frameCount = 0
	m.lastFrame = time.Time{}
	m.tier = TierHigh
	m.lastTierCheck = m.clock.Now()
	m.settingsValid = false
}

// Update records a frame at the clock's current time. See UpdateAt.
func (m *PerformanceMonitor) Update() bool {
	return m.UpdateAt(m.clock.Now())
}

// UpdateAt records a frame that started at now and reports whether the caller
// should skip its work for this frame. Deltas under a millisecond are ignored.
// Below 30 fps every other frame is skipped, halving per-frame cost while
// still letting the estimate recover.
func (m *PerformanceMonitor) UpdateAt(now time.Time) bool {
	m.frameCount++
	if m.lastFrame.IsZero() {
		m.lastFrame = now
		return false
	}
	delta := now.Sub(m.lastFrame)
	if delta < minFrameDelta {
		return false
	}
	m.lastFrame = now

	instant := float64(time.Second) / float64(delta)
	m.fps = m.fps*fpsSmoothing + instant*(1-fpsSmoothing)

	return m.fps < skipBelowFPS && m.frameCount%2 == 0
}

// FPS returns the smoothed frame-rate estimate.
func (m *PerformanceMonitor) FPS() float64 {
	return m.fps
}

// PerformanceLevel returns the cached tier, recomputing it when at least a
// second has passed since the last computation.
func (m *PerformanceMonitor) PerformanceLevel() Tier {
	now := m.clock.Now()
	if now.Sub(m.lastTierCheck) < tierRefreshAfter {
		return m.tier
	}
	m.lastTierCheck = now
	switch {
	case m.fps >= highTierFPS:
		m.tier = TierHigh
	case m.fps >= mediumTierFPS:
		m.tier = TierMedium
	default:
		m.tier = TierLow
	}
	return m.tier
}

// RecommendedSettings returns the settings for the current tier. The value is
// cached until the tier changes.
func (m *PerformanceMonitor) RecommendedSettings() Settings {
	t := m.PerformanceLevel()
	if !m.settingsValid || m.settingsTier != t {
		m.settings = SettingsFor(t)
		m.settingsTier = t
		m.settingsValid = true
	}
	return m.settings
}
