package floaty

import (
	"math"
	"testing"
	"time"
)

func feedFrames(m *PerformanceMonitor, clock *MockClock, n int, delta time.Duration) (skipped int) {
	for range n {
		if m.UpdateAt(clock.Advance(delta)) {
			skipped++
		}
	}
	return skipped
}

func TestPerformanceMonitorInitialState(t *testing.T) {
	m := NewPerformanceMonitor(NewMockClock(testEpoch))
	if m.FPS() != 60 {
		t.Errorf("FPS = %v, want 60", m.FPS())
	}
	if m.PerformanceLevel() != TierHigh {
		t.Errorf("tier = %v, want high", m.PerformanceLevel())
	}
	s := m.RecommendedSettings()
	if s.MaxImages != 50 || s.SpeedMultiplier != 1 || !s.UseSubpixel {
		t.Errorf("settings = %+v", s)
	}
}

func TestPerformanceMonitorDropsToLowTier(t *testing.T) {
	clock := NewMockClock(testEpoch)
	m := NewPerformanceMonitor(clock)
	m.UpdateAt(clock.Now())
	// ~15 fps for two seconds.
	feedFrames(m, clock, 30, 66667*time.Microsecond)

	if m.FPS() >= 30 {
		t.Fatalf("FPS = %.1f, want < 30", m.FPS())
	}
	if tier := m.PerformanceLevel(); tier != TierLow {
		t.Errorf("tier = %v, want low", tier)
	}
	if s := m.RecommendedSettings(); s.MaxImages != 10 || s.SpeedMultiplier != 0.5 || s.UseSubpixel {
		t.Errorf("settings = %+v, want low-tier settings", s)
	}
}

func TestPerformanceMonitorMediumTier(t *testing.T) {
	clock := NewMockClock(testEpoch)
	m := NewPerformanceMonitor(clock)
	m.UpdateAt(clock.Now())
	feedFrames(m, clock, 120, 25*time.Millisecond)

	if math.Abs(m.FPS()-40) > 1 {
		t.Fatalf("FPS = %.2f, want about 40", m.FPS())
	}
	if tier := m.PerformanceLevel(); tier != TierMedium {
		t.Errorf("tier = %v, want medium", tier)
	}
	if s := m.RecommendedSettings(); s.MaxImages != 25 || s.SpeedMultiplier != 0.8 {
		t.Errorf("settings = %+v", s)
	}
}

func TestPerformanceMonitorSkipsAlternateFramesWhenSlow(t *testing.T) {
	clock := NewMockClock(testEpoch)
	m := NewPerformanceMonitor(clock)
	m.UpdateAt(clock.Now())
	feedFrames(m, clock, 60, 50*time.Millisecond) // settle at ~20 fps

	if skipped := feedFrames(m, clock, 10, 50*time.Millisecond); skipped != 5 {
		t.Errorf("skipped %d of 10 frames, want 5", skipped)
	}
}

func TestPerformanceMonitorNeverSkipsWhenFast(t *testing.T) {
	clock := NewMockClock(testEpoch)
	m := NewPerformanceMonitor(clock)
	if skipped := feedFrames(m, clock, 120, 16*time.Millisecond); skipped != 0 {
		t.Errorf("skipped %d frames at 60 fps", skipped)
	}
}

func TestPerformanceMonitorIgnoresTinyDeltas(t *testing.T) {
	clock := NewMockClock(testEpoch)
	m := NewPerformanceMonitor(clock)
	m.UpdateAt(clock.Now())
	m.UpdateAt(clock.Advance(100 * time.Microsecond))
	if m.FPS() != 60 {
		t.Errorf("FPS = %v after a sub-millisecond delta, want 60", m.FPS())
	}
}

func TestPerformanceMonitorTierIsCached(t *testing.T) {
	clock := NewMockClock(testEpoch)
	m := NewPerformanceMonitor(clock)
	m.fps = 10

	clock.Advance(500 * time.Millisecond)
	if m.PerformanceLevel() != TierHigh {
		t.Fatal("tier recomputed before a second elapsed")
	}
	clock.Advance(600 * time.Millisecond)
	if m.PerformanceLevel() != TierLow {
		t.Error("tier not recomputed after a second")
	}
}

func TestPerformanceMonitorReset(t *testing.T) {
	clock := NewMockClock(testEpoch)
	m := NewPerformanceMonitor(clock)
	m.UpdateAt(clock.Now())
	feedFrames(m, clock, 30, 100*time.Millisecond)
	clock.Advance(2 * time.Second)
	m.PerformanceLevel()

	m.Reset()
	if m.FPS() != 60 || m.PerformanceLevel() != TierHigh {
		t.Errorf("after Reset FPS = %v, tier = %v", m.FPS(), m.PerformanceLevel())
	}
}

func TestTierString(t *testing.T) {
	for tier, want := range map[Tier]string{TierHigh: "high", TierMedium: "medium", TierLow: "low"} {
		if tier.String() != want {
			t.Errorf("%d.String() = %q, want %q", tier, tier.String(), want)
		}
	}
}
