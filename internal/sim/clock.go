package sim

import (
	"sync"
	"time"
)

// TimeSource supplies the current time to the clock.
type TimeSource interface {
	Now() time.Time
}

// SystemTime reads the wall clock.
type SystemTime struct{}

func (SystemTime) Now() time.Time { return time.Now() }

// MockTime is a manually advanced TimeSource for tests and headless runs.
type MockTime struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockTime(start time.Time) *MockTime {
	return &MockTime{now: start}
}

func (m *MockTime) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *MockTime) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Clock turns a TimeSource into per-tick delta and total elapsed seconds. The first Update returns a zero
// delta. Deltas are clamped to maxDelta; elapsed is the sum of clamped deltas, so a stall never makes
// tweens or bobbing jump. Elapsed is float64: a float32 sum stops growing at 60 fps after about six days.
type Clock struct {
	src      TimeSource
	maxDelta float32
	last     time.Time
	started  bool
	delta    float32
	elapsed  float64
}

func NewClock(src TimeSource, maxDelta float32) *Clock {
	if src == nil {
		src = SystemTime{}
	}
	return &Clock{src: src, maxDelta: maxDelta}
}

// Update samples the time source and returns the new delta and elapsed, in seconds.
func (c *Clock) Update() (delta float32, elapsed float64) {
	now := c.src.Now()
	if !c.started {
		c.started = true
		c.last = now
		c.delta = 0
		return c.delta, c.elapsed
	}
	d := now.Sub(c.last).Seconds()
	c.last = now
	if d < 0 {
		d = 0
	}
	if c.maxDelta > 0 && d > float64(c.maxDelta) {
		d = float64(c.maxDelta)
	}
	c.delta = float32(d)
	c.elapsed += float64(c.delta)
	return c.delta, c.elapsed
}

func (c *Clock) Delta() float32   { return c.delta }
func (c *Clock) Elapsed() float64 { return c.elapsed }
