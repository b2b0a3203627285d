package world

import "math"

// NightClock measures time since the night started. Reset on every night.
type NightClock struct {
	elapsed   float64
	ticks     uint64
	watermark float64
	fired     bool
}

func NewNightClock() *NightClock {
	c := &NightClock{}
	c.Reset()
	return c
}

// Reset rewinds to a fresh night. The watermark starts below every
// activation time so an entry at 0 still fires.
func (c *NightClock) Reset() {
	*c = NightClock{watermark: math.Inf(-1)}
}

// Tick advances by dt seconds. Negative deltas are ignored.
func (c *NightClock) Tick(dt float64) {
	c.ticks++
	if dt > 0 {
		c.elapsed += dt
	}
}

func (c *NightClock) Elapsed() float64 { return c.elapsed }

// Ticks is the number of Tick calls since Reset.
func (c *NightClock) Ticks() uint64 { return c.ticks }

// HasExpired is a pure predicate, true once elapsed passes sleep.
func (c *NightClock) HasExpired(sleep float64) bool { return c.elapsed > sleep }

// ConsumeExpiry reports expiry exactly once per night.
func (c *NightClock) ConsumeExpiry(sleep float64) (elapsed float64, fired bool) {
	if c.fired || !c.HasExpired(sleep) {
		return c.elapsed, false
	}
	c.fired = true
	return c.elapsed, true
}

// Expired reports whether ConsumeExpiry already fired this night.
func (c *NightClock) Expired() bool { return c.fired }

func (c *NightClock) Watermark() float64 { return c.watermark }

// AdvanceWatermark moves the watermark forward; it never moves back.
func (c *NightClock) AdvanceWatermark(t float64) {
	if t > c.watermark {
		c.watermark = t
	}
}
