package timing

import "time"

// Clock is the single fixed-step time source of a simulation. Every timed
// sequence in the arena reads Now from the same clock.
type Clock struct {
	now  time.Duration
	step time.Duration
	tick uint64
}

// NewClock returns a clock advancing by 1/tickRate per Tick.
func NewClock(tickRate int) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Clock{step: time.Second / time.Duration(tickRate)}
}

// Tick advances the clock by one step and returns the new time.
func (c *Clock) Tick() time.Duration {
	c.now += c.step
	c.tick++
	return c.now
}

func (c *Clock) Now() time.Duration { return c.now }

// Step is the fixed delta between ticks.
func (c *Clock) Step() time.Duration { return c.step }

// DeltaSeconds is Step as float64 seconds, the unit movement code works in.
func (c *Clock) DeltaSeconds() float64 { return c.step.Seconds() }

func (c *Clock) Ticks() uint64 { return c.tick }
