package timing

import "time"

// Cooldown gates a repeatable action. It is reset to not ready when the
// action starts and becomes ready again once Remaining has elapsed.
type Cooldown struct {
	Ready     bool
	Remaining time.Duration
}

// ReadyCooldown returns a cooldown that allows the action immediately.
func ReadyCooldown() Cooldown {
	return Cooldown{Ready: true}
}

// Start marks the cooldown as spent for d. A non-positive d leaves the
// cooldown ready.
func (c *Cooldown) Start(d time.Duration) {
	if d <= 0 {
		c.Ready = true
		c.Remaining = 0
		return
	}
	c.Ready = false
	c.Remaining = d
}

// Tick counts the cooldown down by dt.
func (c *Cooldown) Tick(dt time.Duration) {
	if c.Ready {
		return
	}
	c.Remaining -= dt
	if c.Remaining <= 0 {
		c.Remaining = 0
		c.Ready = true
	}
}
