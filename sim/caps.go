package sim

import "github.com/milk9111/jamble/ability"

// capabilities is the only path from abilities to the body and the
// movement system.
type capabilities struct {
	s *Simulation
}

var _ ability.Capabilities = (*capabilities)(nil)

// RequestJump starts a jump unless one is already under way or the runner
// is dead. A positive strength overrides the default jump velocity.
func (c *capabilities) RequestJump(strength float64) bool {
	b := c.s.body
	if b.Jumping || b.FrozenDeath {
		return false
	}
	b.Jump()
	if strength > 0 {
		b.Launch(strength)
	}
	return true
}

// StartDash ignores speed; dash abilities push horizontally through
// AddHorizontalImpulse.
func (c *capabilities) StartDash(_, durationMs float64, invincible bool) bool {
	if durationMs <= 0 {
		durationMs = c.s.cfg.Body.DashDurationMs
	}
	return c.s.body.StartDash(durationMs, invincible)
}

func (c *capabilities) AddHorizontalImpulse(speed, durationMs float64) {
	c.s.movement.AddImpulse(speed, durationMs)
}

func (c *capabilities) SetVerticalVelocity(vy float64) {
	c.s.body.Velocity = vy
}

// OnLand queues cb for the next landing. Callbacks fire once.
func (c *capabilities) OnLand(cb func()) {
	if cb == nil {
		return
	}
	c.s.landCallbacks = append(c.s.landCallbacks, cb)
}

func (c *capabilities) SetHoverMode(enabled bool) {
	c.s.body.SetHoverMode(enabled)
}

func (c *capabilities) SetHoverTarget(height, liftSpeed, fallSpeed float64) {
	c.s.body.SetHoverTarget(height, liftSpeed, fallSpeed)
}

func (c *capabilities) FlipGravity() {
	c.s.body.FlipGravity()
}
