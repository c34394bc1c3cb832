package ability

import "math"

// Cooldown is a countdown in milliseconds. A duration <= 0 means the ability
// is always ready.
type Cooldown struct {
	DurationMs  float64
	RemainingMs float64
}

func NewCooldown(durationMs float64) Cooldown {
	return Cooldown{DurationMs: max(0, durationMs)}
}

func (c *Cooldown) Ready() bool { return c.RemainingMs <= 0 }

// Consume starts the countdown if the cooldown is ready.
func (c *Cooldown) Consume() bool {
	if !c.Ready() {
		return false
	}
	c.RemainingMs = c.DurationMs
	return true
}

func (c *Cooldown) Tick(deltaMs float64) {
	if c.RemainingMs > 0 {
		c.RemainingMs = max(0, c.RemainingMs-deltaMs)
	}
}

func (c *Cooldown) Reset() { c.RemainingMs = 0 }

// ChargePool holds up to Max uses that regenerate one at a time every
// RegenMs. Using a charge restarts the regeneration clock.
type ChargePool struct {
	max       int
	regenMs   float64
	charges   int
	elapsedMs float64
}

func NewChargePool(maxCharges int, regenMs float64) *ChargePool {
	p := &ChargePool{max: max(0, maxCharges), regenMs: max(0, regenMs)}
	p.charges = p.max
	return p
}

func (p *ChargePool) Count() int { return p.charges }
func (p *ChargePool) Max() int   { return p.max }

func (p *ChargePool) TryUse() bool {
	if p.charges <= 0 {
		return false
	}
	p.charges--
	p.elapsedMs = 0
	return true
}

func (p *ChargePool) Tick(deltaMs float64) {
	if p.charges >= p.max || p.regenMs <= 0 || deltaMs <= 0 {
		return
	}
	p.elapsedMs += deltaMs
	gained := int(math.Floor(p.elapsedMs / p.regenMs))
	if gained <= 0 {
		return
	}
	p.charges = min(p.max, p.charges+gained)
	p.elapsedMs -= float64(gained) * p.regenMs
	if p.charges == p.max {
		p.elapsedMs = 0
	}
}

func (p *ChargePool) Refill() {
	p.charges = p.max
	p.elapsedMs = 0
}
