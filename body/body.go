package body

import (
	"math"

	"github.com/milk9111/jamble/geom"
)

const (
	// tier boundaries for gravity selection, in px/frame
	tierUpVelocity   = 2.0
	tierDownVelocity = -2.0

	hoverSnapDistance = 2.0

	// velocity left after a rise is cut short
	postDashFallVelocity = 0.1
	hoverReleaseVelocity = 1.0
)

// Body is the player's kinematic state. X is the horizontal centre;
// JumpHeight is measured from the floor and Velocity is positive upward.
// With GravityInverted the ceiling at MaxY acts as ground.
type Body struct {
	cfg Config

	X          float64
	JumpHeight float64
	Velocity   float64

	Jumping         bool
	Dashing         bool
	Invincible      bool
	Hovering        bool
	GravityInverted bool
	FrozenStart     bool
	FrozenDeath     bool

	dashAvailable   bool
	dashRemainingMs float64

	hoverTarget    float64
	hoverLiftSpeed float64
	hoverFallSpeed float64

	screenBounds    geom.Rect
	hasScreenBounds bool

	anim animState
}

func New(cfg Config) *Body {
	b := &Body{cfg: cfg.Sanitized()}
	b.Reset()
	return b
}

func (b *Body) Config() Config { return b.cfg }

// Reset reinitialises every field for a fresh run. The body starts frozen.
func (b *Body) Reset() {
	b.X = b.cfg.StartOffset + b.HalfWidth()
	b.JumpHeight = 0
	b.Velocity = 0
	b.Jumping = false
	b.Dashing = false
	b.Invincible = false
	b.Hovering = false
	b.GravityInverted = false
	b.FrozenStart = true
	b.FrozenDeath = false
	b.dashAvailable = true
	b.dashRemainingMs = 0
	b.hoverTarget = 0
	b.hoverLiftSpeed = b.cfg.HoverLiftSpeed
	b.hoverFallSpeed = b.cfg.HoverFallSpeed
	b.screenBounds = geom.Rect{}
	b.hasScreenBounds = false
	b.anim.reset()
}

func (b *Body) SetPrestart()      { b.FrozenStart = true }
func (b *Body) ClearFrozenStart() { b.FrozenStart = false }
func (b *Body) SetFrozenDeath()   { b.FrozenDeath = true }

func (b *Body) Frozen() bool { return b.FrozenStart || b.FrozenDeath }

// Idle stops the body where it stands and freezes it for the next start.
func (b *Body) Idle() {
	b.Jumping = false
	b.endDash()
	b.Velocity = 0
	if !b.Hovering {
		b.JumpHeight = b.groundHeight()
	}
	b.anim.settle(b.cfg.Squash.AirSmoothingMs)
	b.FrozenStart = true
}

// MaxY is the highest JumpHeight the body can reach before touching the ceiling.
func (b *Body) MaxY() float64 {
	return max(0, b.cfg.WorldHeight-b.cfg.Height)
}

func (b *Body) groundHeight() float64 {
	if b.GravityInverted {
		return b.MaxY()
	}
	return 0
}

// AtGround reports whether the body rests on its current ground surface.
func (b *Body) AtGround() bool {
	if b.GravityInverted {
		return b.JumpHeight >= b.MaxY()
	}
	return b.JumpHeight <= 0
}

func (b *Body) Grounded() bool {
	return !b.Jumping && !b.Hovering && b.AtGround()
}

func (b *Body) DashAvailable() bool { return b.dashAvailable }

func (b *Body) DashRemainingMs() float64 { return b.dashRemainingMs }

// awayFromGround converts a speed away from the current ground into a
// world-space velocity.
func (b *Body) awayFromGround(speed float64) float64 {
	if b.GravityInverted {
		return -speed
	}
	return speed
}

// Jump starts a jump with the default strength. Callers may override the
// velocity right after.
func (b *Body) Jump() {
	if b.Jumping || b.FrozenDeath {
		return
	}
	b.Jumping = true
	b.Velocity = b.awayFromGround(b.cfg.JumpStrength)
}

// Launch sets the speed away from the current ground.
func (b *Body) Launch(speed float64) {
	b.Velocity = b.awayFromGround(speed)
}

// StartDash begins a dash. Only valid while airborne, not already dashing, and
// once per airtime.
func (b *Body) StartDash(durationMs float64, invincible bool) bool {
	if b.FrozenStart || b.FrozenDeath || !b.Jumping {
		return false
	}
	if b.Dashing || !b.dashAvailable {
		return false
	}
	b.Dashing = true
	b.Invincible = invincible
	b.dashRemainingMs = max(0, durationMs)
	b.dashAvailable = false
	return true
}

func (b *Body) UpdateDash(deltaMs float64) {
	if !b.Dashing {
		return
	}
	b.dashRemainingMs -= deltaMs
	if b.dashRemainingMs <= 0 {
		b.endDash()
	}
}

func (b *Body) endDash() {
	if !b.Dashing {
		return
	}
	b.Dashing = false
	b.Invincible = false
	b.dashRemainingMs = 0
	// do not hang at the apex
	b.CancelRise()
}

// CancelRise turns any motion away from ground into a slow fall.
func (b *Body) CancelRise() {
	if b.awayFromGround(b.Velocity) > 0 {
		b.Velocity = b.awayFromGround(-postDashFallVelocity)
	}
}

// GravityFor returns the gravity magnitude for a velocity band.
func (b *Body) GravityFor(v float64) float64 {
	switch {
	case v > tierUpVelocity:
		return b.cfg.GravityUp
	case v > tierDownVelocity:
		return b.cfg.GravityMid
	default:
		return b.cfg.GravityDown
	}
}

// Update integrates vertical motion for dt 60 Hz frames.
func (b *Body) Update(dt float64) {
	if b.Dashing {
		return
	}
	if b.Hovering {
		b.updateHover(dt)
		return
	}
	if b.FrozenDeath || !b.Jumping {
		return
	}

	b.JumpHeight += b.Velocity * dt
	g := b.GravityFor(b.Velocity)
	if b.GravityInverted {
		b.Velocity += g * dt
	} else {
		b.Velocity -= g * dt
	}

	landed := false
	if b.GravityInverted {
		if maxY := b.MaxY(); b.JumpHeight >= maxY {
			b.JumpHeight = maxY
			landed = true
		}
	} else if b.JumpHeight <= 0 {
		b.JumpHeight = 0
		landed = true
	}

	if landed {
		b.land()
		return
	}
	b.anim.air(b.cfg.Squash, max(0, b.awayFromGround(b.Velocity)))
}

func (b *Body) land() {
	b.Jumping = false
	b.endDash()
	b.dashAvailable = true
	anchor := AnchorBottom
	if b.GravityInverted {
		anchor = AnchorTop
	}
	b.anim.land(b.cfg.Squash, anchor)
}

// SetHoverMode switches between gravity integration and height seeking.
// Entering is refused while death-frozen.
func (b *Body) SetHoverMode(enabled bool) {
	if enabled && b.FrozenDeath {
		return
	}
	b.Hovering = enabled
	if enabled {
		b.Jumping = true
		b.Velocity = 0
		return
	}
	if !b.AtGround() {
		b.Jumping = true
		b.Velocity = b.awayFromGround(-hoverReleaseVelocity)
		return
	}
	b.Jumping = false
}

func (b *Body) SetHoverTarget(height, liftSpeed, fallSpeed float64) {
	b.hoverTarget = height
	b.hoverLiftSpeed = max(0, liftSpeed)
	b.hoverFallSpeed = max(0, fallSpeed)
}

func (b *Body) HoverTarget() float64 { return b.hoverTarget }

func (b *Body) updateHover(dt float64) {
	b.Jumping = true
	delta := b.hoverTarget - b.JumpHeight
	if math.Abs(delta) < hoverSnapDistance {
		b.JumpHeight = b.hoverTarget
		b.Velocity = 0
	} else {
		speed, dir := b.hoverLiftSpeed, 1.0
		if delta < 0 {
			speed, dir = b.hoverFallSpeed, -1.0
		}
		seconds := dt / 60
		move := math.Min(math.Abs(delta), speed*seconds) * dir
		b.JumpHeight += move
		if seconds > 0 {
			b.Velocity = move / seconds
		}
	}
	if b.JumpHeight < 0 {
		b.JumpHeight = 0
	}
}

// FlipGravity swaps which surface is ground. The body keeps its distance from
// ground and its speed relative to it: height is mirrored into [0, MaxY] and
// velocity is negated, never zeroed.
func (b *Body) FlipGravity() {
	if b.FrozenDeath {
		return
	}
	b.GravityInverted = !b.GravityInverted
	maxY := b.MaxY()
	clamped := math.Max(0, math.Min(b.JumpHeight, maxY))
	b.JumpHeight = maxY - clamped
	b.Velocity = -b.Velocity
	b.Jumping = !b.AtGround()
}

func (b *Body) MoveX(dx float64) { b.X += dx }
func (b *Body) SetX(x float64)   { b.X = x }

func (b *Body) HalfWidth() float64 { return b.cfg.Width / 2 }

// Right is the right edge measured from the centre.
func (b *Body) Right() float64 { return b.X + b.HalfWidth() }

func (b *Body) Size() geom.Size { return geom.Size{W: b.cfg.Width, H: b.cfg.Height} }

// SetScreenBounds records where the presentation layer actually drew the
// body. Collision shapes are positioned from it.
func (b *Body) SetScreenBounds(r geom.Rect) {
	b.screenBounds = r
	b.hasScreenBounds = true
}

// TransformBounds derives screen bounds from the logical transform.
func (b *Body) TransformBounds() geom.Rect {
	top := b.cfg.WorldHeight - b.cfg.Height - b.JumpHeight
	return geom.NewRect(b.X-b.HalfWidth(), top, b.cfg.Width, b.cfg.Height)
}

func (b *Body) ScreenBounds() geom.Rect {
	if b.hasScreenBounds {
		return b.screenBounds
	}
	return b.TransformBounds()
}

// CollisionShape returns the shape to test against obstacles, or false while
// invincible.
func (b *Body) CollisionShape() (geom.Shape, bool) {
	if b.Invincible {
		return geom.Shape{}, false
	}
	return geom.ShapeFor(b.ScreenBounds(), b.Size(), b.cfg.Collision), true
}
