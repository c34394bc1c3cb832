package sim

import (
	"github.com/milk9111/jamble/ability"
	"github.com/milk9111/jamble/movement"
)

const (
	maxStepSec       = 0.05
	wiggleIntervalMs = 100.0
)

// Step advances the simulation by deltaSec seconds. Deltas are capped at
// 50 ms.
func (s *Simulation) Step(deltaSec float64) {
	deltaSec = max(0, min(deltaSec, maxStepSec))
	deltaMs := deltaSec * 1000
	dt := deltaSec * 60
	s.nowMs += deltaMs

	s.tickCountdown(deltaMs)

	// pingpong never idles
	if s.cfg.Mode == ModePingPong && s.body.FrozenStart && !s.inCountdown && !s.body.FrozenDeath {
		s.awaitingStart = false
		s.waitGroundForStart = false
		s.body.ClearFrozenStart()
	}

	if !s.body.Frozen() {
		if ev := s.movement.Tick(deltaMs, deltaSec, s.body, s.direction, s.abilities); ev.Hit {
			s.handleEdgeArrival(ev)
		}
	}

	if s.course != nil {
		s.course.Update(deltaSec)
	}

	s.body.Update(dt)
	s.body.UpdateDash(deltaMs)
	s.body.UpdateAnim(deltaMs)

	grounded := s.body.Grounded()
	ctx := s.context(deltaMs, grounded)
	s.abilities.Tick(ctx)
	if !s.wasGrounded && grounded {
		s.abilities.Land(ctx)
		s.fireLandCallbacks()
	}
	s.wasGrounded = grounded

	if s.cfg.Mode == ModeIdle && s.waitGroundForStart && s.settled() {
		s.waitGroundForStart = false
		s.awaitingStart = true
	}

	if !s.checkCollision() {
		s.tickDeath(deltaMs)
	}
}

func (s *Simulation) tickCountdown(deltaMs float64) {
	if !s.inCountdown {
		return
	}
	s.countdownMs -= deltaMs
	if s.countdownMs > 0 {
		return
	}
	s.countdownMs = 0
	s.inCountdown = false
	s.body.ClearFrozenStart()
	s.run.StartRun()
}

// settled reports whether the body rests somewhere a new run can start from.
func (s *Simulation) settled() bool {
	return s.body.Grounded() || s.body.Hovering
}

func (s *Simulation) handleEdgeArrival(ev movement.BoundaryEvent) {
	ev.Align()
	s.arrivals++
	s.direction = ev.NewDirection

	if s.cfg.Mode == ModeIdle && s.run.HandleEdgeArrival() {
		s.finishRun()
		return
	}
	s.body.CancelRise()
	s.awaitingStart = false
	s.waitGroundForStart = false
}

// finishRun parks the runner at the edge it just reached. An airborne
// runner has to come down before the next start is accepted.
func (s *Simulation) finishRun() {
	s.laps = s.cfg.Laps
	s.run.ResetToIdle(s.laps)
	s.body.SetPrestart()
	s.inCountdown = false
	s.movement.ClearImpulses()

	if s.settled() {
		s.body.Idle()
		s.awaitingStart = true
		s.waitGroundForStart = false
		return
	}
	s.body.CancelRise()
	s.awaitingStart = false
	s.waitGroundForStart = true
}

func (s *Simulation) fireLandCallbacks() {
	cbs := s.landCallbacks
	s.landCallbacks = nil
	for _, cb := range cbs {
		cb()
	}
}

// checkCollision freezes the runner on its first deadly hit and reports
// whether that happened this frame.
func (s *Simulation) checkCollision() bool {
	if s.course == nil || s.body.Frozen() {
		return false
	}
	shape, ok := s.body.CollisionShape()
	if !ok {
		return false
	}
	hit, ok := s.course.FirstDeadly(shape)
	if !ok {
		return false
	}

	s.body.SetFrozenDeath()
	s.lastHit = &hit
	s.deathMs = s.cfg.DeathFreezeMs
	s.wiggleMs = 0
	s.resetDelayMs = s.cfg.ShowResetDelayMs
	s.resetAvailable = s.resetDelayMs <= 0
	return true
}

func (s *Simulation) tickDeath(deltaMs float64) {
	if !s.body.FrozenDeath {
		return
	}
	if s.deathMs > 0 {
		s.deathMs -= deltaMs
		s.wiggleMs += deltaMs
		if s.deathMs <= 0 {
			s.deathMs = 0
			s.wiggleMs = 0
		}
	}
	if !s.resetAvailable {
		s.resetDelayMs -= deltaMs
		if s.resetDelayMs <= 0 {
			s.resetDelayMs = 0
			s.resetAvailable = true
		}
	}
}

// WiggleOffset is the horizontal shake applied to the drawn runner after a
// death. It alternates every 100 ms and never moves the collider.
func (s *Simulation) WiggleOffset() float64 {
	if s.deathMs <= 0 {
		return 0
	}
	n := int(s.wiggleMs / wiggleIntervalMs)
	switch {
	case n == 0:
		return 0
	case n%2 == 1:
		return s.cfg.DeathWiggleDistance
	default:
		return -s.cfg.DeathWiggleDistance
	}
}

func (s *Simulation) context(deltaMs float64, grounded bool) ability.Context {
	b := s.body
	return ability.Context{
		NowMs:           s.nowMs,
		DeltaMs:         deltaMs,
		Grounded:        grounded,
		VelocityY:       b.Velocity,
		IsDashing:       b.Dashing,
		JumpHeight:      b.JumpHeight,
		DashAvailable:   b.DashAvailable() && !b.Dashing,
		IsHovering:      b.Hovering,
		GravityInverted: b.GravityInverted,
	}
}

// Input offers intent to the equipped abilities. Ignored while dead or while
// a finished runner is still coming down.
func (s *Simulation) Input(intent ability.Intent) bool {
	if s.body.FrozenDeath {
		return false
	}
	if s.body.FrozenStart && s.waitGroundForStart {
		return false
	}
	return s.abilities.HandleInput(intent, s.context(0, s.body.Grounded()))
}

// Press is the primary button: a tap on the ground, an air tap otherwise.
func (s *Simulation) Press() bool {
	intent := ability.AirTap
	if s.body.Grounded() {
		intent = ability.Tap
	}
	return s.Input(intent)
}
