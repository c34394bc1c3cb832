package sim

import (
	"github.com/milk9111/jamble/body"
	"github.com/milk9111/jamble/course"
	"github.com/milk9111/jamble/geom"
	"github.com/milk9111/jamble/run"
)

// View is everything the presentation layer needs to draw one frame.
type View struct {
	Runner       geom.Rect
	WiggleOffset float64
	ScaleX       float64
	ScaleY       float64
	Anchor       body.Anchor

	// Collider is built from the screen bounds last passed to
	// Body.SetScreenBounds, so it trails a frame that reports new bounds.
	Collider    geom.Shape
	HasCollider bool

	Obstacles []course.Obstacle

	Mode      Mode
	Direction int
	Arrivals  int
	Run       run.Snapshot
	Laps      int
	Equipped  []string

	Countdown     bool
	CountdownMs   float64
	AwaitingStart bool
	WaitingGround bool

	Dead           bool
	ResetAvailable bool

	Dashing         bool
	Invincible      bool
	Hovering        bool
	GravityInverted bool
}

func (s *Simulation) View() View {
	b := s.body
	sx, sy := b.Scale()
	v := View{
		Runner:       b.TransformBounds(),
		WiggleOffset: s.WiggleOffset(),
		ScaleX:       sx,
		ScaleY:       sy,
		Anchor:       b.Anchor(),

		Mode:      s.cfg.Mode,
		Direction: s.direction,
		Arrivals:  s.arrivals,
		Run:       s.run.Snapshot(),
		Laps:      s.laps,
		Equipped:  s.abilities.Equipped(),

		Countdown:     s.inCountdown,
		CountdownMs:   s.CountdownRemainingMs(),
		AwaitingStart: s.Idle(),
		WaitingGround: s.waitGroundForStart,

		Dead:           b.FrozenDeath,
		ResetAvailable: s.resetAvailable,

		Dashing:         b.Dashing,
		Invincible:      b.Invincible,
		Hovering:        b.Hovering,
		GravityInverted: b.GravityInverted,
	}
	v.Collider, v.HasCollider = b.CollisionShape()
	if s.course != nil {
		v.Obstacles = s.course.Obstacles()
	}
	return v
}
