package ability

import "fmt"

// Slot is the category an ability occupies. Each slot has a capacity.
type Slot string

const (
	SlotMovement Slot = "movement"
	SlotUtility  Slot = "utility"
	SlotUltimate Slot = "ultimate"
)

func (s Slot) Valid() bool {
	switch s {
	case SlotMovement, SlotUtility, SlotUltimate:
		return true
	}
	return false
}

// Intent is a discrete player input fed to equipped abilities.
type Intent int

const (
	Tap Intent = iota
	HoldStart
	HoldEnd
	DoubleTap
	AirTap
)

func (i Intent) String() string {
	switch i {
	case Tap:
		return "tap"
	case HoldStart:
		return "hold_start"
	case HoldEnd:
		return "hold_end"
	case DoubleTap:
		return "double_tap"
	case AirTap:
		return "air_tap"
	}
	return fmt.Sprintf("intent(%d)", int(i))
}

// Context is the read-only body snapshot handed to ability hooks each call.
type Context struct {
	NowMs   float64
	DeltaMs float64

	Grounded        bool
	VelocityY       float64
	IsDashing       bool
	JumpHeight      float64
	DashAvailable   bool
	IsHovering      bool
	GravityInverted bool
}

// Capabilities is the narrow facade abilities use to affect the body. The
// simulation host implements it once; abilities never see the body itself.
type Capabilities interface {
	RequestJump(strength float64) bool
	StartDash(speed, durationMs float64, invincible bool) bool
	AddHorizontalImpulse(speed, durationMs float64)
	SetVerticalVelocity(vy float64)
	OnLand(cb func())
	SetHoverMode(enabled bool)
	SetHoverTarget(height, liftSpeed, fallSpeed float64)
	FlipGravity()
}

// Ability is a live equipped instance. It implements any subset of the hook
// interfaces below; the manager only calls the hooks it finds.
type Ability interface{}

type InputHandler interface {
	// HandleInput reports whether the intent was consumed.
	HandleInput(intent Intent, ctx Context, caps Capabilities) bool
}

type Ticker interface {
	Tick(ctx Context, caps Capabilities)
}

type Lander interface {
	Land(ctx Context, caps Capabilities)
}

type Equipper interface {
	Equip(caps Capabilities, cfg Config)
}

type Unequipper interface {
	Unequip()
}

// Factory builds a fresh instance from its resolved config.
type Factory func(cfg Config) Ability

// Descriptor is a catalog entry.
type Descriptor struct {
	ID            string
	Name          string
	Slot          Slot
	Priority      int
	Prerequisites []string
	Excludes      []string
	Defaults      Config
	New           Factory
}
