package ability

import "math"

const (
	IDMove        = "move"
	IDJump        = "jump"
	IDJumpHigh    = "jump.high"
	IDDash        = "dash"
	IDDashPhase   = "dash.phase"
	IDHover       = "hover"
	IDGravityFlip = "gravity-flip"
)

// Move carries no behaviour of its own. The movement system applies the base
// horizontal speed while it is equipped.
type Move struct{}

func NewMove(Config) Ability { return &Move{} }

// Jump requests a vertical launch on a grounded tap.
type Jump struct {
	strength float64
	cd       Cooldown
}

func NewJump(cfg Config) Ability {
	return &Jump{
		strength: cfg.Float("strength", 7),
		cd:       NewCooldown(cfg.Float("cooldownMs", 0)),
	}
}

func (j *Jump) HandleInput(intent Intent, ctx Context, caps Capabilities) bool {
	if intent != Tap && intent != AirTap {
		return false
	}
	if !ctx.Grounded || !j.cd.Ready() {
		return false
	}
	ok := caps.RequestJump(j.strength)
	if ok {
		j.cd.Consume()
	}
	return ok
}

func (j *Jump) Tick(ctx Context, _ Capabilities) { j.cd.Tick(ctx.DeltaMs) }

// Dash fires once per airtime on an air tap: it requests the dash state and
// pushes a timed horizontal impulse.
type Dash struct {
	speed       float64
	durationMs  float64
	invincible  bool
	cd          Cooldown
	usedThisAir bool
}

func NewDash(cfg Config) Ability {
	return &Dash{
		speed:      max(0, cfg.Float("speed", 280)),
		durationMs: max(0, cfg.Float("durationMs", 220)),
		invincible: cfg.Bool("invincible", false),
		cd:         NewCooldown(cfg.Float("cooldownMs", 150)),
	}
}

func (d *Dash) HandleInput(intent Intent, ctx Context, caps Capabilities) bool {
	if intent != AirTap || ctx.Grounded || d.usedThisAir || !d.cd.Ready() {
		return false
	}
	if !caps.StartDash(d.speed, d.durationMs, d.invincible) {
		return false
	}
	caps.AddHorizontalImpulse(d.speed, d.durationMs)
	d.cd.Consume()
	d.usedThisAir = true
	return true
}

func (d *Dash) Tick(ctx Context, _ Capabilities) { d.cd.Tick(ctx.DeltaMs) }

func (d *Dash) Land(Context, Capabilities) { d.usedThisAir = false }

// Hover replaces gravity with a height seek while equipped. The target bobs
// on a sine wave.
type Hover struct {
	targetHeight float64
	bobAmplitude float64
	bobPeriodMs  float64
	liftSpeed    float64
	fallSpeed    float64

	caps      Capabilities
	elapsedMs float64
}

func NewHover(cfg Config) Ability {
	return &Hover{
		targetHeight: max(0, cfg.Float("targetHeight", 40)),
		bobAmplitude: cfg.Float("bobAmplitude", 6),
		bobPeriodMs:  cfg.Float("bobPeriodMs", 1200),
		liftSpeed:    max(0, cfg.Float("liftSpeed", 200)),
		fallSpeed:    max(0, cfg.Float("fallSpeed", 300)),
	}
}

func (h *Hover) Equip(caps Capabilities, _ Config) {
	h.caps = caps
	h.elapsedMs = 0
	caps.SetHoverMode(true)
	caps.SetHoverTarget(h.targetHeight, h.liftSpeed, h.fallSpeed)
}

func (h *Hover) Unequip() {
	if h.caps != nil {
		h.caps.SetHoverMode(false)
	}
	h.caps = nil
}

// Target is the bobbing height for the current phase.
func (h *Hover) Target() float64 {
	if h.bobPeriodMs <= 0 {
		return h.targetHeight
	}
	phase := math.Mod(h.elapsedMs, h.bobPeriodMs) / h.bobPeriodMs
	return h.targetHeight + math.Sin(phase*2*math.Pi)*h.bobAmplitude
}

func (h *Hover) Tick(ctx Context, caps Capabilities) {
	if h.caps == nil {
		return
	}
	h.elapsedMs += ctx.DeltaMs
	caps.SetHoverTarget(h.Target(), h.liftSpeed, h.fallSpeed)
}

// HandleInput swallows taps so lower priority jumps never fire mid-hover.
func (h *Hover) HandleInput(intent Intent, _ Context, _ Capabilities) bool {
	return h.caps != nil && intent == Tap
}

// GravityFlip swaps floor and ceiling on a tap. Charges, when configured,
// limit how many flips can be chained.
type GravityFlip struct {
	cd      Cooldown
	charges *ChargePool
}

func NewGravityFlip(cfg Config) Ability {
	g := &GravityFlip{cd: NewCooldown(cfg.Float("cooldownMs", 0))}
	if n := cfg.Int("charges", 0); n > 0 {
		g.charges = NewChargePool(n, cfg.Float("regenMs", 0))
	}
	return g
}

func (g *GravityFlip) HandleInput(intent Intent, _ Context, caps Capabilities) bool {
	if intent != Tap && intent != AirTap {
		return false
	}
	if !g.cd.Ready() {
		return false
	}
	if g.charges != nil && !g.charges.TryUse() {
		return false
	}
	caps.FlipGravity()
	g.cd.Consume()
	return true
}

func (g *GravityFlip) Tick(ctx Context, _ Capabilities) {
	g.cd.Tick(ctx.DeltaMs)
	if g.charges != nil {
		g.charges.Tick(ctx.DeltaMs)
	}
}

// Charges reports remaining and maximum flips, or -1s when unlimited.
func (g *GravityFlip) Charges() (int, int) {
	if g.charges == nil {
		return -1, -1
	}
	return g.charges.Count(), g.charges.Max()
}

// CoreDescriptors lists the built-in abilities.
func CoreDescriptors() []Descriptor {
	return []Descriptor{
		{ID: IDMove, Name: "Move", Slot: SlotMovement, Priority: 5, New: NewMove},
		{
			ID: IDJump, Name: "Jump", Slot: SlotMovement, Priority: 10,
			Excludes: []string{IDJumpHigh},
			Defaults: Config{"strength": 7.0},
			New:      NewJump,
		},
		{
			ID: IDJumpHigh, Name: "Jump High", Slot: SlotMovement, Priority: 10,
			Excludes: []string{IDJump},
			Defaults: Config{"strength": 10.0},
			New:      NewJump,
		},
		{
			ID: IDDash, Name: "Dash", Slot: SlotMovement, Priority: 20,
			Excludes: []string{IDDashPhase},
			Defaults: Config{"speed": 280.0, "durationMs": 220.0, "cooldownMs": 150.0},
			New:      NewDash,
		},
		{
			ID: IDDashPhase, Name: "Phase Dash", Slot: SlotMovement, Priority: 20,
			Excludes: []string{IDDash},
			Defaults: Config{"speed": 280.0, "durationMs": 220.0, "cooldownMs": 150.0, "invincible": true},
			New:      NewDash,
		},
		{
			ID: IDHover, Name: "Hover", Slot: SlotMovement, Priority: 15,
			Excludes: []string{IDGravityFlip},
			Defaults: Config{
				"targetHeight": 40.0, "bobAmplitude": 6.0, "bobPeriodMs": 1200.0,
				"liftSpeed": 200.0, "fallSpeed": 300.0,
			},
			New: NewHover,
		},
		{
			ID: IDGravityFlip, Name: "Gravity Flip", Slot: SlotMovement, Priority: 25,
			Excludes: []string{IDHover},
			New:      NewGravityFlip,
		},
	}
}

// RegisterCore adds every built-in ability to c.
func RegisterCore(c *Catalog) error {
	for _, d := range CoreDescriptors() {
		if err := c.Register(d); err != nil {
			return err
		}
	}
	return nil
}
