package ability

// recorder is a Capabilities fake that logs every call.
type recorder struct {
	calls []string

	jumpOK bool
	dashOK bool

	jumps       []float64
	dashes      [][3]float64
	impulses    [][2]float64
	velocities  []float64
	hoverModes  []bool
	hoverTarget [3]float64
	flips       int
	landCbs     []func()
}

func newRecorder() *recorder {
	return &recorder{jumpOK: true, dashOK: true}
}

func (r *recorder) RequestJump(strength float64) bool {
	r.calls = append(r.calls, "jump")
	r.jumps = append(r.jumps, strength)
	return r.jumpOK
}

func (r *recorder) StartDash(speed, durationMs float64, invincible bool) bool {
	r.calls = append(r.calls, "dash")
	inv := 0.0
	if invincible {
		inv = 1
	}
	r.dashes = append(r.dashes, [3]float64{speed, durationMs, inv})
	return r.dashOK
}

func (r *recorder) AddHorizontalImpulse(speed, durationMs float64) {
	r.calls = append(r.calls, "impulse")
	r.impulses = append(r.impulses, [2]float64{speed, durationMs})
}

func (r *recorder) SetVerticalVelocity(vy float64) {
	r.calls = append(r.calls, "velocity")
	r.velocities = append(r.velocities, vy)
}

func (r *recorder) OnLand(cb func()) {
	r.calls = append(r.calls, "on_land")
	r.landCbs = append(r.landCbs, cb)
}

func (r *recorder) SetHoverMode(enabled bool) {
	r.calls = append(r.calls, "hover_mode")
	r.hoverModes = append(r.hoverModes, enabled)
}

func (r *recorder) SetHoverTarget(height, liftSpeed, fallSpeed float64) {
	r.calls = append(r.calls, "hover_target")
	r.hoverTarget = [3]float64{height, liftSpeed, fallSpeed}
}

func (r *recorder) FlipGravity() {
	r.calls = append(r.calls, "flip")
	r.flips++
}

// recordingAbility logs its id on every input, for ordering tests.
type recordingAbility struct {
	id      string
	consume bool
	log     *[]string
}

func (p *recordingAbility) HandleInput(Intent, Context, Capabilities) bool {
	*p.log = append(*p.log, p.id)
	return p.consume
}

func recordingDescriptor(id string, slot Slot, priority int, consume bool, log *[]string) Descriptor {
	return Descriptor{
		ID: id, Slot: slot, Priority: priority,
		New: func(Config) Ability { return &recordingAbility{id: id, consume: consume, log: log} },
	}
}
