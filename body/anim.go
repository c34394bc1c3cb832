package body

import "github.com/milk9111/jamble/common"

// AnimPhase is the current squash/stretch phase. The body only exposes target
// scales; drawing them is the renderer's job.
type AnimPhase int

const (
	AnimRest AnimPhase = iota
	AnimAir
	AnimLandHold
	AnimLandSpring
	AnimSettle
)

func (p AnimPhase) String() string {
	switch p {
	case AnimAir:
		return "air"
	case AnimLandHold:
		return "land_hold"
	case AnimLandSpring:
		return "land_spring"
	case AnimSettle:
		return "settle"
	}
	return "rest"
}

// Anchor is the edge the scale pivots around.
type Anchor int

const (
	AnchorBottom Anchor = iota
	AnchorTop
)

type animState struct {
	phase  AnimPhase
	anchor Anchor

	scaleX float64
	scaleY float64

	holdMs    float64
	easeMs    float64
	elapsedMs float64
	fromX     float64
	fromY     float64
}

func (a *animState) reset() {
	*a = animState{scaleX: 1, scaleY: 1}
}

func (a *animState) air(cfg SquashConfig, speed float64) {
	a.phase = AnimAir
	if !cfg.Enabled {
		a.scaleX, a.scaleY = 1, 1
		return
	}
	a.scaleX = 1 - speed*cfg.SquashFactor
	a.scaleY = 1 + speed*cfg.StretchFactor
}

func (a *animState) land(cfg SquashConfig, anchor Anchor) {
	a.anchor = anchor
	if !cfg.Enabled {
		a.settle(cfg.AirSmoothingMs)
		return
	}
	a.phase = AnimLandHold
	a.scaleX, a.scaleY = cfg.LandScaleX, cfg.LandScaleY
	a.holdMs = cfg.LandSquashMs
	a.easeMs = cfg.LandEaseMs
	a.elapsedMs = 0
}

// settle eases whatever scale is showing back to 1 over ms.
func (a *animState) settle(ms float64) {
	if ms <= 0 || (a.scaleX == 1 && a.scaleY == 1) {
		a.phase = AnimRest
		a.scaleX, a.scaleY = 1, 1
		return
	}
	a.phase = AnimSettle
	a.fromX, a.fromY = a.scaleX, a.scaleY
	a.easeMs = ms
	a.elapsedMs = 0
}

func (a *animState) update(deltaMs float64) {
	switch a.phase {
	case AnimLandHold:
		a.holdMs -= deltaMs
		if a.holdMs > 0 {
			return
		}
		a.phase = AnimLandSpring
		a.fromX, a.fromY = a.scaleX, a.scaleY
		a.elapsedMs = 0
		a.update(-a.holdMs)
	case AnimLandSpring, AnimSettle:
		a.elapsedMs += deltaMs
		t := 1.0
		if a.easeMs > 0 {
			t = a.elapsedMs / a.easeMs
		}
		if t >= 1 {
			a.phase = AnimRest
			a.scaleX, a.scaleY = 1, 1
			return
		}
		e := common.EaseOut(t)
		a.scaleX = common.Lerp(a.fromX, 1, e)
		a.scaleY = common.Lerp(a.fromY, 1, e)
	}
}

// UpdateAnim advances the landing squash hold, spring-back and settle phases.
func (b *Body) UpdateAnim(deltaMs float64) {
	b.anim.update(deltaMs)
}

func (b *Body) Scale() (x, y float64) { return b.anim.scaleX, b.anim.scaleY }

func (b *Body) AnimPhase() AnimPhase { return b.anim.phase }

func (b *Body) Anchor() Anchor { return b.anim.anchor }
