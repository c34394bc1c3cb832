package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// abilityKeys toggles abilities by number key, in catalog order.
var abilityKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// Input holds the single-frame actions read from keyboard, mouse and gamepad.
type Input struct {
	// Press is the primary action: jump on the ground, air tap in the air.
	Press bool
	// Start begins the countdown when idle.
	Start bool
	// Reset returns to the pre-start state.
	Reset bool
	// LapDelta is +1/-1 when the lap count should change.
	LapDelta int
	// Toggle is the index into the ability catalog to equip or unequip, or -1.
	Toggle int
	// Debug flips collider drawing.
	Debug bool
}

func NewInput() *Input {
	return &Input{Toggle: -1}
}

func (i *Input) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	var gpPress, gpStart, gpReset bool
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]
		gpPress = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		gpStart = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterRight)
		gpReset = inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterLeft)
	}

	i.Press = inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyUp) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) ||
		gpPress
	i.Start = inpututil.IsKeyJustPressed(ebiten.KeyEnter) || gpStart
	i.Reset = inpututil.IsKeyJustPressed(ebiten.KeyR) || gpReset
	i.Debug = inpututil.IsKeyJustPressed(ebiten.KeyF1)

	i.LapDelta = 0
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		i.LapDelta++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		i.LapDelta--
	}

	i.Toggle = -1
	for idx, key := range abilityKeys {
		if inpututil.IsKeyJustPressed(key) {
			i.Toggle = idx
			break
		}
	}
}
