package ability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const airJumpSource = `
ability := {
	on_equip: func(engine, state, config) {
		state.strength = is_undefined(config.strength) ? 6 : config.strength
		state.used = false
	},
	on_input: func(engine, state, intent, ctx) {
		if intent != "air_tap" || ctx.grounded || ctx.is_hovering || state.used {
			return false
		}
		state.used = true
		engine.set_vertical_velocity(ctx.gravity_inverted ? -state.strength : state.strength)
		return true
	},
	on_land: func(engine, state, ctx) {
		state.used = false
	}
}
`

func scriptedManager(t *testing.T, src string) (*Manager, *recorder) {
	t.Helper()
	m, caps := coreManager(t, nil)
	d, err := ScriptDescriptor{
		ID:            "air-jump",
		Slot:          SlotUtility,
		Priority:      12,
		Prerequisites: []string{IDJump},
		Defaults:      Config{"strength": 5.0},
		Source:        []byte(src),
	}.Descriptor()
	require.NoError(t, err)
	require.NoError(t, m.Catalog().Register(d))
	require.True(t, m.Equip(IDJump))
	require.True(t, m.Equip("air-jump"), m.LastError())
	return m, caps
}

func TestScriptCompileError(t *testing.T) {
	_, err := ScriptDescriptor{ID: "bad", Slot: SlotUtility, Source: []byte("ability := {")}.Descriptor()
	assert.Error(t, err)

	_, err = ScriptDescriptor{ID: "missing", Slot: SlotUtility, Source: []byte("x := 1")}.Descriptor()
	assert.Error(t, err, "scripts must define the ability map")
}

func TestScriptAirJumpOncePerAirtime(t *testing.T) {
	m, caps := scriptedManager(t, airJumpSource)
	air := Context{VelocityY: -2}

	assert.True(t, m.HandleInput(AirTap, air))
	assert.Equal(t, []float64{5}, caps.velocities)
	assert.False(t, m.HandleInput(AirTap, air))
	assert.Len(t, caps.velocities, 1)

	m.Land(Context{Grounded: true})
	assert.True(t, m.HandleInput(AirTap, Context{GravityInverted: true}))
	assert.Equal(t, []float64{5, -5}, caps.velocities)
}

func TestScriptIgnoresGroundTap(t *testing.T) {
	m, caps := scriptedManager(t, airJumpSource)
	assert.True(t, m.HandleInput(Tap, Context{Grounded: true}), "jump takes the tap")
	assert.Equal(t, []float64{7}, caps.jumps)
	assert.Empty(t, caps.velocities)
}

func TestScriptStatePerInstance(t *testing.T) {
	d, err := ScriptDescriptor{ID: "s", Slot: SlotUtility, Source: []byte(airJumpSource)}.Descriptor()
	require.NoError(t, err)
	caps := newRecorder()
	a := d.New(nil).(*Script)
	b := d.New(nil).(*Script)
	a.Equip(caps, Config{"strength": 3.0})
	b.Equip(caps, Config{})

	require.True(t, a.HandleInput(AirTap, Context{}, caps))
	assert.Equal(t, true, a.State()["used"])
	assert.Equal(t, false, b.State()["used"])
	assert.Equal(t, int64(6), b.State()["strength"])
}

func TestScriptRuntimeErrorNotConsumed(t *testing.T) {
	src := `
ability := {
	on_input: func(engine, state, intent, ctx) {
		x := 1
		return x()
	}
}
`
	d, err := ScriptDescriptor{ID: "boom", Slot: SlotUtility, Source: []byte(src)}.Descriptor()
	require.NoError(t, err)
	s := d.New(nil).(*Script)
	assert.False(t, s.HandleInput(Tap, Context{}, newRecorder()))
}

func TestScriptMissingHooksAreNoops(t *testing.T) {
	d, err := ScriptDescriptor{ID: "empty", Slot: SlotUtility, Source: []byte("ability := {}")}.Descriptor()
	require.NoError(t, err)
	caps := newRecorder()
	s := d.New(nil).(*Script)
	s.Equip(caps, nil)
	s.Tick(Context{}, caps)
	s.Land(Context{}, caps)
	assert.False(t, s.HandleInput(Tap, Context{}, caps))
	s.Unequip()
	assert.Empty(t, caps.calls)
}

func TestScriptEngineCalls(t *testing.T) {
	src := `
ability := {
	on_tick: func(engine, state, ctx) {
		engine.request_jump(8)
		engine.start_dash(100, 50, true)
		engine.add_impulse(100, 50)
		engine.set_hover_mode(true)
		engine.set_hover_target(30, 1, 2)
		engine.flip_gravity()
	}
}
`
	d, err := ScriptDescriptor{ID: "all", Slot: SlotUltimate, Source: []byte(src)}.Descriptor()
	require.NoError(t, err)
	caps := newRecorder()
	s := d.New(nil).(*Script)
	s.Tick(Context{}, caps)
	assert.Equal(t, []string{"jump", "dash", "impulse", "hover_mode", "hover_target", "flip"}, caps.calls)
	assert.Equal(t, [3]float64{100, 50, 1}, caps.dashes[0])
	assert.Equal(t, [3]float64{30, 1, 2}, caps.hoverTarget)
}
