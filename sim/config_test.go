package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/jamble/ability"
	"github.com/milk9111/jamble/geom"
	"github.com/milk9111/jamble/prefabs"
)

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"idle":       ModeIdle,
		"pingpong":   ModePingPong,
		" PingPong ": ModePingPong,
		"":           ModeIdle,
		"loop":       ModeIdle,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseMode(in), in)
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 500.0, cfg.Body.WorldWidth)
	assert.Equal(t, 100.0, cfg.Body.WorldHeight)
	assert.Equal(t, 130.0, cfg.Speed)
	assert.Equal(t, ModeIdle, cfg.Mode)
	assert.Equal(t, 1, cfg.Laps)
	assert.Equal(t, 3000.0, cfg.StartFreezeMs)
	assert.Equal(t, 4, cfg.Limits[ability.SlotMovement])
	assert.Equal(t, geom.ShapeRect, cfg.Body.Collision.Shape)
	assert.Equal(t, 0.8, cfg.Body.Collision.ScaleX)
	assert.True(t, cfg.Body.Squash.Enabled)
	assert.Equal(t, 280, cfg.Overrides[ability.IDDash]["speed"])

	require.Len(t, cfg.Scripts, 1)
	assert.Equal(t, "air-jump", cfg.Scripts[0].ID)
	assert.Equal(t, ability.SlotUtility, cfg.Scripts[0].Slot)
	assert.Contains(t, string(cfg.Scripts[0].Source), "on_input")
}

func TestConfigFromSpec(t *testing.T) {
	t.Run("nil_spec_is_default", func(t *testing.T) {
		cfg, err := ConfigFromSpec(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Speed, cfg.Speed)
	})

	t.Run("missing_values_keep_defaults", func(t *testing.T) {
		cfg, err := ConfigFromSpec(&prefabs.TuningSpec{
			Player: prefabs.PlayerSpec{Speed: -5},
			Run:    prefabs.RunSpec{Mode: "pingpong", Laps: 42, DeathFreezeMs: -1},
		})
		require.NoError(t, err)
		def := DefaultConfig()
		assert.Equal(t, def.Speed, cfg.Speed)
		assert.Equal(t, def.Body.Collision, cfg.Body.Collision)
		assert.Equal(t, def.DeathFreezeMs, cfg.DeathFreezeMs)
		assert.Equal(t, ModePingPong, cfg.Mode)
		assert.Equal(t, 9, cfg.Laps)
		assert.Equal(t, def.Loadout, cfg.Loadout)
	})

	t.Run("unknown_slot", func(t *testing.T) {
		_, err := ConfigFromSpec(&prefabs.TuningSpec{
			Abilities: prefabs.AbilitiesSpec{Limits: map[string]int{"legs": 1}},
		})
		assert.ErrorContains(t, err, `unknown ability slot "legs"`)
	})

	t.Run("missing_script", func(t *testing.T) {
		_, err := ConfigFromSpec(&prefabs.TuningSpec{
			Abilities: prefabs.AbilitiesSpec{Scripts: []prefabs.ScriptSpec{{ID: "ghost", Path: "ghost.tengo"}}},
		})
		assert.ErrorContains(t, err, `load script "ghost"`)
	})

	t.Run("circle_collider", func(t *testing.T) {
		cfg, err := ConfigFromSpec(&prefabs.TuningSpec{
			Player: prefabs.PlayerSpec{Collision: prefabs.CollisionSpec{Shape: "circle", ScaleX: 0.5}},
		})
		require.NoError(t, err)
		assert.Equal(t, geom.Config{Shape: geom.ShapeCircle, ScaleX: 0.5, ScaleY: 1}, cfg.Body.Collision)
	})
}

func TestConfigSanitized(t *testing.T) {
	cfg := Config{Speed: -1, Mode: "weird", Laps: 0, StartFreezeMs: -10, DeathWiggleDistance: -2}.Sanitized()
	assert.Equal(t, 0.0, cfg.Speed)
	assert.Equal(t, ModeIdle, cfg.Mode)
	assert.Equal(t, 1, cfg.Laps)
	assert.Equal(t, 0.0, cfg.StartFreezeMs)
	assert.Equal(t, 0.0, cfg.DeathWiggleDistance)
}
