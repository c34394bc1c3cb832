package sim

import (
	"fmt"
	"strings"

	"github.com/milk9111/jamble/ability"
	"github.com/milk9111/jamble/body"
	"github.com/milk9111/jamble/prefabs"
	"github.com/milk9111/jamble/run"
)

// Mode selects what happens when the runner reaches a world edge.
type Mode string

const (
	// ModeIdle counts laps and stops at the edge once the run is done.
	ModeIdle Mode = "idle"
	// ModePingPong turns around at every edge and never stops.
	ModePingPong Mode = "pingpong"
)

// ParseMode maps a config string onto a mode. Anything unknown is idle.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModePingPong)) {
		return ModePingPong
	}
	return ModeIdle
}

// Config is the immutable tuning a Simulation runs with. A new one only takes
// effect between runs.
type Config struct {
	Body  body.Config
	Speed float64

	Mode Mode
	Laps int

	StartFreezeMs       float64
	DeathFreezeMs       float64
	ShowResetDelayMs    float64
	DeathWiggleDistance float64

	Limits    ability.Limits
	Loadout   []string
	Overrides map[string]ability.Config
	Scripts   []ability.ScriptDescriptor
}

func DefaultConfig() Config {
	return Config{
		Body:                body.DefaultConfig(),
		Speed:               130,
		Mode:                ModeIdle,
		Laps:                run.MinLaps,
		StartFreezeMs:       3000,
		DeathFreezeMs:       500,
		ShowResetDelayMs:    150,
		DeathWiggleDistance: 1,
		Limits:              ability.Limits{ability.SlotMovement: 4, ability.SlotUtility: 2, ability.SlotUltimate: 1},
		Loadout:             []string{ability.IDMove, ability.IDJump, ability.IDDash},
	}
}

// Sanitized clamps out-of-range values instead of rejecting them.
func (c Config) Sanitized() Config {
	c.Body = c.Body.Sanitized()
	c.Speed = max(0, c.Speed)
	c.Mode = ParseMode(string(c.Mode))
	c.Laps = max(run.MinLaps, min(run.MaxLaps, c.Laps))
	c.StartFreezeMs = max(0, c.StartFreezeMs)
	c.DeathFreezeMs = max(0, c.DeathFreezeMs)
	c.ShowResetDelayMs = max(0, c.ShowResetDelayMs)
	c.DeathWiggleDistance = max(0, c.DeathWiggleDistance)
	return c
}

// ConfigFromSpec converts a tuning spec into a Config. Missing or
// non-positive values keep their defaults. Script sources are resolved
// through prefabs.LoadScript.
func ConfigFromSpec(spec *prefabs.TuningSpec) (Config, error) {
	cfg := DefaultConfig()
	if spec == nil {
		return cfg, nil
	}

	b := &cfg.Body
	b.WorldWidth = positiveOr(spec.World.Width, b.WorldWidth)
	b.WorldHeight = positiveOr(spec.World.Height, b.WorldHeight)

	p := spec.Player
	b.Width = positiveOr(p.Width, b.Width)
	b.Height = positiveOr(p.Height, b.Height)
	b.StartOffset = positiveOr(p.StartOffset, b.StartOffset)
	b.JumpStrength = positiveOr(p.JumpStrength, b.JumpStrength)
	b.DashDurationMs = positiveOr(p.DashDurationMs, b.DashDurationMs)
	b.GravityUp = positiveOr(p.Gravity.Up, b.GravityUp)
	b.GravityMid = positiveOr(p.Gravity.Mid, b.GravityMid)
	b.GravityDown = positiveOr(p.Gravity.Down, b.GravityDown)
	b.HoverLiftSpeed = positiveOr(p.Hover.LiftSpeed, b.HoverLiftSpeed)
	b.HoverFallSpeed = positiveOr(p.Hover.FallSpeed, b.HoverFallSpeed)
	if p.Collision != (prefabs.CollisionSpec{}) {
		b.Collision = p.Collision.GeomConfig()
	}
	if p.Squash != (prefabs.SquashSpec{}) {
		b.Squash = body.SquashConfig{
			Enabled:        p.Squash.Enabled,
			StretchFactor:  p.Squash.StretchFactor,
			SquashFactor:   p.Squash.SquashFactor,
			LandScaleX:     positiveOr(p.Squash.LandScaleX, 1),
			LandScaleY:     positiveOr(p.Squash.LandScaleY, 1),
			LandSquashMs:   p.Squash.LandSquashMs,
			LandEaseMs:     p.Squash.LandEaseMs,
			AirSmoothingMs: p.Squash.AirSmoothingMs,
		}
	}
	cfg.Speed = positiveOr(p.Speed, cfg.Speed)

	r := spec.Run
	if r.Mode != "" {
		cfg.Mode = ParseMode(r.Mode)
	}
	if r.Laps != 0 {
		cfg.Laps = run.ClampLaps(r.Laps)
	}
	cfg.StartFreezeMs = positiveOr(r.StartFreezeMs, cfg.StartFreezeMs)
	cfg.DeathFreezeMs = positiveOr(r.DeathFreezeMs, cfg.DeathFreezeMs)
	cfg.ShowResetDelayMs = positiveOr(r.ShowResetDelayMs, cfg.ShowResetDelayMs)
	cfg.DeathWiggleDistance = positiveOr(r.DeathWiggleDistance, cfg.DeathWiggleDistance)

	a := spec.Abilities
	for name, n := range a.Limits {
		slot := ability.Slot(name)
		if !slot.Valid() {
			return Config{}, fmt.Errorf("sim: unknown ability slot %q", name)
		}
		cfg.Limits[slot] = n
	}
	if a.Loadout != nil {
		cfg.Loadout = append([]string(nil), a.Loadout...)
	}
	if len(a.Config) > 0 {
		cfg.Overrides = make(map[string]ability.Config, len(a.Config))
		for id, c := range a.Config {
			cfg.Overrides[id] = ability.Config(c)
		}
	}
	for _, s := range a.Scripts {
		src, err := prefabs.LoadScript(s.Path)
		if err != nil {
			return Config{}, fmt.Errorf("sim: load script %q: %w", s.ID, err)
		}
		cfg.Scripts = append(cfg.Scripts, ability.ScriptDescriptor{
			ID:            s.ID,
			Name:          s.Name,
			Slot:          ability.Slot(s.Slot),
			Priority:      s.Priority,
			Prerequisites: s.Prerequisites,
			Excludes:      s.Excludes,
			Defaults:      ability.Config(s.Defaults),
			Source:        src,
		})
	}

	return cfg.Sanitized(), nil
}

// LoadConfig reads the tuning spec and converts it.
func LoadConfig() (Config, error) {
	spec, err := prefabs.LoadTuningSpec()
	if err != nil {
		return Config{}, err
	}
	return ConfigFromSpec(spec)
}

func positiveOr(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

// newCatalog registers the built-ins plus every scripted ability of cfg.
func newCatalog(cfg Config) (*ability.Catalog, error) {
	c := ability.NewCatalog()
	if err := ability.RegisterCore(c); err != nil {
		return nil, err
	}
	for _, s := range cfg.Scripts {
		d, err := s.Descriptor()
		if err != nil {
			return nil, err
		}
		if err := c.Register(d); err != nil {
			return nil, fmt.Errorf("sim: register script %q: %w", s.ID, err)
		}
	}
	return c, nil
}
