package body

import "github.com/milk9111/jamble/geom"

// SquashConfig tunes the landing squash and in-air stretch pulses.
type SquashConfig struct {
	Enabled        bool
	StretchFactor  float64
	SquashFactor   float64
	LandScaleX     float64
	LandScaleY     float64
	LandSquashMs   float64
	LandEaseMs     float64
	AirSmoothingMs float64
}

// Config is the immutable tuning a Body is built with. Velocities are in
// pixels per 60 Hz frame, gravity in pixels per frame squared, hover speeds in
// pixels per second.
type Config struct {
	GravityUp   float64
	GravityMid  float64
	GravityDown float64

	JumpStrength   float64
	DashDurationMs float64

	HoverLiftSpeed float64
	HoverFallSpeed float64

	WorldWidth  float64
	WorldHeight float64
	StartOffset float64

	Width  float64
	Height float64

	Collision geom.Config
	Squash    SquashConfig
}

func DefaultConfig() Config {
	return Config{
		GravityUp:      0.32,
		GravityMid:     0.4,
		GravityDown:    0.65,
		JumpStrength:   7,
		DashDurationMs: 220,
		HoverLiftSpeed: 200,
		HoverFallSpeed: 300,
		WorldWidth:     500,
		WorldHeight:    100,
		StartOffset:    10,
		Width:          20,
		Height:         20,
		Collision:      geom.DefaultConfig(),
		Squash: SquashConfig{
			Enabled:        true,
			StretchFactor:  0.05,
			SquashFactor:   0.02,
			LandScaleX:     1.4,
			LandScaleY:     0.6,
			LandSquashMs:   150,
			LandEaseMs:     100,
			AirSmoothingMs: 100,
		},
	}
}

// Sanitized clamps out-of-range values instead of rejecting them.
func (c Config) Sanitized() Config {
	c.GravityUp = max(0, c.GravityUp)
	c.GravityMid = max(0, c.GravityMid)
	c.GravityDown = max(0, c.GravityDown)
	c.DashDurationMs = max(0, c.DashDurationMs)
	c.HoverLiftSpeed = max(0, c.HoverLiftSpeed)
	c.HoverFallSpeed = max(0, c.HoverFallSpeed)
	c.Width = max(0, c.Width)
	c.Height = max(0, c.Height)
	c.WorldWidth = max(c.Width, c.WorldWidth)
	c.WorldHeight = max(c.Height, c.WorldHeight)
	c.StartOffset = max(0, c.StartOffset)
	c.Squash.LandSquashMs = max(0, c.Squash.LandSquashMs)
	c.Squash.LandEaseMs = max(0, c.Squash.LandEaseMs)
	c.Squash.AirSmoothingMs = max(0, c.Squash.AirSmoothingMs)
	c.Collision = c.Collision.Sanitized()
	return c
}
