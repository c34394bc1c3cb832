package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/jamble/geom"
)

const (
	TuningFile = "tuning.yaml"
	CourseFile = "course.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// DecodeSpec re-decodes a loosely typed YAML value into T.
func DecodeSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TuningSpec struct {
	World     WorldSpec     `yaml:"world"`
	Player    PlayerSpec    `yaml:"player"`
	Run       RunSpec       `yaml:"run"`
	Abilities AbilitiesSpec `yaml:"abilities"`
}

func LoadTuningSpec() (*TuningSpec, error) {
	spec, err := LoadSpec[TuningSpec](TuningFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type WorldSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type GravitySpec struct {
	Up   float64 `yaml:"up"`
	Mid  float64 `yaml:"mid"`
	Down float64 `yaml:"down"`
}

type HoverSpec struct {
	LiftSpeed float64 `yaml:"lift_speed"`
	FallSpeed float64 `yaml:"fall_speed"`
}

type CollisionSpec struct {
	Shape   string  `yaml:"shape"`
	ScaleX  float64 `yaml:"scale_x"`
	ScaleY  float64 `yaml:"scale_y"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
}

func (c CollisionSpec) GeomConfig() geom.Config {
	return geom.Config{
		Shape:   geom.ParseShapeKind(c.Shape),
		ScaleX:  c.ScaleX,
		ScaleY:  c.ScaleY,
		OffsetX: c.OffsetX,
		OffsetY: c.OffsetY,
	}.Sanitized()
}

type SquashSpec struct {
	Enabled        bool    `yaml:"enabled"`
	StretchFactor  float64 `yaml:"stretch_factor"`
	SquashFactor   float64 `yaml:"squash_factor"`
	LandScaleX     float64 `yaml:"land_scale_x"`
	LandScaleY     float64 `yaml:"land_scale_y"`
	LandSquashMs   float64 `yaml:"land_squash_ms"`
	LandEaseMs     float64 `yaml:"land_ease_ms"`
	AirSmoothingMs float64 `yaml:"air_smoothing_ms"`
}

type PlayerSpec struct {
	Width          float64       `yaml:"width"`
	Height         float64       `yaml:"height"`
	StartOffset    float64       `yaml:"start_offset"`
	Speed          float64       `yaml:"speed"`
	JumpStrength   float64       `yaml:"jump_strength"`
	DashDurationMs float64       `yaml:"dash_duration_ms"`
	Gravity        GravitySpec   `yaml:"gravity"`
	Hover          HoverSpec     `yaml:"hover"`
	Collision      CollisionSpec `yaml:"collision"`
	Squash         SquashSpec    `yaml:"squash"`
	Color          YAMLColor     `yaml:"color"`
}

type RunSpec struct {
	Mode                string  `yaml:"mode"`
	Laps                float64 `yaml:"laps"`
	StartFreezeMs       float64 `yaml:"start_freeze_ms"`
	DeathFreezeMs       float64 `yaml:"death_freeze_ms"`
	ShowResetDelayMs    float64 `yaml:"show_reset_delay_ms"`
	DeathWiggleDistance float64 `yaml:"death_wiggle_distance"`
}

type AbilitiesSpec struct {
	Limits  map[string]int            `yaml:"limits"`
	Loadout []string                  `yaml:"loadout"`
	Config  map[string]map[string]any `yaml:"config"`
	Scripts []ScriptSpec              `yaml:"scripts"`
}

type ScriptSpec struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	Slot          string         `yaml:"slot"`
	Priority      int            `yaml:"priority"`
	Prerequisites []string       `yaml:"prerequisites"`
	Excludes      []string       `yaml:"excludes"`
	Path          string         `yaml:"path"`
	Defaults      map[string]any `yaml:"defaults"`
}

type CourseSpec struct {
	Name      string         `yaml:"name"`
	Obstacles []ObstacleSpec `yaml:"obstacles"`
}

func LoadCourseSpec() (*CourseSpec, error) {
	spec, err := LoadSpec[CourseSpec](CourseFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// ObstacleSpec places one level element. X is the left edge; Y is the gap
// between the element's bottom and the floor (ceiling elements ignore it).
type ObstacleSpec struct {
	Name      string        `yaml:"name"`
	Kind      string        `yaml:"kind"`
	X         float64       `yaml:"x"`
	Y         float64       `yaml:"y"`
	Width     float64       `yaml:"width"`
	Height    float64       `yaml:"height"`
	Deadly    *bool         `yaml:"deadly"`
	Collision CollisionSpec `yaml:"collision"`
	Color     YAMLColor     `yaml:"color"`
	Config    any           `yaml:"config"`
}

// PatrolSpec is the kind specific config of a bird.
type PatrolSpec struct {
	Speed     *float64 `yaml:"speed"`
	Direction int      `yaml:"direction"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
