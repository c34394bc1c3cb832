package course

import (
	"fmt"
	"image/color"

	"github.com/milk9111/jamble/ecs"
	"github.com/milk9111/jamble/ecs/component"
	"github.com/milk9111/jamble/geom"
	"github.com/milk9111/jamble/prefabs"
)

const (
	minPatrolSpeed     = 5.0
	maxPatrolSpeed     = 400.0
	defaultPatrolSpeed = 40.0
)

// Def places one obstacle. X/Y is the top-left corner in screen space.
type Def struct {
	Name      string
	Kind      component.ObstacleKind
	X, Y      float64
	W, H      float64
	Deadly    bool
	Collision geom.Config
	Color     color.Color

	// birds only
	PatrolSpeed     float64
	PatrolDirection int
}

// Hit describes an obstacle overlapping a queried shape.
type Hit struct {
	Entity ecs.Entity
	Name   string
	Kind   component.ObstacleKind
	Deadly bool
}

// Obstacle is a render-ready view of one element.
type Obstacle struct {
	Entity ecs.Entity
	Name   string
	Kind   component.ObstacleKind
	Bounds geom.Rect
	Shape  geom.Shape
	Deadly bool
	Color  color.Color
}

// Course is the level layer: obstacle entities plus the systems moving them.
type Course struct {
	Name string

	worldWidth  float64
	worldHeight float64
	defs        []Def

	world     *ecs.World
	scheduler *ecs.Scheduler
}

func New(name string, worldWidth, worldHeight float64) *Course {
	c := &Course{
		Name:        name,
		worldWidth:  worldWidth,
		worldHeight: worldHeight,
		scheduler:   ecs.NewScheduler(NewPatrolSystem()),
	}
	c.world = ecs.NewWorld()
	return c
}

// FromSpec builds a course from its YAML description.
func FromSpec(spec *prefabs.CourseSpec, worldWidth, worldHeight float64) (*Course, error) {
	if spec == nil {
		return nil, fmt.Errorf("course: nil spec")
	}
	c := New(spec.Name, worldWidth, worldHeight)
	for i, o := range spec.Obstacles {
		def, err := defFromSpec(o, worldHeight)
		if err != nil {
			return nil, fmt.Errorf("course: obstacle %d (%s): %w", i, o.Name, err)
		}
		if _, err := c.Add(def); err != nil {
			return nil, fmt.Errorf("course: obstacle %d (%s): %w", i, o.Name, err)
		}
	}
	return c, nil
}

func defFromSpec(o prefabs.ObstacleSpec, worldHeight float64) (Def, error) {
	def := Def{
		Name:      o.Name,
		Kind:      component.ObstacleKind(o.Kind),
		X:         o.X,
		W:         max(0, o.Width),
		H:         max(0, o.Height),
		Deadly:    o.Deadly == nil || *o.Deadly,
		Collision: o.Collision.GeomConfig(),
		Color:     o.Color.Color,
	}
	switch def.Kind {
	case component.ObstacleTree:
		def.Y = worldHeight - def.H
	case component.ObstacleTreeCeiling:
		def.Y = 0
	case component.ObstacleBird:
		def.Y = worldHeight - def.H - max(0, o.Y)
		p, err := prefabs.DecodeSpec[prefabs.PatrolSpec](o.Config)
		if err != nil {
			return Def{}, fmt.Errorf("decode bird config: %w", err)
		}
		def.PatrolSpeed = defaultPatrolSpeed
		if p.Speed != nil {
			def.PatrolSpeed = *p.Speed
		}
		def.PatrolDirection = p.Direction
	default:
		return Def{}, fmt.Errorf("unknown obstacle kind %q", o.Kind)
	}
	return def, nil
}

// Add spawns an obstacle and remembers it so Reset can respawn it.
func (c *Course) Add(def Def) (ecs.Entity, error) {
	e, err := c.spawn(def)
	if err != nil {
		return 0, err
	}
	c.defs = append(c.defs, def)
	return e, nil
}

func (c *Course) spawn(def Def) (ecs.Entity, error) {
	e := ecs.CreateEntity(c.world)

	if err := ecs.Add(c.world, e, component.TransformComponent.Kind(), &component.Transform{
		X: def.X, Y: def.Y, W: def.W, H: def.H,
	}); err != nil {
		return 0, fmt.Errorf("add transform: %w", err)
	}

	if err := ecs.Add(c.world, e, component.ObstacleComponent.Kind(), &component.Obstacle{
		Name:      def.Name,
		Kind:      def.Kind,
		Deadly:    def.Deadly,
		Collision: def.Collision,
		Color:     def.Color,
	}); err != nil {
		return 0, fmt.Errorf("add obstacle: %w", err)
	}

	if def.Kind == component.ObstacleBird {
		dir := 1
		if def.PatrolDirection < 0 {
			dir = -1
		}
		if err := ecs.Add(c.world, e, component.PatrolComponent.Kind(), &component.Patrol{
			Speed:     max(minPatrolSpeed, min(maxPatrolSpeed, def.PatrolSpeed)),
			Direction: dir,
			MinX:      0,
			MaxX:      max(0, c.worldWidth-def.W),
		}); err != nil {
			return 0, fmt.Errorf("add patrol: %w", err)
		}
	}
	return e, nil
}

// Reset respawns every obstacle at its initial position.
func (c *Course) Reset() {
	c.world = ecs.NewWorld()
	for _, def := range c.defs {
		// defs were validated when first added
		_, _ = c.spawn(def)
	}
}

// Update runs the obstacle systems for deltaSec seconds.
func (c *Course) Update(deltaSec float64) {
	if deltaSec <= 0 {
		return
	}
	c.scheduler.Update(c.world, deltaSec)
}

func (c *Course) Len() int {
	return ecs.Count(c.world, component.ObstacleComponent.Kind())
}

// Collide returns every obstacle overlapping shape, in spawn order.
func (c *Course) Collide(shape geom.Shape) []Hit {
	var hits []Hit
	c.each(func(o Obstacle) {
		if !geom.MayIntersect(shape, o.Shape) || !geom.Intersects(shape, o.Shape) {
			return
		}
		hits = append(hits, Hit{Entity: o.Entity, Name: o.Name, Kind: o.Kind, Deadly: o.Deadly})
	})
	return hits
}

// FirstDeadly returns the first deadly obstacle overlapping shape.
func (c *Course) FirstDeadly(shape geom.Shape) (Hit, bool) {
	for _, h := range c.Collide(shape) {
		if h.Deadly {
			return h, true
		}
	}
	return Hit{}, false
}

// Obstacles lists every obstacle with its current bounds and collision shape.
func (c *Course) Obstacles() []Obstacle {
	var out []Obstacle
	c.each(func(o Obstacle) { out = append(out, o) })
	return out
}

func (c *Course) each(fn func(Obstacle)) {
	for _, e := range ecs.Entities(c.world) {
		t, ok := ecs.Get(c.world, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		ob, ok := ecs.Get(c.world, e, component.ObstacleComponent.Kind())
		if !ok {
			continue
		}
		fn(Obstacle{
			Entity: e,
			Name:   ob.Name,
			Kind:   ob.Kind,
			Bounds: t.Bounds(),
			Shape:  geom.ShapeFor(t.Bounds(), t.Size(), ob.Collision),
			Deadly: ob.Deadly,
			Color:  ob.Color,
		})
	}
}
