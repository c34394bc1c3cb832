package course

import (
	"github.com/milk9111/jamble/ecs"
	"github.com/milk9111/jamble/ecs/component"
)

// PatrolSystem moves patrolling obstacles back and forth between their
// bounds, bouncing at either end.
type PatrolSystem struct{}

func NewPatrolSystem() *PatrolSystem {
	return &PatrolSystem{}
}

func (s *PatrolSystem) Update(w *ecs.World, dtSec float64) {
	if w == nil || dtSec <= 0 {
		return
	}

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.PatrolComponent.Kind(), func(_ ecs.Entity, t *component.Transform, p *component.Patrol) {
		if p.MaxX <= p.MinX {
			return
		}
		next := t.X + float64(p.Direction)*p.Speed*dtSec
		switch {
		case next <= p.MinX:
			t.X = p.MinX
			p.Direction = 1
		case next >= p.MaxX:
			t.X = p.MaxX
			p.Direction = -1
		default:
			t.X = next
		}
	})
}
