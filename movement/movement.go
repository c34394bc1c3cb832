package movement

import (
	"github.com/milk9111/jamble/ability"
	"github.com/milk9111/jamble/body"
)

// Equipped reports whether an ability is currently equipped.
type Equipped interface {
	IsEquipped(id string) bool
}

// Impulse is a timed horizontal push, in px/s along the run direction.
type Impulse struct {
	Speed       float64
	RemainingMs float64
}

// BoundaryEvent reports a world edge arrival. Align snaps the body exactly
// onto the edge; callers decide whether to apply it.
type BoundaryEvent struct {
	Hit          bool
	NewDirection int
	Align        func()
}

// System advances the body horizontally.
type System struct {
	baseSpeed float64
	impulses  []Impulse
}

func New(baseSpeed float64) *System {
	return &System{baseSpeed: max(0, baseSpeed)}
}

func (s *System) BaseSpeed() float64 { return s.baseSpeed }

func (s *System) SetBaseSpeed(v float64) { s.baseSpeed = max(0, v) }

func (s *System) AddImpulse(speed, durationMs float64) {
	s.impulses = append(s.impulses, Impulse{Speed: speed, RemainingMs: max(0, durationMs)})
}

func (s *System) ClearImpulses() { s.impulses = s.impulses[:0] }

func (s *System) Impulses() []Impulse {
	out := make([]Impulse, len(s.impulses))
	copy(out, s.impulses)
	return out
}

// Tick moves b along direction (+1 right, -1 left) and reports edge arrival.
// A frozen body does not move and never arrives.
func (s *System) Tick(deltaMs, deltaSec float64, b *body.Body, direction int, abilities Equipped) BoundaryEvent {
	if b.Frozen() {
		return BoundaryEvent{}
	}
	dir := float64(direction)

	if abilities != nil && abilities.IsEquipped(ability.IDMove) {
		b.MoveX(s.baseSpeed * deltaSec * dir)
	}
	s.applyImpulses(deltaMs, deltaSec, dir, b)

	return s.checkBoundaries(b, direction)
}

func (s *System) applyImpulses(deltaMs, deltaSec, dir float64, b *body.Body) {
	if len(s.impulses) == 0 {
		return
	}
	total := 0.0
	for _, imp := range s.impulses {
		total += max(0, imp.Speed)
	}
	if total > 0 {
		b.MoveX(total * deltaSec * dir)
	}

	live := s.impulses[:0]
	for _, imp := range s.impulses {
		imp.RemainingMs -= deltaMs
		if imp.RemainingMs > 0 {
			live = append(live, imp)
		}
	}
	s.impulses = live
}

func (s *System) checkBoundaries(b *body.Body, direction int) BoundaryEvent {
	cfg := b.Config()
	switch {
	case direction > 0:
		rightEdge := cfg.WorldWidth - cfg.StartOffset
		if b.Right() >= rightEdge {
			return BoundaryEvent{
				Hit:          true,
				NewDirection: -1,
				Align:        func() { b.SetX(rightEdge - b.HalfWidth()) },
			}
		}
	case direction < 0:
		leftEdge := cfg.StartOffset
		if b.X-b.HalfWidth() <= leftEdge {
			return BoundaryEvent{
				Hit:          true,
				NewDirection: 1,
				Align:        func() { b.SetX(leftEdge + b.HalfWidth()) },
			}
		}
	}
	return BoundaryEvent{}
}
