package component

import "github.com/milk9111/jamble/geom"

// Transform places an entity in screen space: X/Y is the top-left corner and
// W/H the drawn size.
type Transform struct {
	X float64
	Y float64
	W float64
	H float64
}

func (t Transform) Bounds() geom.Rect {
	return geom.NewRect(t.X, t.Y, t.W, t.H)
}

func (t Transform) Size() geom.Size {
	return geom.Size{W: t.W, H: t.H}
}

var TransformComponent = NewComponent[Transform]("transform")
