package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Intersects reports whether two shapes overlap. Edges and tangent points do
// not count. Unsupported pairings report false.
func Intersects(a, b Shape) bool {
	switch {
	case a.Kind == ShapeRect && b.Kind == ShapeRect:
		return rectRect(a.Rect, b.Rect)
	case a.Kind == ShapeCircle && b.Kind == ShapeCircle:
		return circleCircle(a.Circle, b.Circle)
	case a.Kind == ShapeRect && b.Kind == ShapeCircle:
		return rectCircle(a.Rect, b.Circle)
	case a.Kind == ShapeCircle && b.Kind == ShapeRect:
		return rectCircle(b.Rect, a.Circle)
	}
	return false
}

func rectRect(a, b Rect) bool {
	return a.Left < b.Right && a.Right > b.Left && a.Bottom > b.Top && a.Top < b.Bottom
}

func circleCircle(a, b Circle) bool {
	if a.Radius <= 0 || b.Radius <= 0 {
		return false
	}
	return a.Center.Distance(b.Center) < a.Radius+b.Radius
}

func rectCircle(r Rect, c Circle) bool {
	if c.Radius <= 0 {
		return false
	}
	closest := cp.Vector{
		X: math.Max(r.Left, math.Min(c.Center.X, r.Right)),
		Y: math.Max(r.Top, math.Min(c.Center.Y, r.Bottom)),
	}
	return c.Center.Distance(closest) < c.Radius
}

// MayIntersect is the broad-phase check: inclusive bounding-box overlap.
func MayIntersect(a, b Shape) bool {
	if a.Kind == ShapeNone || b.Kind == ShapeNone {
		return false
	}
	return a.Bounds().Intersects(b.Bounds())
}
