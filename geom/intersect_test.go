package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntersectsRectRect(t *testing.T) {
	base := RectShape(NewRect(0, 0, 10, 10))
	cases := []struct {
		name  string
		other Shape
		want  bool
	}{
		{"overlap", RectShape(NewRect(5, 5, 10, 10)), true},
		{"touching_right_edge", RectShape(NewRect(10, 0, 10, 10)), false},
		{"touching_bottom_edge", RectShape(NewRect(0, 10, 10, 10)), false},
		{"contained", RectShape(NewRect(2, 2, 2, 2)), true},
		{"apart", RectShape(NewRect(20, 20, 1, 1)), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Intersects(base, c.other))
			assert.Equal(t, c.want, Intersects(c.other, base))
		})
	}
}

func TestIntersectsCircleCircle(t *testing.T) {
	a := CircleShape(0, 0, 5)
	cases := []struct {
		name  string
		other Shape
		want  bool
	}{
		{"overlap", CircleShape(6, 0, 2), true},
		{"tangent", CircleShape(7, 0, 2), false},
		{"apart", CircleShape(30, 30, 2), false},
		{"zero_radius", CircleShape(0, 0, 0), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Intersects(a, c.other))
		})
	}
}

func TestIntersectsRectCircle(t *testing.T) {
	rect := RectShape(Rect{Left: 10, Top: 10, Right: 20, Bottom: 20})

	t.Run("closest_corner_out_of_reach", func(t *testing.T) {
		assert.False(t, Intersects(CircleShape(0, 0, 5), rect))
		assert.False(t, Intersects(rect, CircleShape(0, 0, 5)))
	})
	t.Run("center_on_corner", func(t *testing.T) {
		for _, r := range []float64{0.001, 1, 5} {
			assert.True(t, Intersects(CircleShape(10, 10, r), rect))
		}
	})
	t.Run("tangent_to_edge", func(t *testing.T) {
		assert.False(t, Intersects(CircleShape(5, 15, 5), rect))
	})
	t.Run("center_inside", func(t *testing.T) {
		assert.True(t, Intersects(CircleShape(15, 15, 1), rect))
	})
}

func TestIntersectsUnsupported(t *testing.T) {
	assert.False(t, Intersects(Shape{}, RectShape(NewRect(0, 0, 1, 1))))
	assert.False(t, Intersects(CircleShape(0, 0, 1), Shape{Kind: ShapeKind(42)}))
}

func TestMayIntersect(t *testing.T) {
	a := RectShape(NewRect(0, 0, 10, 10))
	assert.True(t, MayIntersect(a, RectShape(NewRect(10, 0, 5, 5))))
	assert.True(t, MayIntersect(a, CircleShape(12, 5, 3)))
	assert.False(t, MayIntersect(a, CircleShape(30, 5, 3)))
	assert.False(t, MayIntersect(a, Shape{}))
}

func TestShapeFor(t *testing.T) {
	bounds := NewRect(100, 50, 20, 20)

	t.Run("rect_centered", func(t *testing.T) {
		s := ShapeFor(bounds, Size{W: 20, H: 20}, Config{Shape: ShapeRect, ScaleX: 0.8, ScaleY: 0.5})
		require.Equal(t, ShapeRect, s.Kind)
		assert.InDelta(t, 102, s.Rect.Left, 1e-9)
		assert.InDelta(t, 55, s.Rect.Top, 1e-9)
		assert.InDelta(t, 16, s.Rect.Width(), 1e-9)
		assert.InDelta(t, 10, s.Rect.Height(), 1e-9)
	})
	t.Run("rect_offset", func(t *testing.T) {
		s := ShapeFor(bounds, Size{W: 20, H: 20}, Config{Shape: ShapeRect, ScaleX: 1, ScaleY: 1, OffsetX: 3, OffsetY: -2})
		assert.Equal(t, NewRect(103, 48, 20, 20), s.Rect)
	})
	t.Run("circle_uses_smaller_side", func(t *testing.T) {
		s := ShapeFor(bounds, Size{W: 20, H: 10}, Config{Shape: ShapeCircle, ScaleX: 0.6})
		require.Equal(t, ShapeCircle, s.Kind)
		assert.InDelta(t, 110, s.Circle.Center.X, 1e-9)
		assert.InDelta(t, 60, s.Circle.Center.Y, 1e-9)
		assert.InDelta(t, 3, s.Circle.Radius, 1e-9)
	})
	t.Run("bad_scale_falls_back_to_full_size", func(t *testing.T) {
		s := ShapeFor(bounds, Size{W: 20, H: 20}, Config{})
		assert.Equal(t, bounds, s.Rect)
	})
}
