package geom

import "github.com/jakecoffman/cp"

// ShapeKind tags which variant of Shape is populated.
type ShapeKind int

const (
	ShapeNone ShapeKind = iota
	ShapeRect
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeRect:
		return "rect"
	case ShapeCircle:
		return "circle"
	}
	return "none"
}

// ParseShapeKind maps a config string onto a kind. Anything unrecognised is a rect.
func ParseShapeKind(s string) ShapeKind {
	if s == "circle" {
		return ShapeCircle
	}
	return ShapeRect
}

// Rect is an axis-aligned rectangle in screen space (y grows downward).
type Rect struct {
	Left, Top, Right, Bottom float64
}

func NewRect(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

func (r Rect) Center() cp.Vector {
	return cp.Vector{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

type Circle struct {
	Center cp.Vector
	Radius float64
}

// Shape is a tagged union of Rect and Circle. It is rebuilt every frame from
// the owner's transform and never cached.
type Shape struct {
	Kind   ShapeKind
	Rect   Rect
	Circle Circle
}

func RectShape(r Rect) Shape {
	return Shape{Kind: ShapeRect, Rect: r}
}

func CircleShape(cx, cy, radius float64) Shape {
	return Shape{Kind: ShapeCircle, Circle: Circle{Center: cp.Vector{X: cx, Y: cy}, Radius: radius}}
}

// Bounds returns the shape's bounding box for broad-phase filtering. The
// chipmunk box is used in screen space, so B holds the top edge and T the bottom.
func (s Shape) Bounds() cp.BB {
	switch s.Kind {
	case ShapeRect:
		return cp.BB{L: s.Rect.Left, B: s.Rect.Top, R: s.Rect.Right, T: s.Rect.Bottom}
	case ShapeCircle:
		c, r := s.Circle.Center, s.Circle.Radius
		return cp.BB{L: c.X - r, B: c.Y - r, R: c.X + r, T: c.Y + r}
	}
	return cp.BB{}
}

// Size is a logical width/height pair, independent of how the owner is drawn.
type Size struct {
	W, H float64
}

// Config sizes a collision shape relative to an owner's logical size.
// ScaleY is ignored for circles; the radius is min(W, H)/2 * ScaleX.
type Config struct {
	Shape   ShapeKind
	ScaleX  float64
	ScaleY  float64
	OffsetX float64
	OffsetY float64
}

// DefaultConfig is the forgiving 80% box the player uses.
func DefaultConfig() Config {
	return Config{Shape: ShapeRect, ScaleX: 0.8, ScaleY: 0.8}
}

// Sanitized replaces non-positive scales with 1.
func (c Config) Sanitized() Config {
	if c.ScaleX <= 0 {
		c.ScaleX = 1
	}
	if c.ScaleY <= 0 {
		c.ScaleY = 1
	}
	if c.Shape != ShapeCircle {
		c.Shape = ShapeRect
	}
	return c
}

// ShapeFor builds a collision shape positioned from bounds (where the owner is
// actually drawn) but sized from the owner's logical size and cfg.
func ShapeFor(bounds Rect, size Size, cfg Config) Shape {
	cfg = cfg.Sanitized()
	if cfg.Shape == ShapeCircle {
		c := bounds.Center()
		radius := min(size.W, size.H) / 2 * cfg.ScaleX
		return CircleShape(c.X+cfg.OffsetX, c.Y+cfg.OffsetY, radius)
	}
	w := size.W * cfg.ScaleX
	h := size.H * cfg.ScaleY
	ox := (bounds.Width()-w)/2 + cfg.OffsetX
	oy := (bounds.Height()-h)/2 + cfg.OffsetY
	return RectShape(NewRect(bounds.Left+ox, bounds.Top+oy, w, h))
}
