package geom

import "math"

// Point is a position in pixel space.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Size is a width and height in pixel space.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
// The zero Rect is the null rect at the origin.
type Rect struct {
	X, Y, W, H float64
}

// RectFromPoints returns the rect spanning min and max.
func RectFromPoints(min, max Point) Rect {
	return Rect{X: min.X, Y: min.Y, W: max.X - min.X, H: max.Y - min.Y}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point of r.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// IsEmpty reports whether r has no area.
func (r Rect) IsEmpty() bool { return r.W <= 0 || r.H <= 0 }

// IsNull reports whether r is the zero rect.
func (r Rect) IsNull() bool { return r == Rect{} }

// Union returns the smallest rect containing r and s. A null rect is the
// identity.
func (r Rect) Union(s Rect) Rect {
	if r.IsNull() {
		return s
	}
	if s.IsNull() {
		return r
	}
	minX := math.Min(r.Left(), s.Left())
	minY := math.Min(r.Top(), s.Top())
	maxX := math.Max(r.Right(), s.Right())
	maxY := math.Max(r.Bottom(), s.Bottom())
	return RectFromPoints(Point{minX, minY}, Point{maxX, maxY})
}

// Inset grows r by m on every side (shrinks it for negative m).
func (r Rect) Inset(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}

// MoveCenter returns r translated so its center is c.
func (r Rect) MoveCenter(c Point) Rect {
	return Rect{X: c.X - r.W/2, Y: c.Y - r.H/2, W: r.W, H: r.H}
}

// Transform is a uniform scale followed by a translation.
type Transform struct {
	Scale  float64
	Dx, Dy float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Transform{Scale: 1}

// Apply maps p through t.
func (t Transform) Apply(p Point) Point {
	return Point{p.X*t.Scale + t.Dx, p.Y*t.Scale + t.Dy}
}

// ApplyRect maps r through t.
func (t Transform) ApplyRect(r Rect) Rect {
	o := t.Apply(Point{r.X, r.Y})
	return Rect{X: o.X, Y: o.Y, W: r.W * t.Scale, H: r.H * t.Scale}
}

// Fit returns the transform that scales src uniformly to fit inside a
// viewport of the given size and centers it, leaving letterbox bands on the
// axis with spare room. Degenerate inputs yield [Identity].
func Fit(src Rect, viewport Size) Transform {
	if src.IsEmpty() || viewport.W <= 0 || viewport.H <= 0 {
		return Identity
	}
	s := math.Min(viewport.W/src.W, viewport.H/src.H)
	return Transform{
		Scale: s,
		Dx:    (viewport.W-src.W*s)/2 - src.X*s,
		Dy:    (viewport.H-src.H*s)/2 - src.Y*s,
	}
}
