package geom

import "math"

// EllipseHeight returns the height of the rounded caps for a key box:
// the smaller of its width and half its height.
func EllipseHeight(size Size) float64 {
	return math.Min(size.W, size.H/2)
}

// KeyPath builds the silhouette of a key whose pixel box starts at pos and
// spans size.
//
// A flat key is exactly its box. A rounded end replaces e/2 of the box at
// that end with a half ellipse of height e (see [EllipseHeight]) spanning
// the full key width, so the outline is the union of the shortened
// rectangle and an ellipse centered on its edge. The overall extent never
// exceeds the box. When e is zero the ellipse is empty and the key stays
// rectangular.
func KeyPath(pos Point, size Size, roundTop, roundBottom bool) Path {
	e := EllipseHeight(size)
	if e <= 0 {
		roundTop, roundBottom = false, false
	}

	top := pos.Y
	height := size.H
	if roundTop {
		top += e / 2
	}
	switch {
	case roundTop && roundBottom:
		height -= e
	case roundTop || roundBottom:
		height -= e / 2
	}

	left, right := pos.X, pos.X+size.W
	bottom := top + height
	rx, ry := size.W/2, e/2

	var p Path
	p.MoveTo(Point{left, top})
	if roundTop {
		c := Point{left + rx, top}
		p.quarter(c, rx, ry, 2)
		p.quarter(c, rx, ry, 3)
	} else {
		p.LineTo(Point{right, top})
	}
	p.LineTo(Point{right, bottom})
	if roundBottom {
		c := Point{left + rx, bottom}
		p.quarter(c, rx, ry, 0)
		p.quarter(c, rx, ry, 1)
	} else {
		p.LineTo(Point{left, bottom})
	}
	p.Close()
	return p
}
