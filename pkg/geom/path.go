package geom

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Op identifies a path segment kind.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
	CubeTo
	Close
)

func (o Op) String() string {
	switch o {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case CubeTo:
		return "C"
	case Close:
		return "Z"
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

// Segment is one path command. LineTo and MoveTo use Pts[0]; CubeTo uses
// two control points and an end point; Close uses none.
type Segment struct {
	Op  Op
	Pts [3]Point
}

// Path is an ordered list of segments forming one or more closed subpaths.
type Path struct {
	Segments []Segment
}

// kappa is the control distance for a quarter-ellipse cubic approximation.
const kappa = 0.5522847498307936

func (p *Path) MoveTo(pt Point) { p.Segments = append(p.Segments, Segment{Op: MoveTo, Pts: [3]Point{pt}}) }
func (p *Path) LineTo(pt Point) { p.Segments = append(p.Segments, Segment{Op: LineTo, Pts: [3]Point{pt}}) }
func (p *Path) Close()          { p.Segments = append(p.Segments, Segment{Op: Close}) }

// CubeTo appends a cubic Bézier segment.
func (p *Path) CubeTo(c1, c2, end Point) {
	p.Segments = append(p.Segments, Segment{Op: CubeTo, Pts: [3]Point{c1, c2, end}})
}

// AddRect appends r as a closed clockwise subpath.
func (p *Path) AddRect(r Rect) {
	p.MoveTo(Point{r.Left(), r.Top()})
	p.LineTo(Point{r.Right(), r.Top()})
	p.LineTo(Point{r.Right(), r.Bottom()})
	p.LineTo(Point{r.Left(), r.Bottom()})
	p.Close()
}

// AddEllipse appends the ellipse inscribed in r as a closed subpath.
func (p *Path) AddEllipse(r Rect) {
	c := r.Center()
	rx, ry := r.W/2, r.H/2
	p.MoveTo(Point{r.Right(), c.Y})
	p.quarter(c, rx, ry, 0)
	p.quarter(c, rx, ry, 1)
	p.quarter(c, rx, ry, 2)
	p.quarter(c, rx, ry, 3)
	p.Close()
}

// quarter appends the q-th quarter arc (0 = +x to +y, clockwise in screen
// space) of the ellipse centered at c.
func (p *Path) quarter(c Point, rx, ry float64, q int) {
	a0 := float64(q) * math.Pi / 2
	a1 := a0 + math.Pi/2
	start := Point{c.X + rx*math.Cos(a0), c.Y + ry*math.Sin(a0)}
	end := Point{c.X + rx*math.Cos(a1), c.Y + ry*math.Sin(a1)}
	c1 := Point{start.X - kappa*rx*math.Sin(a0), start.Y + kappa*ry*math.Cos(a0)}
	c2 := Point{end.X + kappa*rx*math.Sin(a1), end.Y - kappa*ry*math.Cos(a1)}
	p.CubeTo(round(c1), round(c2), round(end))
}

// round snaps values within 1e-9 of an integer so cos/sin noise never
// leaks into the emitted path data.
func round(p Point) Point {
	snap := func(v float64) float64 {
		if r := math.Round(v); math.Abs(v-r) < 1e-9 {
			return r
		}
		return v
	}
	return Point{snap(p.X), snap(p.Y)}
}

// Bounds returns the bounding box of all points of the path, control points
// included. Key paths only use axis-aligned control polygons, so this is
// exact for them.
func (p Path) Bounds() Rect {
	first := true
	var minP, maxP Point
	visit := func(pt Point) {
		if first {
			minP, maxP, first = pt, pt, false
			return
		}
		minP.X, minP.Y = math.Min(minP.X, pt.X), math.Min(minP.Y, pt.Y)
		maxP.X, maxP.Y = math.Max(maxP.X, pt.X), math.Max(maxP.Y, pt.Y)
	}
	for _, s := range p.Segments {
		switch s.Op {
		case MoveTo, LineTo:
			visit(s.Pts[0])
		case CubeTo:
			visit(s.Pts[0])
			visit(s.Pts[1])
			visit(s.Pts[2])
		}
	}
	if first {
		return Rect{}
	}
	return RectFromPoints(minP, maxP)
}

// Transform returns a copy of p with every point mapped through t.
func (p Path) Transform(t Transform) Path {
	out := Path{Segments: make([]Segment, len(p.Segments))}
	for i, s := range p.Segments {
		out.Segments[i] = Segment{Op: s.Op}
		for j := range s.Pts {
			out.Segments[i].Pts[j] = t.Apply(s.Pts[j])
		}
	}
	return out
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool { return len(p.Segments) == 0 }

// SVG returns the path in SVG path-data syntax.
func (p Path) SVG() string {
	var b strings.Builder
	for i, s := range p.Segments {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s.Op.String())
		switch s.Op {
		case MoveTo, LineTo:
			writePoint(&b, s.Pts[0])
		case CubeTo:
			writePoint(&b, s.Pts[0])
			b.WriteByte(' ')
			writePoint(&b, s.Pts[1])
			b.WriteByte(' ')
			writePoint(&b, s.Pts[2])
		}
	}
	return b.String()
}

func writePoint(b *strings.Builder, pt Point) {
	b.WriteString(formatFloat(pt.X))
	b.WriteByte(',')
	b.WriteString(formatFloat(pt.Y))
}

// formatFloat writes v with at most three decimals, trailing zeros dropped.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
