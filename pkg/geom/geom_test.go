package geom

import "testing"

func TestRectUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"null left", Rect{}, Rect{1, 2, 3, 4}, Rect{1, 2, 3, 4}},
		{"null right", Rect{1, 2, 3, 4}, Rect{}, Rect{1, 2, 3, 4}},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{20, 20, 5, 5}, Rect{0, 0, 25, 25}},
		{"contained", Rect{0, 0, 10, 10}, Rect{2, 2, 2, 2}, Rect{0, 0, 10, 10}},
		{"negative origin", Rect{-5, -5, 1, 1}, Rect{0, 0, 1, 1}, Rect{-5, -5, 6, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Union(tt.b); got != tt.want {
				t.Errorf("Union() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectInsetAndCenter(t *testing.T) {
	r := Rect{10, 10, 20, 30}.Inset(5)
	if r != (Rect{5, 5, 30, 40}) {
		t.Errorf("Inset(5) = %+v", r)
	}
	if c := r.Center(); c != (Point{20, 25}) {
		t.Errorf("Center() = %+v", c)
	}
	moved := Rect{0, 0, 4, 2}.MoveCenter(Point{10, 10})
	if moved != (Rect{8, 9, 4, 2}) {
		t.Errorf("MoveCenter() = %+v", moved)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		name     string
		src      Rect
		viewport Size
		want     Transform
	}{
		{"same size", Rect{0, 0, 100, 50}, Size{100, 50}, Transform{Scale: 1}},
		{"letterbox vertical", Rect{0, 0, 100, 50}, Size{200, 200}, Transform{Scale: 2, Dx: 0, Dy: 50}},
		{"letterbox horizontal", Rect{0, 0, 100, 50}, Size{100, 100}, Transform{Scale: 1, Dx: 0, Dy: 25}},
		{"pillarbox", Rect{0, 0, 50, 100}, Size{200, 100}, Transform{Scale: 1, Dx: 75, Dy: 0}},
		{"offset origin", Rect{-5, -5, 10, 10}, Size{20, 20}, Transform{Scale: 2, Dx: 10, Dy: 10}},
		{"empty src", Rect{}, Size{20, 20}, Identity},
		{"empty viewport", Rect{0, 0, 1, 1}, Size{}, Identity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fit(tt.src, tt.viewport); got != tt.want {
				t.Errorf("Fit() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFitPreservesAspectRatio(t *testing.T) {
	src := Rect{0, 0, 300, 120}
	tr := Fit(src, Size{640, 480})
	out := tr.ApplyRect(src)
	if ratio := out.W / out.H; !near(ratio, 2.5) {
		t.Errorf("aspect ratio = %v, want 2.5", ratio)
	}
	if out.X < -eps || out.Y < -eps || out.Right() > 640+eps || out.Bottom() > 480+eps {
		t.Errorf("fitted rect %+v escapes the viewport", out)
	}
}

func TestPathSVG(t *testing.T) {
	var p Path
	p.AddRect(Rect{0, 0, 1.5, 2})
	if got, want := p.SVG(), "M0,0 L1.5,0 L1.5,2 L0,2 Z"; got != want {
		t.Errorf("SVG() = %q, want %q", got, want)
	}
}

func TestPathEllipseBounds(t *testing.T) {
	var p Path
	p.AddEllipse(Rect{10, 20, 30, 10})
	if got := p.Bounds(); !rectNear(got, Rect{10, 20, 30, 10}) {
		t.Errorf("ellipse Bounds() = %+v", got)
	}
}

func TestPathTransform(t *testing.T) {
	var p Path
	p.AddRect(Rect{0, 0, 10, 10})
	got := p.Transform(Transform{Scale: 2, Dx: 1, Dy: 1}).Bounds()
	if got != (Rect{1, 1, 20, 20}) {
		t.Errorf("transformed Bounds() = %+v", got)
	}
}
