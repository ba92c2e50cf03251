package sink

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/fonts"
	"github.com/matzehuels/stenoboard/pkg/geom"
	"github.com/matzehuels/stenoboard/pkg/scene"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	width, height int
	scale         float64
}

// WithPNGSize sets the image size in pixels. The scene is letterboxed into
// it and the scale option is ignored.
func WithPNGSize(w, h int) PNGOption {
	return func(r *pngRenderer) { r.width, r.height = w, h }
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes s.
func RenderPNG(s *scene.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 || r.height <= 0 {
		if r.scale <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", r.scale)
		}
		r.width = int(math.Ceil(s.Rect.W * r.scale))
		r.height = int(math.Ceil(s.Rect.H * r.scale))
	}
	if r.width <= 0 || r.height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty png frame %dx%d", r.width, r.height)
	}

	dc := gg.NewContext(r.width, r.height)
	dc.SetColor(s.Background)
	dc.Clear()

	t := s.Fit(geom.Size{W: float64(r.width), H: float64(r.height)})
	for _, it := range s.Items {
		drawItem(dc, it, t)
	}
	for _, lb := range s.Labels {
		drawLabel(dc, lb, t)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

func drawItem(dc *gg.Context, it scene.Item, t geom.Transform) {
	tracePath(dc, it.Path.Transform(t))
	if it.Fill != nil {
		dc.SetColor(*it.Fill)
		dc.FillPreserve()
	}
	dc.SetColor(it.Stroke)
	dc.SetLineWidth(it.Pen.Width * t.Scale)
	dc.SetLineCap(lineCap(it.Pen.Cap))
	dc.SetLineJoin(lineJoin(it.Pen.Join))
	dc.Stroke()
}

func tracePath(dc *gg.Context, p geom.Path) {
	dc.NewSubPath()
	for _, seg := range p.Segments {
		switch seg.Op {
		case geom.MoveTo:
			dc.MoveTo(seg.Pts[0].X, seg.Pts[0].Y)
		case geom.LineTo:
			dc.LineTo(seg.Pts[0].X, seg.Pts[0].Y)
		case geom.CubeTo:
			dc.CubicTo(seg.Pts[0].X, seg.Pts[0].Y, seg.Pts[1].X, seg.Pts[1].Y, seg.Pts[2].X, seg.Pts[2].Y)
		case geom.Close:
			dc.ClosePath()
		}
	}
}

func drawLabel(dc *gg.Context, lb scene.Label, t geom.Transform) {
	face := fonts.Face(lb.Font, lb.Size*t.Scale)
	defer face.Close()
	dc.SetFontFace(face)
	dc.SetColor(lb.Color)
	c := t.Apply(lb.Box.Center())
	dc.DrawStringAnchored(lb.Text, c.X, c.Y, 0.5, 0.5)
}

func lineCap(name string) gg.LineCap {
	switch name {
	case "round":
		return gg.LineCapRound
	case "butt":
		return gg.LineCapButt
	}
	return gg.LineCapSquare
}

func lineJoin(name string) gg.LineJoin {
	if name == "round" {
		return gg.LineJoinRound
	}
	return gg.LineJoinBevel
}
