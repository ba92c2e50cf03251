package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/matzehuels/stenoboard/pkg/colors"
	"github.com/matzehuels/stenoboard/pkg/fonts"
	"github.com/matzehuels/stenoboard/pkg/scene"
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	keyIDs        bool
}

// WithSize sets the SVG viewport size. The scene is letterboxed into it.
func WithSize(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = w, h }
}

// WithKeyIDs tags each key outline with an id derived from its name.
func WithKeyIDs() SVGOption { return func(r *svgRenderer) { r.keyIDs = true } }

// RenderSVG draws s as a standalone SVG document.
func RenderSVG(s *scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if r.width <= 0 || r.height <= 0 {
		r.width, r.height = s.Rect.W, s.Rect.H
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s" width="%s" height="%s" preserveAspectRatio="xMidYMid meet">`+"\n",
		num(s.Rect.X), num(s.Rect.Y), num(s.Rect.W), num(s.Rect.H), num(r.width), num(r.height))
	fmt.Fprintf(&buf, `  <title>%s</title>`+"\n", escapeXML(s.Name))
	renderBackground(&buf, s)

	for _, it := range s.Items {
		renderItem(&buf, it, r.keyIDs)
	}
	for _, lb := range s.Labels {
		renderLabel(&buf, lb)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderBackground covers far more than the viewBox so letterbox bands
// show the background too.
func renderBackground(buf *bytes.Buffer, s *scene.Scene) {
	ext := s.Rect.Inset(max(s.Rect.W, s.Rect.H, 1) * 4)
	fmt.Fprintf(buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"%s/>`+"\n",
		num(ext.X), num(ext.Y), num(ext.W), num(ext.H),
		colors.Hex(s.Background), opacityAttr("fill-opacity", s.Background.A))
}

func renderItem(buf *bytes.Buffer, it scene.Item, withID bool) {
	fill, fillOpacity := "none", ""
	if it.Fill != nil {
		fill, fillOpacity = colors.Hex(*it.Fill), opacityAttr("fill-opacity", it.Fill.A)
	}
	id := ""
	if withID {
		id = fmt.Sprintf(` id="key-%s"`, escapeXML(it.Key))
	}
	class := "key"
	if it.Pressed {
		class = "key pressed"
	}
	fmt.Fprintf(buf, `  <path%s class="%s" d="%s" fill="%s"%s stroke="%s"%s stroke-width="%s" stroke-linecap="%s" stroke-linejoin="%s"/>`+"\n",
		id, class, it.Path.SVG(), fill, fillOpacity,
		colors.Hex(it.Stroke), opacityAttr("stroke-opacity", it.Stroke.A),
		num(it.Pen.Width), it.Pen.Cap, it.Pen.Join)
}

func renderLabel(buf *bytes.Buffer, lb scene.Label) {
	c := lb.Box.Center()
	fmt.Fprintf(buf, `  <text x="%s" y="%s" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%s" fill="%s"%s>%s</text>`+"\n",
		num(c.X), num(c.Y), escapeXML(fonts.CSSFamily(lb.Font)), num(lb.Size),
		colors.Hex(lb.Color), opacityAttr("fill-opacity", lb.Color.A), escapeXML(lb.Text))
}

func opacityAttr(name string, a uint8) string {
	if a == 0xff {
		return ""
	}
	return fmt.Sprintf(` %s="%s"`, name, num(float64(a)/255))
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
