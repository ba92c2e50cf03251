package scene

import (
	"image/color"

	"github.com/matzehuels/stenoboard/pkg/geom"
)

// Line cap and join styles understood by sinks.
const (
	CapSquare = "square"
	JoinBevel = "bevel"
)

// Pen describes how an outline is stroked.
type Pen struct {
	Width float64
	Cap   string
	Join  string
}

// DefaultPen is the pen used for key outlines.
var DefaultPen = Pen{Width: 1, Cap: CapSquare, Join: JoinBevel}

// Item is one key outline.
type Item struct {
	Key     string
	Path    geom.Path
	Fill    *color.NRGBA // nil: outline only
	Stroke  color.NRGBA
	Pen     Pen
	Pressed bool
}

// Bounds returns the area the stroked outline covers: the path bounds
// grown by half the pen width.
func (it Item) Bounds() geom.Rect {
	return it.Path.Bounds().Inset(it.Pen.Width / 2)
}

// Label is a key's text. Box is the text extent plus the document margin,
// centered on the key outline.
type Label struct {
	Key   string
	Text  string
	Box   geom.Rect
	Color color.NRGBA
	Font  string
	Size  float64
}

// Scene is a complete frame.
type Scene struct {
	Name       string
	Items      []Item
	Labels     []Label
	Rect       geom.Rect
	Background color.NRGBA
	Margin     float64
}

// Fit returns the transform that places the scene rect in a viewport,
// preserving its aspect ratio.
func (s *Scene) Fit(viewport geom.Size) geom.Transform {
	return geom.Fit(s.Rect, viewport)
}

// Pressed returns the keys drawn as pressed, in paint order.
func (s *Scene) Pressed() []string {
	var out []string
	for _, it := range s.Items {
		if it.Pressed {
			out = append(out, it.Key)
		}
	}
	return out
}

// ContentRect returns the union of all item and label bounds without the
// margin. It is the null rect for an empty scene.
func (s *Scene) ContentRect() geom.Rect {
	var r geom.Rect
	for _, it := range s.Items {
		r = r.Union(it.Bounds())
	}
	for _, lb := range s.Labels {
		r = r.Union(lb.Box)
	}
	return r
}
