package sink

import (
	"encoding/json"

	"github.com/matzehuels/stenoboard/pkg/colors"
	"github.com/matzehuels/stenoboard/pkg/scene"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	system string
	indent bool
}

// WithJSONSystem records the steno system the frame was rendered for.
func WithJSONSystem(name string) JSONOption { return func(r *jsonRenderer) { r.system = name } }

// WithJSONIndent pretty-prints the output.
func WithJSONIndent() JSONOption { return func(r *jsonRenderer) { r.indent = true } }

type jsonOutput struct {
	Name       string      `json:"name"`
	System     string      `json:"system,omitempty"`
	Rect       jsonRect    `json:"rect"`
	Margin     float64     `json:"margin"`
	Background string      `json:"background"`
	Pressed    []string    `json:"pressed"`
	Keys       []jsonKey   `json:"keys"`
	Labels     []jsonLabel `json:"labels"`
}

type jsonRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonKey struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Bounds    jsonRect `json:"bounds"`
	Fill      string   `json:"fill,omitempty"`
	Stroke    string   `json:"stroke"`
	LineWidth float64  `json:"line_width"`
	Pressed   bool     `json:"pressed,omitempty"`
}

type jsonLabel struct {
	Key   string   `json:"key"`
	Text  string   `json:"text"`
	Box   jsonRect `json:"box"`
	Color string   `json:"color"`
	Font  string   `json:"font,omitempty"`
	Size  float64  `json:"size"`
}

// RenderJSON exports the scene geometry.
func RenderJSON(s *scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Name:       s.Name,
		System:     r.system,
		Rect:       toJSONRect(s.Rect.X, s.Rect.Y, s.Rect.W, s.Rect.H),
		Margin:     s.Margin,
		Background: colors.HexA(s.Background),
		Pressed:    s.Pressed(),
		Keys:       make([]jsonKey, 0, len(s.Items)),
		Labels:     make([]jsonLabel, 0, len(s.Labels)),
	}
	if out.Pressed == nil {
		out.Pressed = []string{}
	}
	for _, it := range s.Items {
		b := it.Bounds()
		k := jsonKey{
			Name:      it.Key,
			Path:      it.Path.SVG(),
			Bounds:    toJSONRect(b.X, b.Y, b.W, b.H),
			Stroke:    colors.HexA(it.Stroke),
			LineWidth: it.Pen.Width,
			Pressed:   it.Pressed,
		}
		if it.Fill != nil {
			k.Fill = colors.HexA(*it.Fill)
		}
		out.Keys = append(out.Keys, k)
	}
	for _, lb := range s.Labels {
		out.Labels = append(out.Labels, jsonLabel{
			Key:   lb.Key,
			Text:  lb.Text,
			Box:   toJSONRect(lb.Box.X, lb.Box.Y, lb.Box.W, lb.Box.H),
			Color: colors.HexA(lb.Color),
			Font:  lb.Font,
			Size:  lb.Size,
		})
	}

	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}

func toJSONRect(x, y, w, h float64) jsonRect {
	return jsonRect{X: x, Y: y, Width: w, Height: h}
}
