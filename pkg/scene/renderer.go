package scene

import (
	"image/color"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stenoboard/pkg/colors"
	"github.com/matzehuels/stenoboard/pkg/fonts"
	"github.com/matzehuels/stenoboard/pkg/geom"
	"github.com/matzehuels/stenoboard/pkg/layout"
)

// KeySet reports whether a key is pressed.
type KeySet interface {
	Has(key string) bool
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithLogger sets the logger used for render diagnostics.
func WithLogger(l *log.Logger) Option { return func(r *Renderer) { r.logger = l } }

// WithFontSize sets the label font size in scene units.
func WithFontSize(size float64) Option { return func(r *Renderer) { r.fontSize = size } }

// WithPen sets the pen used for key outlines.
func WithPen(p Pen) Option { return func(r *Renderer) { r.pen = p } }

// Renderer builds scenes and owns the current one.
type Renderer struct {
	mu       sync.Mutex
	logger   *log.Logger
	fontSize float64
	pen      Pen
	current  *Scene
}

// NewRenderer returns a renderer whose current scene is empty.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{fontSize: fonts.DefaultSize, pen: DefaultPen}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	r.current = &Scene{Background: colors.White}
	return r
}

// Render replaces the current scene with one built from l and active.
// A nil active set means no key is pressed. The same inputs always yield
// the same scene.
func (r *Renderer) Render(l *layout.Layout, active KeySet) *Scene {
	start := time.Now()
	s := r.build(l, active)

	r.mu.Lock()
	r.current = s
	r.mu.Unlock()

	r.logger.Debug("rendered scene", "layout", l.Name, "keys", len(s.Items),
		"active", len(s.Pressed()), "elapsed", time.Since(start))
	return s
}

// Scene returns the current scene.
func (r *Renderer) Scene() *Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Renderer) build(l *layout.Layout, active KeySet) *Scene {
	s := &Scene{
		Name:       l.Name,
		Items:      make([]Item, 0, len(l.Keys)),
		Background: colors.ParseOr(l.BackgroundColor, colors.White),
		Margin:     l.Margin,
	}
	face := fonts.Face(l.Font, r.fontSize)
	defer face.Close()

	for _, k := range l.Keys {
		pressed := active != nil && active.Has(k.Name)
		path := l.KeyPath(k)
		s.Items = append(s.Items, Item{
			Key:     k.Name,
			Path:    path,
			Fill:    fill(k, pressed),
			Stroke:  colors.ParseOr(k.StrokeColor, colors.Black),
			Pen:     r.pen,
			Pressed: pressed,
		})

		if k.Label == "" {
			continue
		}
		w, h := fonts.LabelBox(face, k.Label)
		s.Labels = append(s.Labels, Label{
			Key:   k.Name,
			Text:  k.Label,
			Box:   geom.Rect{W: w, H: h}.MoveCenter(path.Bounds().Center()),
			Color: colors.ParseOr(k.FontColor, colors.Black),
			Font:  l.Font,
			Size:  r.fontSize,
		})
	}

	s.Rect = s.ContentRect().Inset(l.Margin)
	return s
}

// fill picks a key's fill: the pressed color while pressed, the normal
// color otherwise, nil when the applicable color is unset.
func fill(k layout.Key, pressed bool) *color.NRGBA {
	var v string
	if pressed {
		v = k.ColorPressed
	} else {
		v = k.Color
	}
	if v == "" {
		return nil
	}
	c := colors.ParseOr(v, colors.Black)
	return &c
}
