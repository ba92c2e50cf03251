package layout

import (
	"slices"

	"github.com/matzehuels/stenoboard/pkg/geom"
)

// Layout-level defaults.
const (
	DefaultName            = "Default Layout Name"
	DefaultFont            = ""
	DefaultFontColor       = "#000000"
	DefaultBackgroundColor = "#FFFFFF"
	DefaultMargin          = 5.0
	DefaultKeyWidth        = 30.0
	DefaultKeyHeight       = 35.0
)

// Key-level defaults. A key's font color defaults to the layout's.
const (
	DefaultKeyLabel        = ""
	DefaultKeyX            = 0.0
	DefaultKeyY            = 0.0
	DefaultKeyWidthUnits   = 1.0
	DefaultKeyHeightUnits  = 1.0
	DefaultKeyColor        = ""
	DefaultKeyColorPressed = "#000000"
	DefaultKeyStrokeColor  = "#000000"
)

// Layout describes one steno keyboard visualization. Keys are in paint
// order: later keys draw over earlier ones.
type Layout struct {
	Name            string  `json:"name"`
	Font            string  `json:"font"`
	FontColor       string  `json:"font_color"`
	BackgroundColor string  `json:"background_color"`
	Margin          float64 `json:"margin"`
	KeyWidth        float64 `json:"key_width"`
	KeyHeight       float64 `json:"key_height"`
	Keys            []Key   `json:"keys"`
}

// Key is one drawable key. Position and size are in key units.
type Key struct {
	Name          string  `json:"name"`
	Label         string  `json:"label"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	IsRoundTop    bool    `json:"is_round_top"`
	IsRoundBottom bool    `json:"is_round_bottom"`
	Color         string  `json:"color"`
	ColorPressed  string  `json:"color_pressed"`
	FontColor     string  `json:"font_color"`
	StrokeColor   string  `json:"stroke_color"`
}

// New returns an empty layout with default styling.
func New() *Layout {
	return &Layout{
		Name:            DefaultName,
		Font:            DefaultFont,
		FontColor:       DefaultFontColor,
		BackgroundColor: DefaultBackgroundColor,
		Margin:          DefaultMargin,
		KeyWidth:        DefaultKeyWidth,
		KeyHeight:       DefaultKeyHeight,
		Keys:            []Key{},
	}
}

// Clone returns a copy of l that shares nothing with it.
func (l *Layout) Clone() *Layout {
	c := *l
	c.Keys = slices.Clone(l.Keys)
	if c.Keys == nil {
		c.Keys = []Key{}
	}
	return &c
}

// Key returns the first key named name.
func (l *Layout) Key(name string) (Key, bool) {
	for _, k := range l.Keys {
		if k.Name == name {
			return k, true
		}
	}
	return Key{}, false
}

// KeyNames returns the names of all keys in paint order.
func (l *Layout) KeyNames() []string {
	names := make([]string, len(l.Keys))
	for i, k := range l.Keys {
		names[i] = k.Name
	}
	return names
}

// KeyRect converts a key's unit-space box to pixels using the layout's key
// width and height. It is computed on every call.
func (l *Layout) KeyRect(k Key) geom.Rect {
	return geom.Rect{
		X: k.X * l.KeyWidth,
		Y: k.Y * l.KeyHeight,
		W: k.Width * l.KeyWidth,
		H: k.Height * l.KeyHeight,
	}
}

// KeyPath builds the key's silhouette in pixel space.
func (l *Layout) KeyPath(k Key) geom.Path {
	r := l.KeyRect(k)
	return geom.KeyPath(geom.Point{X: r.X, Y: r.Y}, geom.Size{W: r.W, H: r.H}, k.IsRoundTop, k.IsRoundBottom)
}
