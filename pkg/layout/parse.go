package layout

import (
	"encoding/json"
	"strconv"

	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/layout/schema"
)

// document mirrors the layout file. Pointer fields distinguish absent from
// zero so defaults apply only to what the file leaves out.
type document struct {
	Name            *string       `json:"name"`
	Font            *string       `json:"font"`
	FontColor       *string       `json:"font_color"`
	BackgroundColor *string       `json:"background_color"`
	Margin          *float64      `json:"margin"`
	KeyWidth        *float64      `json:"key_width"`
	KeyHeight       *float64      `json:"key_height"`
	Keys            []keyDocument `json:"keys"`
}

type keyDocument struct {
	Name          *string  `json:"name"`
	Label         *string  `json:"label"`
	X             *float64 `json:"x"`
	Y             *float64 `json:"y"`
	PositionX     *float64 `json:"position_x"`
	PositionY     *float64 `json:"position_y"`
	Width         *float64 `json:"width"`
	Height        *float64 `json:"height"`
	IsRoundTop    *bool    `json:"is_round_top"`
	IsRoundBottom *bool    `json:"is_round_bottom"`
	Color         *string  `json:"color"`
	ColorPressed  *string  `json:"color_pressed"`
	FontColor     *string  `json:"font_color"`
	StrokeColor   *string  `json:"stroke_color"`
}

// Parse validates data against the layout schema and builds a Layout with
// defaults applied. It returns an INVALID_JSON or SCHEMA_VIOLATION error
// without building anything when the document is not acceptable.
func Parse(data []byte) (*Layout, error) {
	v, err := schema.Decode(data)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(v); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeSchemaViolation, err, "decode layout")
	}
	return doc.build(), nil
}

func (d *document) build() *Layout {
	l := &Layout{
		Name:            str(d.Name, DefaultName),
		Font:            str(d.Font, DefaultFont),
		FontColor:       str(d.FontColor, DefaultFontColor),
		BackgroundColor: str(d.BackgroundColor, DefaultBackgroundColor),
		Margin:          num(d.Margin, DefaultMargin),
		KeyWidth:        num(d.KeyWidth, DefaultKeyWidth),
		KeyHeight:       num(d.KeyHeight, DefaultKeyHeight),
		Keys:            make([]Key, 0, len(d.Keys)),
	}
	for _, kd := range d.Keys {
		// Unnamed keys take their append index for the duration of this load.
		name := str(kd.Name, strconv.Itoa(len(l.Keys)))
		l.Keys = append(l.Keys, Key{
			Name:          name,
			Label:         str(kd.Label, DefaultKeyLabel),
			X:             num(kd.X, num(kd.PositionX, DefaultKeyX)),
			Y:             num(kd.Y, num(kd.PositionY, DefaultKeyY)),
			Width:         num(kd.Width, DefaultKeyWidthUnits),
			Height:        num(kd.Height, DefaultKeyHeightUnits),
			IsRoundTop:    flag(kd.IsRoundTop),
			IsRoundBottom: flag(kd.IsRoundBottom),
			Color:         str(kd.Color, DefaultKeyColor),
			ColorPressed:  str(kd.ColorPressed, DefaultKeyColorPressed),
			FontColor:     str(kd.FontColor, l.FontColor),
			StrokeColor:   str(kd.StrokeColor, DefaultKeyStrokeColor),
		})
	}
	return l
}

func str(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func num(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func flag(p *bool) bool {
	return p != nil && *p
}
