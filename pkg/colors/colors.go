// Package colors parses the color values used in layout files.
//
// Layout colors follow the conventions stenography layout authors already
// use: "#RGB", "#RRGGBB", "#AARRGGBB" (alpha first), or an SVG color keyword
// such as "lightgray". The empty string means "no color" and is handled by
// callers; [Parse] rejects it.
package colors

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/stenoboard/pkg/errors"
)

// Black is the fallback for outlines and text.
var Black = color.NRGBA{A: 0xff}

// White is the fallback background.
var White = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// Parse converts a layout color value to a non-premultiplied color.
func Parse(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "empty color")
	}

	if strings.HasPrefix(s, "#") {
		switch len(s) {
		case 4, 7:
			c, err := colorful.Hex(strings.ToLower(s))
			if err != nil {
				return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
			}
			r, g, b := c.RGB255()
			return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
		case 9:
			v, err := strconv.ParseUint(s[1:], 16, 32)
			if err != nil {
				return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
			}
			return color.NRGBA{
				A: uint8(v >> 24),
				R: uint8(v >> 16),
				G: uint8(v >> 8),
				B: uint8(v),
			}, nil
		}
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q", s)
	}

	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if strings.EqualFold(s, "transparent") {
		return color.NRGBA{}, nil
	}
	return color.NRGBA{}, errors.New(errors.ErrCodeInvalidColor, "unknown color name %q", s)
}

// ParseOr parses s and returns fallback if s is empty or invalid.
func ParseOr(s string, fallback color.NRGBA) color.NRGBA {
	c, err := Parse(s)
	if err != nil {
		return fallback
	}
	return c
}

// Hex formats c as "#RRGGBB".
func Hex(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// HexA formats c as "#RRGGBB" when opaque and "#AARRGGBB" otherwise, the
// same alpha-first order layout files use.
func HexA(c color.NRGBA) string {
	if c.A == 0xff {
		return Hex(c)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}

// Opacity returns the alpha channel of c in [0, 1].
func Opacity(c color.NRGBA) float64 {
	return float64(c.A) / 255
}
