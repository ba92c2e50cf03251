// Package fonts resolves the fonts used for key labels.
//
// A layout names its label font by family ("DejaVu Sans", "Arial"). The
// name is looked up among the system's font files; when it is empty or
// cannot be found, the embedded Go Regular font is used, so labels can
// always be measured and drawn without external dependencies.
package fonts

import (
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// DefaultSize is the label font size in scene units.
const DefaultSize = 12.0

// DocumentMargin is the padding around a label's text inside its box.
const DocumentMargin = 4.0

// FallbackFamily is the CSS font stack used when a layout names no font.
const FallbackFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

var (
	mu     sync.Mutex
	parsed = map[string]*opentype.Font{}

	regularOnce sync.Once
	regular     *opentype.Font
)

// Regular returns the embedded Go Regular font.
func Regular() *opentype.Font {
	regularOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			panic("fonts: embedded Go Regular is corrupt: " + err.Error())
		}
		regular = f
	})
	return regular
}

// Lookup returns the font for a family name and whether the name resolved
// to a system font. Results are cached per name.
func Lookup(name string) (*opentype.Font, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Regular(), false
	}

	mu.Lock()
	defer mu.Unlock()
	if f, ok := parsed[name]; ok {
		return f, f != Regular()
	}

	f := Regular()
	for _, candidate := range []string{name, strings.ReplaceAll(name, " ", "")} {
		if sf := load(candidate); sf != nil {
			f = sf
			break
		}
	}
	parsed[name] = f
	return f, f != Regular()
}

// load locates a font file by family or file name and parses it. Font
// collections and unreadable files yield nil.
func load(name string) *opentype.Font {
	path, err := findfont.Find(name)
	if err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil
	}
	return f
}

// Face returns a font face for name at size (scene units, 72 DPI).
func Face(name string, size float64) font.Face {
	f, _ := Lookup(name)
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		face, _ = opentype.NewFace(Regular(), &opentype.FaceOptions{Size: size, DPI: 72})
	}
	return face
}

// Measure returns the advance width and line height of s in face.
func Measure(face font.Face, s string) (w, h float64) {
	m := face.Metrics()
	return toFloat(font.MeasureString(face, s)), toFloat(m.Ascent + m.Descent)
}

// LabelBox returns the size of the box a label occupies: its text extent
// plus [DocumentMargin] on every side.
func LabelBox(face font.Face, s string) (w, h float64) {
	tw, th := Measure(face, s)
	return tw + 2*DocumentMargin, th + 2*DocumentMargin
}

// CSSFamily returns a CSS font-family value for a layout font name.
func CSSFamily(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return FallbackFamily
	}
	return "'" + strings.ReplaceAll(name, "'", "") + "', " + FallbackFamily
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
