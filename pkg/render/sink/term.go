package sink

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/stenoboard/pkg/colors"
	"github.com/matzehuels/stenoboard/pkg/geom"
	"github.com/matzehuels/stenoboard/pkg/scene"
)

// TermOption configures terminal rendering.
type TermOption func(*termRenderer)

type termRenderer struct {
	cols, rows int
	renderer   *lipgloss.Renderer
}

// WithTermSize sets the frame size in character cells.
func WithTermSize(cols, rows int) TermOption {
	return func(r *termRenderer) { r.cols, r.rows = cols, rows }
}

// WithLipglossRenderer sets the lipgloss renderer used for styling, which
// decides the color profile.
func WithLipglossRenderer(lr *lipgloss.Renderer) TermOption {
	return func(r *termRenderer) { r.renderer = lr }
}

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

type cell struct {
	ch    rune
	style int
}

// RenderTerminal draws s as rows of styled character cells. Keys are
// filled blocks in their fill color (shaded in the stroke color when
// unfilled) and labels are printed over their key.
func RenderTerminal(s *scene.Scene, opts ...TermOption) string {
	r := termRenderer{cols: 80, rows: 12}
	for _, opt := range opts {
		opt(&r)
	}
	if r.renderer == nil {
		r.renderer = lipgloss.DefaultRenderer()
	}
	if r.cols <= 0 || r.rows <= 0 {
		return ""
	}

	// Cells are taller than wide; fit into a virtual grid with square units.
	t := s.Fit(geom.Size{W: float64(r.cols), H: float64(r.rows) * cellAspect})

	bg := r.renderer.NewStyle().Background(lipgloss.Color(colors.Hex(s.Background)))
	styles := []lipgloss.Style{bg}
	grid := make([][]cell, r.rows)
	for y := range grid {
		grid[y] = make([]cell, r.cols)
		for x := range grid[y] {
			grid[y][x] = cell{ch: ' '}
		}
	}

	for _, it := range s.Items {
		x0, y0, x1, y1 := r.cells(t.ApplyRect(it.Path.Bounds()))
		st := bg
		ch := '░'
		if it.Fill != nil {
			st = r.renderer.NewStyle().Background(lipgloss.Color(colors.Hex(*it.Fill)))
			ch = ' '
		}
		st = st.Foreground(lipgloss.Color(colors.Hex(it.Stroke)))
		styles = append(styles, st)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				grid[y][x] = cell{ch: ch, style: len(styles) - 1}
			}
		}
	}

	labelStyles := map[[2]int]int{}
	for li, lb := range s.Labels {
		c := t.Apply(lb.Box.Center())
		row := clamp(int(c.Y/cellAspect), 0, r.rows-1)
		text := []rune(lb.Text)
		start := clamp(int(math.Round(c.X-float64(len(text))/2)), 0, r.cols-1)
		for i, ch := range text {
			x := start + i
			if x >= r.cols {
				break
			}
			under := grid[row][x].style
			idx, ok := labelStyles[[2]int{li, under}]
			if !ok {
				styles = append(styles, styles[under].Foreground(lipgloss.Color(colors.Hex(lb.Color))).Bold(true))
				idx = len(styles) - 1
				labelStyles[[2]int{li, under}] = idx
			}
			grid[row][x] = cell{ch: ch, style: idx}
		}
	}

	var b strings.Builder
	for y, line := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		writeRuns(&b, line, styles)
	}
	return b.String()
}

// cells maps a fitted rect to a half-open cell range, leaving one column
// and row free on the far side so adjacent keys stay apart.
func (r *termRenderer) cells(rc geom.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Round(rc.Left()))
	x1 = int(math.Round(rc.Right()))
	y0 = int(math.Round(rc.Top() / cellAspect))
	y1 = int(math.Round(rc.Bottom() / cellAspect))
	if x1-x0 > 2 {
		x1--
	}
	if y1-y0 > 2 {
		y1--
	}
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return clamp(x0, 0, r.cols), clamp(y0, 0, r.rows), clamp(x1, 0, r.cols), clamp(y1, 0, r.rows)
}

func writeRuns(b *strings.Builder, line []cell, styles []lipgloss.Style) {
	for i := 0; i < len(line); {
		j := i
		var run strings.Builder
		for j < len(line) && line[j].style == line[i].style {
			run.WriteRune(line[j].ch)
			j++
		}
		b.WriteString(styles[line[i].style].Render(run.String()))
		i = j
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
