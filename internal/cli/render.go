package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stenoboard/pkg/display"
	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/geom"
	"github.com/matzehuels/stenoboard/pkg/layout/resources"
	"github.com/matzehuels/stenoboard/pkg/prefs"
	"github.com/matzehuels/stenoboard/pkg/render/sink"
	"github.com/matzehuels/stenoboard/pkg/scene"
	"github.com/matzehuels/stenoboard/pkg/steno"
)

// builtinLayoutArg selects the embedded layout where a layout path is expected.
const builtinLayoutArg = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (one format) or base path (several)
	formats []string // svg, png, json, term
	keys    string   // raw stroke keys, comma separated
	chord   string   // stroke in dash notation
	system  string   // steno system name
	width   int      // frame width in pixels
	height  int      // frame height in pixels
}

func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [layout]",
		Short: "Render a layout with a stroke pressed",
		Long: `Render a steno layout to SVG, PNG, JSON or the terminal.

The layout argument is a layout JSON file, or "-" (the default) for the
built-in English Stenotype layout. Keys are raw stroke keys as the steno
engine reports them ("1-,-9" lights S-, -T and the number key) or a chord
in dash notation ("STKPW-RBGS").`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if opts.width == 0 {
				opts.width = c.cfg.Viewport.Width
			}
			if opts.height == 0 {
				opts.height = c.cfg.Viewport.Height
			}
			input := builtinLayoutArg
			if len(args) == 1 {
				input = args[0]
			}
			return c.runRender(cmd.Context(), input, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json, term (comma-separated)")
	cmd.Flags().StringVarP(&opts.keys, "keys", "k", "", "raw stroke keys, comma-separated (e.g. \"S-,T-,-F\")")
	cmd.Flags().StringVarP(&opts.chord, "chord", "c", "", "stroke in dash notation (e.g. \"KAT\", \"STKPW-RBGS\", \"1-9\")")
	cmd.Flags().StringVarP(&opts.system, "system", "s", "", "steno system (default from config)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "frame width (default from config)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "frame height (default from config)")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)

	sys, err := c.system(opts.system)
	if err != nil {
		return err
	}
	d, err := newDisplay(ctx, logger, sys, input, geom.Size{W: float64(opts.width), H: float64(opts.height)})
	if err != nil {
		return err
	}

	keys := parseKeys(opts.keys)
	if opts.chord != "" {
		chordKeys, err := sys.ParseChord(opts.chord)
		if err != nil {
			return err
		}
		keys = append(keys, chordKeys...)
	}
	sc := d.OnStroke(ctx, keys)
	logger.Infof("Rendering %s with %d of %d keys pressed", d.LayoutName(), len(sc.Pressed()), len(sc.Items))

	base := basePath(opts.output, input)
	for _, format := range opts.formats {
		data, err := encodeFrame(sc, format, opts.width, opts.height, sys.Name)
		if err != nil {
			return fmt.Errorf("%s: %w", format, err)
		}
		if format == formatTerm && opts.output == "" {
			fmt.Print(string(data))
			continue
		}

		path := opts.output
		if path == "" || len(opts.formats) > 1 {
			path = base + "." + format
		}
		if err := writeFile(path, data); err != nil {
			return err
		}
		logger.Infof("Generated %s", path)
	}
	return nil
}

// newDisplay creates a display configured for sys showing the layout at
// path, or the built-in layout for "-" or "".
func newDisplay(ctx context.Context, logger *log.Logger, sys steno.System, path string, viewport geom.Size) (*display.Display, error) {
	d := newHostDisplay(logger, prefs.NewMemory(), viewport)
	d.OnConfigChanged(ctx, display.ConfigFor(sys))
	if path != "" && path != builtinLayoutArg {
		if err := d.Load(ctx, path); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// newHostDisplay creates a display that waits for the engine's first
// config event.
func newHostDisplay(logger *log.Logger, store prefs.Store, viewport geom.Size) *display.Display {
	return display.New(
		display.WithLogger(logger),
		display.WithPrefs(store),
		display.WithViewport(viewport),
	)
}

// encodeFrame writes a scene in one output format.
func encodeFrame(sc *scene.Scene, format string, width, height int, system string) ([]byte, error) {
	switch format {
	case formatSVG:
		return sink.RenderSVG(sc, sink.WithSize(float64(width), float64(height))), nil
	case formatPNG:
		return sink.RenderPNG(sc, sink.WithPNGSize(width, height))
	case formatJSON:
		return sink.RenderJSON(sc, sink.WithJSONSystem(system), sink.WithJSONIndent())
	case formatTerm:
		cols, rows := termSize(width, height)
		return []byte(sink.RenderTerminal(sc, sink.WithTermSize(cols, rows)) + "\n"), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
}

// termSize maps a pixel viewport to a character grid about 100 columns wide.
func termSize(width, height int) (cols, rows int) {
	cols = 100
	rows = 12
	if width > 0 && height > 0 {
		rows = max(4, cols*height/width/2)
	}
	return cols, rows
}

// basePath derives the output path without extension. With no output, it
// is the input's name (or the built-in layout's) in the working directory.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == builtinLayoutArg {
			input = resources.Default
		}
		name := filepath.Base(input)
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
