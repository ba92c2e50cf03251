package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stenoboard/pkg/errors"
	"github.com/matzehuels/stenoboard/pkg/geom"
	"github.com/matzehuels/stenoboard/pkg/host"
	"github.com/matzehuels/stenoboard/pkg/scene"
)

type replayOpts struct {
	outDir string
	format string
	layout string
	width  int
	height int
	quiet  bool
}

func (c *CLI) replayCommand() *cobra.Command {
	opts := replayOpts{format: formatSVG}

	cmd := &cobra.Command{
		Use:   "replay EVENTS",
		Short: "Replay an engine event stream and write one frame per stroke",
		Long: `Replay a JSON-lines engine event stream ("-" for stdin) against a fresh
display and write a frame for every stroke event:

  {"type":"config","system_name":"English Stenotype","numbers":{"1-":"S-"},"number_key":"#"}
  {"type":"stroke","keys":["S-","T-"]}
  {"type":"load","path":"custom.json"}
  {"type":"reset"}

Frames are named frame-0001.svg, frame-0002.svg, ... in the output
directory. Preferred layouts are read from and written to the configured
store, as the live display would.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormats([]string{opts.format}); err != nil {
				return err
			}
			if opts.width == 0 {
				opts.width = c.cfg.Viewport.Width
			}
			if opts.height == 0 {
				opts.height = c.cfg.Viewport.Height
			}
			return c.runReplay(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "output", "o", "frames", "output directory")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "frame format: svg, png, json, term")
	cmd.Flags().StringVarP(&opts.layout, "layout", "l", "", "layout to load before the first event")
	cmd.Flags().IntVar(&opts.width, "width", 0, "frame width (default from config)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "frame height (default from config)")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "no progress spinner")

	return cmd
}

func (c *CLI) runReplay(ctx context.Context, input string, opts *replayOpts) error {
	logger := loggerFromContext(ctx)

	r, closeInput, err := openInput(input)
	if err != nil {
		return err
	}
	defer closeInput()

	store, err := c.openPrefs(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	d := newHostDisplay(logger, store, geom.Size{W: float64(opts.width), H: float64(opts.height)})
	if opts.layout != "" {
		if err := d.Load(ctx, opts.layout); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create %s", opts.outDir)
	}

	var spinner *Spinner
	if !opts.quiet {
		spinner = newSpinnerWithContext(ctx, os.Stderr, "Replaying events")
		spinner.Start()
		defer spinner.Stop()
	}

	prog := newProgress(logger)
	writeFrame := func(ctx context.Context, ev host.Event, sc *scene.Scene) error {
		if ev.Type != host.TypeStroke {
			return nil
		}
		prog.step()
		data, err := encodeFrame(sc, opts.format, opts.width, opts.height, d.System())
		if err != nil {
			return err
		}
		path := filepath.Join(opts.outDir, fmt.Sprintf("frame-%04d.%s", prog.count, opts.format))
		if err := writeFile(path, data); err != nil {
			return err
		}
		logger.Debug("frame", "path", path, "event", ev.ID, "pressed", sc.Pressed())
		if spinner != nil {
			spinner.SetMessage("Rendered %d frames", prog.count)
		}
		return nil
	}

	st, err := host.Run(ctx, r, d, host.WithLogger(logger), host.WithAfter(writeFrame))
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Replayed %d events, wrote %d frames", st.Applied, prog.count))
	if st.Skipped > 0 {
		printWarning("Skipped %d malformed events", st.Skipped)
	}
	printSuccess("Wrote %d frames", prog.count)
	printFile(opts.outDir)
	return nil
}

// openInput opens path for reading, or stdin for "-".
func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		code := errors.ErrCodeIO
		if errors.IsNotExist(err) {
			code = errors.ErrCodeFileNotFound
		}
		return nil, nil, errors.Wrap(code, err, "open %s", path)
	}
	return f, func() { f.Close() }, nil
}
